package handler

import (
	"errors"
	"net/http"

	"github.com/snapnest/snapnest/internal/ctxkeys"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/service"
)

type pinHandler struct {
	pinService     *service.PinService
	uploadMaxBytes int64
}

func NewPinHandler(pinService *service.PinService, uploadMaxBytes int64) *pinHandler {
	return &pinHandler{
		pinService:     pinService,
		uploadMaxBytes: uploadMaxBytes,
	}
}

type createPinResponse struct {
	Message string      `json:"message"`
	Pins    pinResponse `json:"pins"`
}

func (h *pinHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := parseMultipart(w, r, h.uploadMaxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		writeMessage(w, http.StatusBadRequest, "All fields including image are required")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	image, err := formImage(r, "image")
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeUpload(image)

	pin, err := h.pinService.Create(r.Context(), user.ID, service.CreatePinInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Image:       image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createPinResponse{
		Message: "Uploaded successfully",
		Pins:    newPinResponse(pin),
	})
}

func (h *pinHandler) All(w http.ResponseWriter, r *http.Request) {
	pins, err := h.pinService.All(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"pins": newPinListResponse(pins)})
}

func (h *pinHandler) Single(w http.ResponseWriter, r *http.Request) {
	pin, err := h.pinService.Single(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"pin": newPinDetailResponse(pin)})
}

func (h *pinHandler) UserPins(w http.ResponseWriter, r *http.Request) {
	pins, err := h.pinService.UserPins(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]pinResponse, 0, len(pins))
	for i := range pins {
		resp = append(resp, newPinResponse(&pins[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"pins": resp})
}

type pinMessageResponse struct {
	Message string            `json:"message"`
	Pin     pinDetailResponse `json:"pin"`
}

func (h *pinHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !bind(w, r, &req) {
		return
	}
	user := ctxkeys.User(r.Context())

	pin, err := h.pinService.AddComment(r.Context(), user.ID, r.PathValue("id"), req.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pinMessageResponse{Message: "Comment added", Pin: newPinDetailResponse(pin)})
}

func (h *pinHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	pin, err := h.pinService.DeleteComment(r.Context(), user.ID, r.PathValue("commentId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pinMessageResponse{Message: "Comment deleted successfully", Pin: newPinDetailResponse(pin)})
}

func (h *pinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.pinService.DeletePin(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Pin deleted successfully")
}

type savedIDsResponse struct {
	Message   string   `json:"message"`
	SavedPins []string `json:"savedPins"`
}

func (h *pinHandler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	saved, ids, err := h.pinService.ToggleSave(r.Context(), user.ID, r.PathValue("pinId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "Pin unsaved"
	if saved {
		message = "Pin saved"
	}
	writeJSON(w, http.StatusOK, savedIDsResponse{Message: message, SavedPins: nonNil(ids)})
}

func (h *pinHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	ids, err := h.pinService.Unsave(r.Context(), user.ID, r.PathValue("pinId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, savedIDsResponse{Message: "Pin unsaved successfully", SavedPins: nonNil(ids)})
}

func (h *pinHandler) Saved(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	pins, err := h.pinService.Saved(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"savedPins": newSavedPinsResponse(pins)})
}

func newSavedPinsResponse(pins []model.SavedPin) []savedPinResponse {
	out := make([]savedPinResponse, 0, len(pins))
	for _, p := range pins {
		out = append(out, savedPinResponse{
			ID:       p.ID,
			Title:    p.Title,
			Image:    imageResponse{URL: p.ImageURL, StorageID: p.ImageStorageID},
			Category: p.Category,
		})
	}
	return out
}

type searchResponse struct {
	Message string        `json:"message"`
	Query   string        `json:"query"`
	Posts   []pinResponse `json:"posts"`
}

func (h *pinHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	pins, err := h.pinService.Search(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Message: "Posts fetched successfully",
		Query:   query,
		Posts:   newPinListResponse(pins),
	})
}
