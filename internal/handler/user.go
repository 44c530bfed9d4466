package handler

import (
	"net/http"
	"strconv"

	"github.com/snapnest/snapnest/internal/ctxkeys"
	"github.com/snapnest/snapnest/internal/service"
)

type userHandler struct {
	userService    *service.UserService
	authService    *service.AuthService
	uploadMaxBytes int64
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService, uploadMaxBytes int64) *userHandler {
	return &userHandler{
		userService:    userService,
		authService:    authService,
		uploadMaxBytes: uploadMaxBytes,
	}
}

func (h *userHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.userService.Profile(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(profile))
}

func (h *userHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(profile))
}

func (h *userHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	followed, err := h.userService.FollowToggle(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if followed {
		writeMessage(w, http.StatusOK, "User followed.")
		return
	}
	writeMessage(w, http.StatusOK, "User unfollowed.")
}

type connectionsResponse struct {
	Data  []userSummaryResponse `json:"data"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Skip  int                   `json:"skip"`
	Total int                   `json:"total"`
}

func (h *userHandler) Connections(w http.ResponseWriter, r *http.Request) {
	// unparsable values fall back to the defaults
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.userService.ListConnections(r.Context(), r.PathValue("id"), r.PathValue("type"), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := connectionsResponse{
		Data:  make([]userSummaryResponse, 0, len(result.Data)),
		Page:  result.Page,
		Limit: result.Limit,
		Skip:  result.Skip,
		Total: result.Total,
	}
	for _, s := range result.Data {
		resp.Data = append(resp.Data, newUserSummaryResponse(s))
	}

	writeJSON(w, http.StatusOK, resp)
}

type editProfileResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

func (h *userHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := parseMultipart(w, r, h.uploadMaxBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	image, err := formImage(r, "profileImage")
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeUpload(image)

	_, err = h.userService.EditProfile(r.Context(), user.ID, service.EditProfileInput{
		Name:  r.FormValue("name"),
		Bio:   r.FormValue("bio"),
		Image: image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.userService.Profile(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, editProfileResponse{
		Message: "Profile updated successfully",
		User:    newProfileResponse(profile),
	})
}

func (h *userHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	pins, err := h.userService.Feed(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"feedPins": newPinListResponse(pins)})
}

type deleteAccountResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

func (h *userHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.authService.ClearJWTCookie(w)
	writeJSON(w, http.StatusOK, deleteAccountResponse{
		Message: "profile deleted successfully",
		UserID:  user.ID,
	})
}
