package handler

import (
	"time"

	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/service"
)

type imageResponse struct {
	URL       string `json:"url"`
	StorageID string `json:"storageId"`
}

func newImageResponse(img model.Image) imageResponse {
	return imageResponse{URL: img.URL, StorageID: img.StorageID}
}

type userSummaryResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ProfileImage imageResponse `json:"profileImage"`
}

func newUserSummaryResponse(s model.UserSummary) userSummaryResponse {
	return userSummaryResponse{
		ID:           s.ID,
		Name:         s.Name,
		ProfileImage: newImageResponse(s.ProfileImage()),
	}
}

// userResponse never carries the password hash.
type userResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Bio          string        `json:"bio"`
	ProfileImage imageResponse `json:"profileImage"`
	Followers    []string      `json:"followers"`
	Following    []string      `json:"following"`
	SavedPins    []string      `json:"savedPins"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func newUserResponse(u *model.User, g model.Graph) userResponse {
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Bio:          u.Bio,
		ProfileImage: newImageResponse(u.ProfileImage()),
		Followers:    nonNil(g.Followers),
		Following:    nonNil(g.Following),
		SavedPins:    nonNil(g.SavedPins),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func newProfileResponse(p *service.Profile) userResponse {
	return newUserResponse(p.User, p.Graph)
}

type commentResponse struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	User      userSummaryResponse `json:"user"`
	CreatedAt time.Time           `json:"createdAt"`
}

type pinResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Image       imageResponse        `json:"image"`
	CreatedBy   string               `json:"createdBy"`
	Author      *userSummaryResponse `json:"author,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func newPinResponse(p *model.Pin) pinResponse {
	return pinResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Image:       newImageResponse(p.Image()),
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newPinWithAuthorResponse(p *model.PinWithAuthor) pinResponse {
	resp := newPinResponse(&p.Pin)
	author := newUserSummaryResponse(p.Author)
	resp.Author = &author
	return resp
}

// pinDetailResponse is a pin with its populated comments.
type pinDetailResponse struct {
	pinResponse
	Comments []commentResponse `json:"comments"`
}

func newPinDetailResponse(p *model.PinDetail) pinDetailResponse {
	resp := pinDetailResponse{
		pinResponse: newPinWithAuthorResponse(&p.PinWithAuthor),
		Comments:    make([]commentResponse, 0, len(p.Comments)),
	}
	for _, c := range p.Comments {
		resp.Comments = append(resp.Comments, commentResponse{
			ID:        c.ID,
			Text:      c.Text,
			User:      newUserSummaryResponse(c.Author),
			CreatedAt: c.CreatedAt,
		})
	}
	return resp
}

func newPinListResponse(pins []model.PinWithAuthor) []pinResponse {
	out := make([]pinResponse, 0, len(pins))
	for i := range pins {
		out = append(out, newPinWithAuthorResponse(&pins[i]))
	}
	return out
}

type savedPinResponse struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Image    imageResponse `json:"image"`
	Category string        `json:"category"`
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
