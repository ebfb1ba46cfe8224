package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/blogify/internal/models"
)

type LoginResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type ProfileResponse struct {
	Username       string    `json:"username"`
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
}

func newProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		Username:       u.Username,
		ID:             u.ID,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
}

type AuthorResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type PostResponse struct {
	ID         uuid.UUID      `json:"id"`
	Heading    string         `json:"heading"`
	PostBody   string         `json:"postBody"`
	CoverImage string         `json:"coverImage"`
	Author     AuthorResponse `json:"author"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func newPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:         p.ID,
		Heading:    p.Heading,
		PostBody:   p.PostBody,
		CoverImage: p.CoverImage,
		Author: AuthorResponse{
			ID:       p.AuthorID,
			Username: p.Author.Username,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
