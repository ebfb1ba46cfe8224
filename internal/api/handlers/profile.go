package handlers

import (
	"errors"
	"net/http"

	"github.com/rohits-web03/blogify/internal/apperrors"
	"github.com/rohits-web03/blogify/internal/repositories"
	"github.com/rohits-web03/blogify/internal/utils"
)

// GET /profile
// GetProfile godoc
// @Summary Current user's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} handlers.ProfileResponse
// @Failure 401 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload
// @Router /profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred"

	userID, claims, err := currentUserID(r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	user, err := h.users.FindByID(r.Context(), userID)
	if errors.Is(err, repositories.ErrNotFound) {
		// the token outlived its user; report what the token asserts
		utils.JSONResponse(w, http.StatusOK, ProfileResponse{Username: claims.Username, ID: userID})
		return
	}
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	utils.JSONResponse(w, http.StatusOK, newProfileResponse(user))
}

// PUT /profile
// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Only supplied, non-empty fields are changed.
// @Tags Profile
// @Accept json,mpfd
// @Produce json
// @Param username formData string false "New username"
// @Param password formData string false "New password"
// @Param email formData string false "New email"
// @Param file formData file false "New profile picture"
// @Success 200 {object} handlers.ProfileResponse
// @Failure 401 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload "User not found"
// @Failure 409 {object} utils.ErrorPayload "Username is already taken"
// @Failure 500 {object} utils.ErrorPayload
// @Router /profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred"

	userID, _, err := currentUserID(r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	in, err := h.readInput(w, r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}
	defer in.close()

	user, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		h.fail(w, r, storeError(err, apperrors.NotFound("user_not_found", "User not found")), fallback)
		return
	}

	if username := in.get("username"); username != "" && username != user.Username {
		taken, err := h.users.UsernameTaken(r.Context(), username, user.ID)
		if err != nil {
			h.fail(w, r, err, fallback)
			return
		}
		if taken {
			h.fail(w, r, errUsernameTaken(), fallback)
			return
		}
		user.Username = username
	}
	if email := in.get("email"); email != "" {
		user.Email = email
	}
	if password := in.get("password"); password != "" {
		hashed, err := h.hasher.Hash(password)
		if err != nil {
			h.fail(w, r, err, fallback)
			return
		}
		user.Password = hashed
	}

	picture, err := h.uploads.Save(r.Context(), in.file)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}
	if picture != "" {
		user.ProfilePicture = picture
	}

	if err := h.users.Save(r.Context(), user); err != nil {
		h.uploads.Discard(r.Context(), picture)
		if errors.Is(err, repositories.ErrDuplicate) {
			err = errUsernameTaken()
		}
		h.fail(w, r, err, fallback)
		return
	}

	utils.JSONResponse(w, http.StatusOK, newProfileResponse(user))
}
