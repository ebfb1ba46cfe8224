package handlers

import (
	"errors"
	"net/http"

	"github.com/rohits-web03/blogify/internal/apperrors"
	"github.com/rohits-web03/blogify/internal/models"
	"github.com/rohits-web03/blogify/internal/repositories"
	"github.com/rohits-web03/blogify/internal/utils"
)

// POST /register
// Register godoc
// @Summary Register a new user
// @Description Creates a user from username, password and optional email and profile picture.
// @Tags Auth
// @Accept json,mpfd
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param email formData string false "Email"
// @Param file formData file false "Profile picture"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorPayload "Missing username or password"
// @Failure 409 {object} utils.ErrorPayload "Username is already taken"
// @Failure 500 {object} utils.ErrorPayload
// @Router /register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred during registration"

	in, err := h.readInput(w, r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}
	defer in.close()

	username, password := in.get("username"), in.get("password")
	if username == "" || password == "" {
		h.fail(w, r, apperrors.Validation("missing_fields", "Username and password are required"), fallback)
		return
	}

	// Check if username already exists
	_, err = h.users.FindByUsername(r.Context(), username)
	switch {
	case err == nil:
		h.fail(w, r, errUsernameTaken(), fallback)
		return
	case !errors.Is(err, repositories.ErrNotFound):
		h.fail(w, r, err, fallback)
		return
	}

	hashed, err := h.hasher.Hash(password)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	picture, err := h.uploads.Save(r.Context(), in.file)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	user := &models.User{
		Username:       username,
		Email:          in.get("email"),
		Password:       hashed,
		ProfilePicture: picture,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		h.uploads.Discard(r.Context(), picture)
		if errors.Is(err, repositories.ErrDuplicate) {
			err = errUsernameTaken()
		}
		h.fail(w, r, err, fallback)
		return
	}

	utils.JSONResponse(w, http.StatusOK, user)
}

// POST /login
// Login godoc
// @Summary Log in
// @Description Verifies credentials and sets the session token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} handlers.LoginResponse
// @Failure 400 {object} utils.ErrorPayload "Missing fields or invalid credentials"
// @Failure 500 {object} utils.ErrorPayload
// @Router /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred during login"

	in, err := h.readInput(w, r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}
	defer in.close()

	username, password := in.get("username"), in.get("password")
	if username == "" || password == "" {
		h.fail(w, r, apperrors.Validation("missing_fields", "Username and password are required"), fallback)
		return
	}

	user, err := h.users.FindByUsername(r.Context(), username)
	if err != nil {
		h.fail(w, r, storeError(err, errInvalidCredentials()), fallback)
		return
	}

	// Compare password
	if !h.hasher.Verify(password, user.Password) {
		h.fail(w, r, errInvalidCredentials(), fallback)
		return
	}

	token, err := h.tokens.Issue(user.ID.String(), user.Username)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	h.setTokenCookie(w, token)
	utils.JSONResponse(w, http.StatusOK, LoginResponse{ID: user.ID, Username: user.Username})
}

// POST /logout
// Logout godoc
// @Summary Log out
// @Description Clears the session token cookie.
// @Tags Auth
// @Produce json
// @Success 200 {string} string "OK"
// @Router /logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	utils.JSONResponse(w, http.StatusOK, "OK")
}

func errUsernameTaken() error {
	return apperrors.Conflict("username_taken", "Username is already taken")
}

func errInvalidCredentials() error {
	return apperrors.Validation("invalid_credentials", "Invalid credentials")
}
