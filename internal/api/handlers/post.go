package handlers

import (
	"net/http"

	"github.com/rohits-web03/blogify/internal/apperrors"
	"github.com/rohits-web03/blogify/internal/models"
	"github.com/rohits-web03/blogify/internal/utils"
)

// POST /post
// CreatePost godoc
// @Summary Create a post
// @Tags Posts
// @Accept json,mpfd
// @Produce json
// @Param heading formData string false "Heading"
// @Param postBody formData string false "Body"
// @Param file formData file false "Cover image"
// @Success 200 {object} handlers.PostResponse
// @Failure 401 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload
// @Router /post [post]
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred while creating a post"

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

	cover, err := h.uploads.Save(r.Context(), in.file)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	post := &models.Post{
		Heading:    in.get("heading"),
		PostBody:   in.get("postBody"),
		CoverImage: cover,
		AuthorID:   userID,
	}
	if err := h.posts.Create(r.Context(), post); err != nil {
		h.uploads.Discard(r.Context(), cover)
		h.fail(w, r, err, fallback)
		return
	}

	created, err := h.posts.FindByID(r.Context(), post.ID)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}
	utils.JSONResponse(w, http.StatusOK, newPostResponse(created))
}

// PUT /post/{id}
// UpdatePost godoc
// @Summary Update a post
// @Description Overwrites heading and body. The cover image is replaced only when a new file is sent.
// @Tags Posts
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Post ID"
// @Param heading formData string false "Heading"
// @Param postBody formData string false "Body"
// @Param file formData file false "Cover image"
// @Success 200 {object} handlers.PostResponse
// @Failure 400 {object} utils.ErrorPayload "You are not the author"
// @Failure 401 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload "Post not found"
// @Failure 500 {object} utils.ErrorPayload
// @Router /post/{id} [put]
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred while updating the post"

	userID, _, err := currentUserID(r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}
	id, err := postID(r)
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

	post, err := h.posts.FindByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, storeError(err, errPostNotFound()), fallback)
		return
	}
	if !post.IsAuthoredBy(userID) {
		h.fail(w, r, apperrors.NotAuthor(), fallback)
		return
	}

	cover, err := h.uploads.Save(r.Context(), in.file)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	post.Heading = in.get("heading")
	post.PostBody = in.get("postBody")
	if cover != "" {
		post.CoverImage = cover
	}
	if err := h.posts.Save(r.Context(), post); err != nil {
		h.uploads.Discard(r.Context(), cover)
		h.fail(w, r, err, fallback)
		return
	}

	utils.JSONResponse(w, http.StatusOK, newPostResponse(post))
}

// GET /post
// ListPosts godoc
// @Summary Latest posts
// @Description Returns at most 20 posts, newest first. Posts without a cover report the default cover path.
// @Tags Posts
// @Produce json
// @Success 200 {array} handlers.PostResponse
// @Failure 500 {object} utils.ErrorPayload
// @Router /post [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred while fetching posts"

	posts, err := h.posts.ListRecent(r.Context(), PostListLimit)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	res := make([]PostResponse, 0, len(posts))
	for i := range posts {
		p := newPostResponse(&posts[i])
		if p.CoverImage == "" {
			p.CoverImage = h.defaultCover
		}
		res = append(res, p)
	}
	utils.JSONResponse(w, http.StatusOK, res)
}

// GET /post/{id}
// GetPost godoc
// @Summary Single post
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} handlers.PostResponse
// @Failure 404 {object} utils.ErrorPayload "Post not found"
// @Failure 500 {object} utils.ErrorPayload
// @Router /post/{id} [get]
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred while fetching the post"

	id, err := postID(r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	post, err := h.posts.FindByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, storeError(err, errPostNotFound()), fallback)
		return
	}
	utils.JSONResponse(w, http.StatusOK, newPostResponse(post))
}

// DELETE /post/{id}
// DeletePost godoc
// @Summary Delete a post
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} utils.MessagePayload
// @Failure 400 {object} utils.ErrorPayload "You are not the author"
// @Failure 401 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload "Post not found"
// @Failure 500 {object} utils.ErrorPayload
// @Router /post/{id} [delete]
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	const fallback = "An error occurred while deleting the post"

	userID, _, err := currentUserID(r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}
	id, err := postID(r)
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}

	post, err := h.posts.FindByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, storeError(err, errPostNotFound()), fallback)
		return
	}
	if !post.IsAuthoredBy(userID) {
		h.fail(w, r, apperrors.NotAuthor(), fallback)
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		h.fail(w, r, storeError(err, errPostNotFound()), fallback)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.MessagePayload{Message: "Post deleted successfully"})
}
