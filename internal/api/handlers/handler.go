package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rohits-web03/blogify/internal/api/middleware"
	"github.com/rohits-web03/blogify/internal/apperrors"
	"github.com/rohits-web03/blogify/internal/auth"
	"github.com/rohits-web03/blogify/internal/repositories"
	"github.com/rohits-web03/blogify/internal/uploads"
	"github.com/rohits-web03/blogify/internal/utils"
	"go.uber.org/zap"
)

// PostListLimit caps GET /post.
const PostListLimit = 20

type Options struct {
	Users        *repositories.UserRepository
	Posts        *repositories.PostRepository
	Hasher       *auth.PasswordHasher
	Tokens       *auth.TokenCodec
	Uploads      *uploads.Store
	Logger       *zap.Logger
	DefaultCover string
	MaxUploadMB  int64
	SecureCookie bool
}

// Handler serves every blog route. Each method converts its own failures
// into a JSON error response.
type Handler struct {
	users        *repositories.UserRepository
	posts        *repositories.PostRepository
	hasher       *auth.PasswordHasher
	tokens       *auth.TokenCodec
	uploads      *uploads.Store
	logger       *zap.Logger
	defaultCover string
	maxUpload    int64
	secureCookie bool
}

func New(opts Options) *Handler {
	maxUpload := opts.MaxUploadMB << 20
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		users:        opts.Users,
		posts:        opts.Posts,
		hasher:       opts.Hasher,
		tokens:       opts.Tokens,
		uploads:      opts.Uploads,
		logger:       logger,
		defaultCover: opts.DefaultCover,
		maxUpload:    maxUpload,
		secureCookie: opts.SecureCookie,
	}
}

// fail writes err as {error, code}. Unexpected errors are logged and replaced by fallback.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	appErr := apperrors.From(err, fallback)
	if appErr.Kind == apperrors.KindUnexpected {
		h.logger.Error(fallback,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	utils.JSONError(w, appErr.Status(), appErr.Code, appErr.Message)
}

// currentUserID returns the id carried by the verified session token.
func currentUserID(r *http.Request) (uuid.UUID, *auth.Claims, error) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return uuid.Nil, nil, apperrors.Unauthorized()
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, nil, apperrors.Unauthorized()
	}
	return id, claims, nil
}

// postID parses the {id} path value. Malformed ids cannot name a post.
func postID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errPostNotFound()
	}
	return id, nil
}

func errPostNotFound() error {
	return apperrors.NotFound("post_not_found", "Post not found")
}

// input holds the text fields and the optional "file" upload of a request.
type input struct {
	values map[string]string
	file   *multipart.FileHeader
	form   *multipart.Form
}

func (in *input) get(key string) string { return in.values[key] }

func (in *input) close() {
	if in.form != nil {
		_ = in.form.RemoveAll()
	}
}

// readInput accepts JSON, multipart and urlencoded bodies.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (*input, error) {
	in := &input{values: map[string]string{}}
	if r.Body == nil || r.Body == http.NoBody {
		return in, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
		if err := r.ParseMultipartForm(h.maxUpload); err != nil {
			return nil, invalidInput(err)
		}
		in.form = r.MultipartForm
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				in.values[k] = v[0]
			}
		}
		if files := r.MultipartForm.File["file"]; len(files) > 0 {
			in.file = files[0]
		}
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
		if err := r.ParseForm(); err != nil {
			return nil, invalidInput(err)
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				in.values[k] = v[0]
			}
		}
	default:
		var raw map[string]any
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUpload))
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, invalidInput(err)
		}
		for k, v := range raw {
			if s, ok := v.(string); ok {
				in.values[k] = s
			}
		}
	}
	return in, nil
}

func invalidInput(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.TooLarge(err)
	}
	return &apperrors.Error{Kind: apperrors.KindValidation, Code: "invalid_input", Message: "Invalid input", Err: err}
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Secure:   h.secureCookie,
		HttpOnly: true,
		SameSite: h.sameSite(),
	}
	if ttl := h.tokens.TTL(); ttl > 0 {
		cookie.MaxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, cookie)
}

func (h *Handler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // maxAge < 0 deletes the cookie
		Secure:   h.secureCookie,
		HttpOnly: true,
		SameSite: h.sameSite(),
	})
}

// cross-site frontends in production need SameSite=None, which requires Secure
func (h *Handler) sameSite() http.SameSite {
	if h.secureCookie {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func storeError(err error, notFound error) error {
	if errors.Is(err, repositories.ErrNotFound) && notFound != nil {
		return notFound
	}
	return fmt.Errorf("store: %w", err)
}
