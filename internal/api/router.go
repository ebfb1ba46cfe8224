package api

import (
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/rohits-web03/blogify/docs"
	"github.com/rohits-web03/blogify/internal/api/handlers"
	"github.com/rohits-web03/blogify/internal/api/middleware"
)

type RouterOptions struct {
	Handler     *handlers.Handler
	Tokens      middleware.TokenVerifier
	UploadDir   string
	CorsOptions cors.Options
	Logger      *zap.Logger
}

func SetupRouter(opts RouterOptions) http.Handler {
	h := opts.Handler
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(opts.Tokens)

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mux.Handle("GET /docs/", httpSwagger.WrapHandler)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))

	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /post", h.ListPosts)
	mux.HandleFunc("GET /post/{id}", h.GetPost)

	// ---------- PROTECTED ROUTES ----------
	mux.Handle("GET /profile", requireAuth(http.HandlerFunc(h.GetProfile)))
	mux.Handle("PUT /profile", requireAuth(http.HandlerFunc(h.UpdateProfile)))
	mux.Handle("POST /post", requireAuth(http.HandlerFunc(h.CreatePost)))
	mux.Handle("PUT /post/{id}", requireAuth(http.HandlerFunc(h.UpdatePost)))
	mux.Handle("DELETE /post/{id}", requireAuth(http.HandlerFunc(h.DeletePost)))

	opts.Logger.Info("Router initialized")

	var handler http.Handler = cors.New(opts.CorsOptions).Handler(mux)
	handler = chimw.Recoverer(handler)
	handler = middleware.Logger(opts.Logger)(handler)
	handler = chimw.RealIP(handler)
	handler = chimw.RequestID(handler)
	return handler
}
