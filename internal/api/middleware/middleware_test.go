package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rohits-web03/blogify/internal/auth"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func protected(t *testing.T, codec *auth.TokenCodec) http.Handler {
	return RequireAuth(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok {
			t.Error("expected claims in context")
			return
		}
		w.Write([]byte(claims.Username))
	}))
}

func TestRequireAuth(t *testing.T) {
	codec := auth.NewTokenCodec("secret", 0)
	valid, err := codec.Issue("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := auth.NewTokenCodec("other", 0).Issue("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		cookie string
		want   int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"garbage", "not-a-token", http.StatusUnauthorized},
		{"wrong secret", foreign, http.StatusUnauthorized},
		{"valid", valid, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if c.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: c.cookie})
			}
			rr := httptest.NewRecorder()
			protected(t, codec).ServeHTTP(rr, req)
			if rr.Code != c.want {
				t.Errorf("expected %d, got %d", c.want, rr.Code)
			}
			if c.want == http.StatusOK && rr.Body.String() != "alice" {
				t.Errorf("expected alice, got %q", rr.Body.String())
			}
		})
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/post", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/post" {
		t.Errorf("unexpected fields %v", fields)
	}
}
