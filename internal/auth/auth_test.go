package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Error("expected distinct salts for the same password")
	}
	if !h.Verify("pw1", first) {
		t.Error("expected password to verify")
	}
	if h.Verify("pw2", first) {
		t.Error("expected wrong password to fail")
	}
	if h.Verify("pw1", "") {
		t.Error("expected empty hash to fail")
	}
	if h.Verify("pw1", "not-a-bcrypt-hash") {
		t.Error("expected malformed hash to fail")
	}
}

func TestPasswordHasherClampsCost(t *testing.T) {
	if got := NewPasswordHasher(99).cost; got != bcrypt.DefaultCost {
		t.Errorf("expected default cost, got %d", got)
	}
	if got := NewPasswordHasher(10).cost; got != 10 {
		t.Errorf("expected cost 10, got %d", got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	c := NewTokenCodec("secret", 0)

	tok, err := c.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.ExpiresAt != nil {
		t.Error("expected no exp claim without ttl")
	}
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	tok, err := NewTokenCodec("other", 0).Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokenCodec("secret", 0).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsMalformedAndEmpty(t *testing.T) {
	c := NewTokenCodec("secret", 0)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := c.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	c := NewTokenCodec("secret", 0)
	tok, err := c.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	parts := strings.Split(tok, ".")
	forged, err := NewTokenCodec("secret", 0).Issue("user-2", "mallory")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	// payload of one token with the signature of another
	mixed := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]
	if _, err := c.Verify(mixed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: "user-1", Username: "alice"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenCodec("secret", 0).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	c := NewTokenCodec("secret", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	c.now = func() time.Time { return issuedAt }

	tok, err := c.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := c.Verify(tok); err != nil {
		t.Fatalf("expected token valid at issue time: %v", err)
	}

	c.now = time.Now
	if _, err := c.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expired token to fail, got %v", err)
	}
}
