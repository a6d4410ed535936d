package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

func TestTokenRoundTrip(t *testing.T) {
	ti, err := NewTokenIssuer("test-secret", 0)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	if ti.TTL() != DefaultTokenTTL {
		t.Fatalf("TTL: got %v want %v", ti.TTL(), DefaultTokenTTL)
	}
	tok, err := ti.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := ti.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != "user-1" {
		t.Fatalf("Verify: got %q want user-1", got)
	}
}

func TestTokenFailuresAreUniform(t *testing.T) {
	ti, err := NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	other, err := NewTokenIssuer("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	good, err := ti.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	foreign, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	expiredIssuer, _ := NewTokenIssuer("test-secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	cases := map[string]string{
		"malformed": "not.a.token",
		"empty":     "",
		"foreign":   foreign,
		"expired":   expired,
		"none":      unsigned,
		"tampered":  tampered,
	}
	for name, tok := range cases {
		_, err := ti.Verify(tok)
		if !apierr.IsAuth(err) {
			t.Fatalf("%s: expected auth error, got %v", name, err)
		}
		if err.Error() != "authentication failed" {
			t.Fatalf("%s: message %q leaks detail", name, err.Error())
		}
	}
}

func TestEmptySecretIsRandomPerIssuer(t *testing.T) {
	a, err := NewTokenIssuer("", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	b, err := NewTokenIssuer("", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	tok, err := a.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := b.Verify(tok); !apierr.IsAuth(err) {
		t.Fatalf("Verify: expected auth error across secrets, got %v", err)
	}
}
