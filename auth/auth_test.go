package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studyhub/globals"

	"github.com/golang-jwt/jwt/v5"
)

func TestCreateToken(t *testing.T) {
	body := `{"email":"a@x.com","role":"student"}`
	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateToken(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}

	if claims["email"] != "a@x.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
	if claims["role"] != "student" {
		t.Errorf("role claim = %v", claims["role"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatal(err)
	}
	ttl := time.Until(exp.Time)
	if ttl < 55*time.Minute || ttl > 65*time.Minute {
		t.Errorf("expiry %v from now, want about 1h", ttl)
	}
}

func TestCreateTokenBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	CreateToken(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
