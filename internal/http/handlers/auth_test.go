package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"farmstead/internal/infra/google"
	"farmstead/internal/middleware"
)

type fakeVerifier struct {
	claims *google.IDClaims
	err    error
}

func (f *fakeVerifier) VerifyIDToken(ctx context.Context, token string) (*google.IDClaims, error) {
	return f.claims, f.err
}

func TestAuthGoogleVerify(t *testing.T) {
	app := newTestApp()
	app.GoogleVerifier = &fakeVerifier{claims: &google.IDClaims{
		Sub:     "google-sub-1",
		Email:   "farmer@example.com",
		Name:    "Farmer",
		Picture: "https://example.com/p.jpg",
	}}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{"id_token":"opaque"}`))
	rec := httptest.NewRecorder()
	app.AuthGoogleVerify(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
	}

	var resp googleVerifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" || resp.User.Email != "farmer@example.com" {
		t.Fatalf("response = %+v", resp)
	}

	claims, err := middleware.VerifyJWT(app.JWTSecret, resp.Token)
	if err != nil {
		t.Fatalf("session token does not verify: %v", err)
	}
	if claims.Sub != resp.User.ID {
		t.Fatalf("token sub = %q, want user id %q", claims.Sub, resp.User.ID)
	}
}

func TestAuthGoogleVerifySameSubSameAccount(t *testing.T) {
	app := newTestApp()
	app.GoogleVerifier = &fakeVerifier{claims: &google.IDClaims{Sub: "google-sub-1", Email: "farmer@example.com"}}

	signIn := func() googleVerifyResponse {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{"id_token":"opaque"}`))
		rec := httptest.NewRecorder()
		app.AuthGoogleVerify(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d: %s", rec.Code, rec.Body.String())
		}
		var resp googleVerifyResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp
	}

	first := signIn()
	second := signIn()
	if first.User.ID != second.User.ID {
		t.Fatalf("repeat sign-in created a new account: %q vs %q", first.User.ID, second.User.ID)
	}
}

func TestAuthGoogleVerifyRejectsBadToken(t *testing.T) {
	app := newTestApp()
	app.GoogleVerifier = &fakeVerifier{err: errors.New("signature mismatch")}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{"id_token":"forged"}`))
	rec := httptest.NewRecorder()
	app.AuthGoogleVerify(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthGoogleVerifyRequiresToken(t *testing.T) {
	app := newTestApp()
	app.GoogleVerifier = &fakeVerifier{}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	app.AuthGoogleVerify(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestMe(t *testing.T) {
	app := newTestApp()
	app.GoogleVerifier = &fakeVerifier{claims: &google.IDClaims{Sub: "google-sub-1", Email: "farmer@example.com", Name: "Farmer"}}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google", strings.NewReader(`{"id_token":"opaque"}`))
	rec := httptest.NewRecorder()
	app.AuthGoogleVerify(rec, req)
	var resp googleVerifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	meReq := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	meReq = meReq.WithContext(middleware.ContextWithUserID(meReq.Context(), resp.User.ID))
	meRec := httptest.NewRecorder()
	app.Me(meRec, meReq)
	if meRec.Code != http.StatusOK {
		t.Fatalf("got %d: %s", meRec.Code, meRec.Body.String())
	}
	var profile userProfileDTO
	if err := json.Unmarshal(meRec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Email != "farmer@example.com" {
		t.Fatalf("profile = %+v", profile)
	}
}
