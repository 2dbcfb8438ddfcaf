package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	customersvc "storefront/internal/service/customer"
)

func TestSignupHandler_Created(t *testing.T) {
	deps := newTestDeps(&domain.Customer{ID: "cust-1", Email: "user@example.com"})

	body := `{"email":"user@example.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(t, deps, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"user@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	deps := newTestDeps(nil)
	deps.CustomerSvc = &stubCustomerSvc{signupErr: domain.ErrAlreadyExists}

	body := `{"email":"user@example.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(t, deps, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginHandler_ReturnsTokens(t *testing.T) {
	deps := newTestDeps(&domain.Customer{ID: "cust-1", Email: "user@example.com"})

	body := `{"email":"user@example.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(t, deps, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	for _, want := range []string{`"accessToken":"access"`, `"refreshToken":"refresh"`, `"expiresIn":3600`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("missing %s in body: %s", want, rec.Body.String())
		}
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	deps := newTestDeps(nil)
	deps.CustomerSvc = &stubCustomerSvc{loginErr: customersvc.ErrInvalidCredentials}

	body := `{"email":"user@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(t, deps, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_UnauthorizedWithoutToken(t *testing.T) {
	deps := newTestDeps(&domain.Customer{ID: "cust-1"})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := serve(t, deps, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_InvalidToken(t *testing.T) {
	deps := newTestDeps(nil)
	deps.CustomerSvc = &stubCustomerSvc{lookupErr: customersvc.ErrInvalidToken}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := serve(t, deps, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_ReturnsCustomer(t *testing.T) {
	deps := newTestDeps(&domain.Customer{ID: "cust-1", Email: "user@example.com"})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := serve(t, deps, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"cust-1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
