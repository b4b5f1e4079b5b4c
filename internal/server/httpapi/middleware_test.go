package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"golang.org/x/time/rate"
)

func protectedEcho(t *testing.T, auth Authenticator) http.Handler {
	t.Helper()
	return AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := UserFromContext(r.Context())
		if err != nil {
			t.Fatalf("user missing from context: %v", err)
		}
		w.Write([]byte(user.ID))
	}))
}

func TestAuthMiddleware_AttachesUser(t *testing.T) {
	auth := &fakeUserProvider{authOut: &models.User{ID: "u-1"}}
	h := protectedEcho(t, auth)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+"tkn")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if rr.Body.String() != "u-1" {
		t.Fatalf("wrong user resolved: %q", rr.Body.String())
	}
	if auth.lastToken != "tkn" {
		t.Fatalf("token not forwarded: %q", auth.lastToken)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	auth := &fakeUserProvider{authOut: &models.User{ID: "u-1"}}
	h := AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "Not authorized" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	auth := &fakeUserProvider{authOut: &models.User{ID: "u-1"}}
	h := AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(common.AuthorizationHeaderName, "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if auth.lastToken != "" {
		t.Fatalf("store must not be consulted for malformed credentials")
	}
}

func TestAuthMiddleware_CollapsesTokenFailures(t *testing.T) {
	for _, authErr := range []error{
		common.ErrInvalidToken,
		common.ErrTokenExpired,
		common.ErrorUnauthorized,
	} {
		auth := &fakeUserProvider{authErr: authErr}
		h := AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatalf("handler must not run: %v", authErr)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+"tkn")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%v: unexpected status %d", authErr, rr.Code)
		}
		if msg := decodeMessage(t, rr); msg != "Not authorized" {
			t.Fatalf("%v: unexpected message %q", authErr, msg)
		}
	}
}

func TestRateLimiter_Throttles(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 2)
	defer rl.Stop()

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests must pass: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request must be throttled: %v", codes)
	}

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("separate client must not be throttled: %d", rr.Code)
	}
}
