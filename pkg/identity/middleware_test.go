package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shadownumbers/numrent/internal/domain"
)

type stubRegistrar struct {
	err  error
	last int
}

func (s *stubRegistrar) Identify(_ context.Context, userID int, username string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.last = userID
	return &domain.User{UserID: userID, Username: username}, nil
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		registrarError error
		expectedStatus int
	}{
		{name: "valid id", header: "7", expectedStatus: http.StatusOK},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "non-numeric id", header: "seven", expectedStatus: http.StatusUnauthorized},
		{name: "non-positive id", header: "0", expectedStatus: http.StatusUnauthorized},
		{name: "registrar failure", header: "7", registrarError: errors.New("write failed"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registrar := &stubRegistrar{err: tt.registrarError}
			var seenUserID int
			handler := Middleware(registrar)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenUserID = FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/numbers", nil)
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}
			req.Header.Set("X-Username", "alice")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, 7, seenUserID)
				assert.Equal(t, 7, registrar.last)
			}
		})
	}
}

func TestOwnerOnly(t *testing.T) {
	tests := []struct {
		name           string
		ownerID        int
		userID         int
		expectedStatus int
	}{
		{name: "owner passes", ownerID: 7, userID: 7, expectedStatus: http.StatusOK},
		{name: "other user rejected", ownerID: 7, userID: 8, expectedStatus: http.StatusForbidden},
		{name: "unset owner locks everyone out", ownerID: 0, userID: 7, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := OwnerOnly(tt.ownerID)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/admin/promos", nil)
			ctx := context.WithValue(req.Context(), UserIDKey, tt.userID)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
