// Package identity extracts the caller identity supplied by the chat front
// end. Authentication itself happens there; this layer only trusts the
// already-authenticated id and gates the admin surface on the owner id.
package identity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/pkg/utils"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

const (
	userIDHeader   = "X-User-ID"
	usernameHeader = "X-Username"
)

type Registrar interface {
	Identify(ctx context.Context, userID int, username string) (*domain.User, error)
}

func Middleware(registrar Registrar) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := strconv.Atoi(r.Header.Get(userIDHeader))
			if err != nil || userID <= 0 {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if _, err := registrar.Identify(r.Context(), userID, r.Header.Get(usernameHeader)); err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerOnly rejects every caller except the configured owner.
func OwnerOnly(ownerID int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value(UserIDKey).(int)
			if !ok || ownerID == 0 || userID != ownerID {
				utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func FromContext(ctx context.Context) int {
	userID, _ := ctx.Value(UserIDKey).(int)
	return userID
}
