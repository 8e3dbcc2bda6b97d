package middleware

import (
	"context"
	"net/http"
)

// OwnerHeader carries the opaque external user identifier on every request.
// In production a chat gateway in front of this API sets it from the
// platform's authenticated user ID; the API itself never mints owner IDs.
const OwnerHeader = "X-User-ID"

// ownerKey is the context key for the request's owner ID.
// An unexported struct type avoids collisions with other packages' keys.
type ownerKey struct{}

// RequireOwner rejects requests without the owner header with 401 and puts
// the owner ID into the request context for handlers to read via OwnerFrom.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			http.Error(w, "missing "+OwnerHeader+" header", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ownerKey{}, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerFrom returns the owner ID stored by RequireOwner.
// The second return is false when the middleware did not run for this request.
func OwnerFrom(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey{}).(string)
	return owner, ok
}
