package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/DragonsUnit/AeroCommerce/api/responses"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
	"github.com/DragonsUnit/AeroCommerce/pkg/logger"
)

// AdminChecker answers the admin allow-list predicate.
type AdminChecker interface {
	Admin(ctx context.Context, userID uuid.UUID) bool
}

// SellerChecker resolves the caller's approved store.
type SellerChecker interface {
	Seller(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool)
}

// RequireAdmin denies the request unless the authenticated user is on the
// admin allow-list. Fail-closed: unparsable ids are denied.
func RequireAdmin(checker AdminChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil || !checker.Admin(r.Context(), userID) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSeller denies the request unless the authenticated user owns an
// approved store, and seeds the context with that store id.
func RequireSeller(checker SellerChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller access required"))
				return
			}
			storeID, ok := checker.Seller(r.Context(), userID)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller access required"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithStoreID(r.Context(), storeID.String())))
		})
	}
}
