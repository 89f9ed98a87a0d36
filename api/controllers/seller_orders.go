package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/DragonsUnit/AeroCommerce/api/middleware"
	"github.com/DragonsUnit/AeroCommerce/api/responses"
	"github.com/DragonsUnit/AeroCommerce/internal/orders"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
	"github.com/DragonsUnit/AeroCommerce/pkg/logger"
)

// SellerOrders lists every order placed against the caller's approved store.
// The store id is seeded by the seller gate middleware.
func SellerOrders(repo orders.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders repository unavailable"))
			return
		}

		storeID, err := uuid.Parse(middleware.StoreIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "missing store context"))
			return
		}

		rows, err := repo.ListByStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store orders"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orders": orders.ToOrderViews(rows),
		})
	}
}
