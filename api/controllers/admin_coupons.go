package controllers

import (
	"net/http"

	"github.com/DragonsUnit/AeroCommerce/api/responses"
	"github.com/DragonsUnit/AeroCommerce/internal/coupons"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
	"github.com/DragonsUnit/AeroCommerce/pkg/logger"
)

// AdminCoupons lists every coupon for back-office review.
func AdminCoupons(repo *coupons.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupons repository unavailable"))
			return
		}

		rows, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"coupons": coupons.ToCouponViews(rows),
		})
	}
}
