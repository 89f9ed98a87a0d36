package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/DragonsUnit/AeroCommerce/api/middleware"
	"github.com/DragonsUnit/AeroCommerce/api/responses"
	"github.com/DragonsUnit/AeroCommerce/api/validators"
	"github.com/DragonsUnit/AeroCommerce/internal/checkout"
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
	"github.com/DragonsUnit/AeroCommerce/pkg/logger"
)

type placeOrderItem struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type placeOrderRequest struct {
	AddressID     string           `json:"address_id" validate:"required,uuid"`
	Items         []placeOrderItem `json:"items" validate:"required,min=1,dive"`
	CouponCode    string           `json:"coupon_code"`
	PaymentMethod string           `json:"payment_method" validate:"required"`
}

// PlaceOrder turns the authenticated user's cart payload into per-store orders.
func PlaceOrder(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body placeOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := buildPlaceOrderInput(r, userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.PlaceOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"orders": placed,
		})
	}
}

// ListOrders returns the user's order history, newest first.
func ListOrders(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.ListOrders(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orders": views,
		})
	}
}

func authenticatedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context")
	}
	return userID, nil
}

func buildPlaceOrderInput(r *http.Request, userID uuid.UUID, body placeOrderRequest) (checkout.PlaceOrderInput, error) {
	addressID, err := uuid.Parse(body.AddressID)
	if err != nil {
		return checkout.PlaceOrderInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid address id")
	}

	lines := make([]checkout.CartLine, 0, len(body.Items))
	for _, item := range body.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return checkout.PlaceOrderInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
		}
		lines = append(lines, checkout.CartLine{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	method, err := enums.ParsePaymentMethod(body.PaymentMethod)
	if err != nil {
		return checkout.PlaceOrderInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	return checkout.PlaceOrderInput{
		UserID:        userID,
		AddressID:     addressID,
		Lines:         lines,
		CouponCode:    body.CouponCode,
		PaymentMethod: method,
		IsMember:      middleware.PlanFromContext(r.Context()).IsPlus(),
	}, nil
}
