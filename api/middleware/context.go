package middleware

import (
	"context"

	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxPlan     contextKey = "plan"
	ctxAccessID contextKey = "access_id"
	ctxStoreID  contextKey = "store_id"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func PlanFromContext(ctx context.Context) enums.MembershipPlan {
	if ctx == nil {
		return enums.MembershipPlanFree
	}
	if v, ok := ctx.Value(ctxPlan).(enums.MembershipPlan); ok && v.IsValid() {
		return v
	}
	return enums.MembershipPlanFree
}

func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

func StoreIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxStoreID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithPlan injects the membership plan into the context.
func WithPlan(ctx context.Context, plan enums.MembershipPlan) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPlan, plan)
}

// WithStoreID injects the store identifier into the context for downstream handlers.
func WithStoreID(ctx context.Context, storeID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxStoreID, storeID)
}
