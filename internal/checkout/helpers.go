package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	pkgerrors "github.com/DragonsUnit/AeroCommerce/pkg/errors"
)

// CartLine is one client-supplied cart entry.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// GroupedItem is a cart line with the authoritative catalog price attached.
type GroupedItem struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Catalog resolves product ids to active products.
type Catalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// GroupCartItems partitions cart lines by the owning store, attaching catalog
// prices. Lines referencing missing or inactive products follow the configured
// policy: skip drops the line, fail aborts the checkout. The returned store id
// slice preserves first-seen order; the first store's order later absorbs the
// shipping fee.
func GroupCartItems(ctx context.Context, catalog Catalog, lines []CartLine, policy config.MissingProductPolicy) (map[uuid.UUID][]GroupedItem, []uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	catalogByID, err := catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart products")
	}

	groups := make(map[uuid.UUID][]GroupedItem)
	var storeOrder []uuid.UUID
	for _, line := range lines {
		product, ok := catalogByID[line.ProductID]
		if !ok {
			if policy == config.MissingProductFail {
				return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
					WithDetails(map[string]any{"product_id": line.ProductID})
			}
			continue
		}
		if _, seen := groups[product.StoreID]; !seen {
			storeOrder = append(storeOrder, product.StoreID)
		}
		groups[product.StoreID] = append(groups[product.StoreID], GroupedItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
	}
	return groups, storeOrder, nil
}

var oneHundred = decimal.NewFromInt(100)

// PriceGroup totals one store group. The discount applies to the group's
// subtotal before any fee. Non-members pay the shipping fee exactly once per
// checkout: the flag comes in from the previous group and goes out updated.
// The result is rounded half-up to 2 decimals.
func PriceGroup(items []GroupedItem, discount *decimal.Decimal, isMember bool, shippingCharged bool, fee decimal.Decimal) (decimal.Decimal, bool) {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if discount != nil {
		total = total.Sub(total.Mul(*discount).Div(oneHundred))
	}
	if !isMember && !shippingCharged {
		total = total.Add(fee)
		shippingCharged = true
	}
	return total.Round(2), shippingCharged
}
