package types

import "github.com/google/uuid"

// CartContents is the user's embedded cart, a product id → quantity map
// stored as jsonb on the user row and cleared after checkout.
type CartContents map[uuid.UUID]int

// IsEmpty reports whether the cart holds no items.
func (c CartContents) IsEmpty() bool {
	return len(c) == 0
}
