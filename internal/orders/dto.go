package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/DragonsUnit/AeroCommerce/pkg/db/models"
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
)

// OrderItemView is the item shape returned in order listings.
type OrderItemView struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price"`
	Images    []string  `json:"images,omitempty"`
}

// AddressView is the shipping address shape returned in order listings.
type AddressView struct {
	Recipient string  `json:"recipient"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zip"`
	Phone     *string `json:"phone,omitempty"`
}

// OrderView is the order shape returned in order listings.
type OrderView struct {
	ID            uuid.UUID           `json:"id"`
	StoreID       uuid.UUID           `json:"store_id"`
	Total         string              `json:"total"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Status        enums.OrderStatus   `json:"status"`
	IsCouponUsed  bool                `json:"is_coupon_used"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemView     `json:"items"`
	Address       *AddressView        `json:"address,omitempty"`
}

// ToOrderView maps a preloaded order row to its response shape.
func ToOrderView(order models.Order) OrderView {
	view := OrderView{
		ID:            order.ID,
		StoreID:       order.StoreID,
		Total:         order.Total.StringFixed(2),
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		IsCouponUsed:  order.IsCouponUsed,
		CreatedAt:     order.CreatedAt,
		Items:         make([]OrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		itemView := OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
		}
		if item.Product != nil {
			itemView.Name = item.Product.Name
			itemView.Images = item.Product.Images
		}
		view.Items = append(view.Items, itemView)
	}
	if order.Address != nil {
		view.Address = &AddressView{
			Recipient: order.Address.Recipient,
			Street:    order.Address.Street,
			City:      order.Address.City,
			State:     order.Address.State,
			Zip:       order.Address.Zip,
			Phone:     order.Address.Phone,
		}
	}
	return view
}

// ToOrderViews maps a list of preloaded orders.
func ToOrderViews(rows []models.Order) []OrderView {
	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ToOrderView(row))
	}
	return views
}
