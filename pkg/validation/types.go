package validation

import "github.com/example/goldshop/pkg/models"

// GoldItemRequest is the payload for POST /api/gold. Pointers separate a
// missing field from its zero value.
type GoldItemRequest struct {
	Name        *string      `json:"name" validate:"required,min=1"`
	Type        *string      `json:"type" validate:"required"` // bar | nugget, not enforced
	Purity      *float64     `json:"purity" validate:"required,gte=0,lte=24"`
	WeightGrams *float64     `json:"weight_grams" validate:"required,gt=0"`
	PriceUSD    *float64     `json:"price_usd" validate:"required,gt=0"`
	Image       *string      `json:"image,omitempty"`
	ThreeDURL   *string      `json:"three_d_url,omitempty"`
	InStock     OptionalBool `json:"in_stock"` // defaults to true
	Badge       *string      `json:"badge,omitempty"`
}

// ToModel converts a validated request, applying defaults.
func (r *GoldItemRequest) ToModel() models.GoldItem {
	inStock := r.InStock.Or(true)
	return models.GoldItem{
		Name:        *r.Name,
		Type:        *r.Type,
		Purity:      *r.Purity,
		WeightGrams: *r.WeightGrams,
		PriceUSD:    *r.PriceUSD,
		Image:       r.Image,
		ThreeDURL:   r.ThreeDURL,
		InStock:     inStock,
		Badge:       r.Badge,
	}
}

// OptionalBool is a JSON boolean that may be omitted but not null. Null and
// non-boolean values are recorded and rejected by the validator.
type OptionalBool struct {
	set   bool
	valid bool
	value bool
}

func (b *OptionalBool) UnmarshalJSON(data []byte) error {
	b.set = true
	switch string(data) {
	case "true":
		b.valid, b.value = true, true
	case "false":
		b.valid, b.value = true, false
	default:
		b.valid, b.value = false, false
	}
	return nil
}

// Or returns the decoded value, or def when the field was omitted.
func (b OptionalBool) Or(def bool) bool {
	if !b.set {
		return def
	}
	return b.value
}

// Invalid reports a present value that is not true or false.
func (b OptionalBool) Invalid() bool {
	return b.set && !b.valid
}

// OrderItemRequest is a single order line.
type OrderItemRequest struct {
	ItemID   *string `json:"item_id" validate:"required"`
	Quantity *int    `json:"quantity" validate:"required,gt=0"`
}

// OrderRequest is the payload for POST /api/orders. Items may be empty but
// must be present.
type OrderRequest struct {
	CustomerName    *string            `json:"customer_name" validate:"required"`
	CustomerEmail   *string            `json:"customer_email" validate:"required"`
	ShippingAddress *string            `json:"shipping_address" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,dive"`
	Notes           *string            `json:"notes,omitempty"`
}

func (r *OrderRequest) ToModel() models.Order {
	items := make([]models.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, models.OrderItem{
			ItemID:   *it.ItemID,
			Quantity: *it.Quantity,
		})
	}
	return models.Order{
		CustomerName:    *r.CustomerName,
		CustomerEmail:   *r.CustomerEmail,
		ShippingAddress: *r.ShippingAddress,
		Items:           items,
		Notes:           r.Notes,
	}
}
