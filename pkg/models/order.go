package models

// Order is a customer purchase request. Items are not checked against the
// catalog and no stock is reserved.
type Order struct {
	CustomerName    string      `bson:"customer_name" json:"customer_name"`
	CustomerEmail   string      `bson:"customer_email" json:"customer_email"`
	ShippingAddress string      `bson:"shipping_address" json:"shipping_address"`
	Items           []OrderItem `bson:"items" json:"items"`
	Notes           *string     `bson:"notes" json:"notes"`
}

func (Order) CollectionName() string {
	return "order"
}

type OrderItem struct {
	ItemID   string `bson:"item_id" json:"item_id"`
	Quantity int    `bson:"quantity" json:"quantity"`
}
