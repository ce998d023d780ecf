package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Payment struct {
	Method string        `json:"method,omitempty"`
	Status PaymentStatus `json:"status"`
	PaidAt *time.Time    `json:"paidAt,omitempty"`
}

type Address struct {
	FullAddress string `json:"fullAddress"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
}

// OrderItem snapshots the product at purchase time. ItemTotalCents is fixed
// at creation; it is a historical record, not a live derivation from current
// product prices.
type OrderItem struct {
	ID             string `json:"id"`
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Description    string `json:"description,omitempty"`
	ProductImage   string `json:"productImage,omitempty"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	ItemTotalCents int64  `json:"itemTotalCents"`
}

// SubOrder is the portion of an order fulfilled by a single merchant. Item
// membership and SubtotalCents never change after creation; only Status and
// the shipping fields do.
type SubOrder struct {
	ID                string      `json:"id"`
	SubOrderNumber    string      `json:"subOrderNumber"`
	OrderID           string      `json:"orderId"`
	MerchantID        string      `json:"merchantId"`
	Status            Status      `json:"status"`
	Items             []OrderItem `json:"items"`
	SubtotalCents     int64       `json:"subtotalCents"`
	TrackingNumber    string      `json:"trackingNumber,omitempty"`
	Carrier           string      `json:"carrier,omitempty"`
	EstimatedDelivery *time.Time  `json:"estimatedDelivery,omitempty"`
	ShippedAt         *time.Time  `json:"shippedAt,omitempty"`
	DeliveredAt       *time.Time  `json:"deliveredAt,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
}

type Order struct {
	ID              string     `json:"id"`
	OrderNumber     string     `json:"orderNumber"`
	UserID          string     `json:"-"`
	SubOrders       []SubOrder `json:"subOrders"`
	TotalCents      int64      `json:"totalCents"`
	Payment         Payment    `json:"payment"`
	ShippingAddress Address    `json:"shippingAddress"`
	CreatedAt       time.Time  `json:"createdAt"`
}
