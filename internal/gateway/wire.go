package gateway

import (
	"time"

	"ebuy-client/internal/domain"
)

// Wire payloads mirror the API's snake_case JSON with decimal-string money.
// They are exported so the stub API renders exactly the dialect this client
// consumes. Converters run in both directions for the same reason.

const dateOnly = "2006-01-02"

type ProductPayload struct {
	ID            string    `json:"id"`
	MerchantID    string    `json:"merchant_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Stock         int       `json:"stock"`
	OriginalPrice string    `json:"original_price"`
	SalePrice     string    `json:"sale_price,omitempty"`
	IsOnSale      bool      `json:"is_on_sale"`
	LikesCount    int       `json:"likes_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func ProductPayloadFrom(p domain.Product) ProductPayload {
	out := ProductPayload{
		ID:            p.ID,
		MerchantID:    p.MerchantID,
		Name:          p.Name,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		Stock:         p.Stock,
		OriginalPrice: domain.DecimalFromCents(p.OriginalPriceCents),
		IsOnSale:      p.OnSale,
		LikesCount:    p.LikesCount,
		IsActive:      p.Active,
		CreatedAt:     p.CreatedAt,
	}
	if p.SalePriceCents > 0 {
		out.SalePrice = domain.DecimalFromCents(p.SalePriceCents)
	}
	return out
}

func (p ProductPayload) Product() (domain.Product, error) {
	original, err := domain.CentsFromDecimal(p.OriginalPrice)
	if err != nil {
		return domain.Product{}, err
	}
	var sale int64
	if p.SalePrice != "" {
		if sale, err = domain.CentsFromDecimal(p.SalePrice); err != nil {
			return domain.Product{}, err
		}
	}
	return domain.Product{
		ID:                 p.ID,
		MerchantID:         p.MerchantID,
		Name:               p.Name,
		Description:        p.Description,
		ImageURL:           p.ImageURL,
		Stock:              p.Stock,
		OriginalPriceCents: original,
		SalePriceCents:     sale,
		OnSale:             p.IsOnSale,
		LikesCount:         p.LikesCount,
		Active:             p.IsActive,
		CreatedAt:          p.CreatedAt,
	}, nil
}

type CartItemPayload struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image,omitempty"`
	UnitPrice    string    `json:"unit_price"`
	Stock        int       `json:"stock"`
	Quantity     int       `json:"quantity"`
	ItemTotal    string    `json:"item_total"`
	AddedAt      time.Time `json:"added_at"`
}

type CartPayload struct {
	ID            string            `json:"id"`
	Items         []CartItemPayload `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	CartTotal     string            `json:"cart_total"`
	CreatedAt     time.Time         `json:"created_at"`
}

func CartPayloadFrom(c domain.Cart) CartPayload {
	items := make([]CartItemPayload, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, CartItemPayload{
			ID:           l.ID,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductImage: l.ProductImage,
			UnitPrice:    domain.DecimalFromCents(l.UnitPriceCents),
			Stock:        l.Stock,
			Quantity:     l.Quantity,
			ItemTotal:    domain.DecimalFromCents(l.TotalCents()),
			AddedAt:      l.AddedAt,
		})
	}
	return CartPayload{
		ID:            c.ID,
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
		CartTotal:     domain.DecimalFromCents(c.TotalCents()),
		CreatedAt:     c.CreatedAt,
	}
}

func (p CartPayload) Cart() (domain.Cart, error) {
	lines := make([]domain.CartLine, 0, len(p.Items))
	for _, item := range p.Items {
		unit, err := domain.CentsFromDecimal(item.UnitPrice)
		if err != nil {
			return domain.Cart{}, err
		}
		lines = append(lines, domain.CartLine{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			ProductImage:   item.ProductImage,
			UnitPriceCents: unit,
			Stock:          item.Stock,
			Quantity:       item.Quantity,
			AddedAt:        item.AddedAt,
		})
	}
	return domain.Cart{ID: p.ID, Lines: lines, CreatedAt: p.CreatedAt}, nil
}

type OrderItemPayload struct {
	ID                 string `json:"id"`
	ProductID          string `json:"product_id"`
	ProductName        string `json:"product_name"`
	ProductDescription string `json:"product_description,omitempty"`
	ProductImage       string `json:"product_image,omitempty"`
	Price              string `json:"price"`
	Quantity           int    `json:"quantity"`
	ItemTotal          string `json:"item_total"`
}

type SubOrderPayload struct {
	ID                string             `json:"id"`
	SubOrderNumber    string             `json:"sub_order_number"`
	OrderID           string             `json:"order_id"`
	MerchantID        string             `json:"merchant_id"`
	Status            string             `json:"status"`
	Items             []OrderItemPayload `json:"items"`
	Subtotal          string             `json:"subtotal"`
	TrackingNumber    string             `json:"tracking_number,omitempty"`
	Carrier           string             `json:"carrier,omitempty"`
	EstimatedDelivery string             `json:"estimated_delivery,omitempty"`
	ShippedAt         *time.Time         `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time         `json:"delivered_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

type PaymentPayload struct {
	PaymentMethod string     `json:"payment_method,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type AddressPayload struct {
	FullAddress string `json:"full_address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
}

type OrderPayload struct {
	ID              string            `json:"id"`
	OrderNumber     string            `json:"order_number"`
	SubOrders       []SubOrderPayload `json:"sub_orders"`
	TotalAmount     string            `json:"total_amount"`
	Payment         PaymentPayload    `json:"payment"`
	ShippingAddress AddressPayload    `json:"shipping_address"`
	CreatedAt       time.Time         `json:"created_at"`
}

func AddressPayloadFrom(a domain.Address) AddressPayload {
	return AddressPayload{
		FullAddress: a.FullAddress,
		City:        a.City,
		State:       a.State,
		ZipCode:     a.ZipCode,
		Country:     a.Country,
		Phone:       a.Phone,
	}
}

func (p AddressPayload) Address() domain.Address {
	return domain.Address{
		FullAddress: p.FullAddress,
		City:        p.City,
		State:       p.State,
		ZipCode:     p.ZipCode,
		Country:     p.Country,
		Phone:       p.Phone,
	}
}

func SubOrderPayloadFrom(s domain.SubOrder) SubOrderPayload {
	items := make([]OrderItemPayload, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, OrderItemPayload{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			ProductName:        it.ProductName,
			ProductDescription: it.Description,
			ProductImage:       it.ProductImage,
			Price:              domain.DecimalFromCents(it.UnitPriceCents),
			Quantity:           it.Quantity,
			ItemTotal:          domain.DecimalFromCents(it.ItemTotalCents),
		})
	}
	out := SubOrderPayload{
		ID:             s.ID,
		SubOrderNumber: s.SubOrderNumber,
		OrderID:        s.OrderID,
		MerchantID:     s.MerchantID,
		Status:         string(s.Status),
		Items:          items,
		Subtotal:       domain.DecimalFromCents(s.SubtotalCents),
		TrackingNumber: s.TrackingNumber,
		Carrier:        s.Carrier,
		ShippedAt:      s.ShippedAt,
		DeliveredAt:    s.DeliveredAt,
		CreatedAt:      s.CreatedAt,
	}
	if s.EstimatedDelivery != nil {
		out.EstimatedDelivery = s.EstimatedDelivery.Format(dateOnly)
	}
	return out
}

func (p SubOrderPayload) SubOrder() (domain.SubOrder, error) {
	subtotal, err := domain.CentsFromDecimal(p.Subtotal)
	if err != nil {
		return domain.SubOrder{}, err
	}
	items := make([]domain.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		price, err := domain.CentsFromDecimal(it.Price)
		if err != nil {
			return domain.SubOrder{}, err
		}
		total, err := domain.CentsFromDecimal(it.ItemTotal)
		if err != nil {
			return domain.SubOrder{}, err
		}
		items = append(items, domain.OrderItem{
			ID:             it.ID,
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Description:    it.ProductDescription,
			ProductImage:   it.ProductImage,
			UnitPriceCents: price,
			Quantity:       it.Quantity,
			ItemTotalCents: total,
		})
	}
	out := domain.SubOrder{
		ID:             p.ID,
		SubOrderNumber: p.SubOrderNumber,
		OrderID:        p.OrderID,
		MerchantID:     p.MerchantID,
		Status:         domain.Status(p.Status),
		Items:          items,
		SubtotalCents:  subtotal,
		TrackingNumber: p.TrackingNumber,
		Carrier:        p.Carrier,
		ShippedAt:      p.ShippedAt,
		DeliveredAt:    p.DeliveredAt,
		CreatedAt:      p.CreatedAt,
	}
	if p.EstimatedDelivery != "" {
		eta, err := time.Parse(dateOnly, p.EstimatedDelivery)
		if err != nil {
			return domain.SubOrder{}, err
		}
		out.EstimatedDelivery = &eta
	}
	return out, nil
}

func OrderPayloadFrom(o domain.Order) OrderPayload {
	subs := make([]SubOrderPayload, 0, len(o.SubOrders))
	for _, s := range o.SubOrders {
		subs = append(subs, SubOrderPayloadFrom(s))
	}
	return OrderPayload{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		SubOrders:   subs,
		TotalAmount: domain.DecimalFromCents(o.TotalCents),
		Payment: PaymentPayload{
			PaymentMethod: o.Payment.Method,
			PaymentStatus: string(o.Payment.Status),
			PaidAt:        o.Payment.PaidAt,
		},
		ShippingAddress: AddressPayloadFrom(o.ShippingAddress),
		CreatedAt:       o.CreatedAt,
	}
}

func (p OrderPayload) Order() (domain.Order, error) {
	total, err := domain.CentsFromDecimal(p.TotalAmount)
	if err != nil {
		return domain.Order{}, err
	}
	subs := make([]domain.SubOrder, 0, len(p.SubOrders))
	for _, sp := range p.SubOrders {
		sub, err := sp.SubOrder()
		if err != nil {
			return domain.Order{}, err
		}
		subs = append(subs, sub)
	}
	return domain.Order{
		ID:          p.ID,
		OrderNumber: p.OrderNumber,
		SubOrders:   subs,
		TotalCents:  total,
		Payment: domain.Payment{
			Method: p.Payment.PaymentMethod,
			Status: domain.PaymentStatus(p.Payment.PaymentStatus),
			PaidAt: p.Payment.PaidAt,
		},
		ShippingAddress: p.ShippingAddress.Address(),
		CreatedAt:       p.CreatedAt,
	}, nil
}

type WishlistPayload struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

func (p WishlistPayload) State() domain.WishlistState {
	return domain.WishlistState{Liked: p.Liked, LikesCount: p.LikesCount}
}

type UserPayload struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	MerchantID string `json:"merchant_id,omitempty"`
}

func UserPayloadFrom(u domain.User) UserPayload {
	return UserPayload{ID: u.ID, Email: u.Email, Name: u.Name, MerchantID: u.MerchantID}
}

func (p UserPayload) User() domain.User {
	return domain.User{ID: p.ID, Email: p.Email, Name: p.Name, MerchantID: p.MerchantID}
}
