package stubapi

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ebuy-client/internal/domain"
)

// Store keeps the stub API's state in memory. It enforces the same business
// rules the production service does (one line per product, stock ceilings,
// per-merchant order splitting, the sub-order status machine) so clients
// exercised against it see realistic rejections.
type Store struct {
	mu           sync.Mutex
	users        map[string]userRecord // keyed by email
	products     map[string]domain.Product
	productOrder []string
	carts        map[string]*domain.Cart // keyed by user id
	orders       map[string]*domain.Order
	orderSeq     []string
	wishlists    map[string]map[string]bool // user id -> product id -> liked
}

type userRecord struct {
	user     domain.User
	password string
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]userRecord),
		products:  make(map[string]domain.Product),
		carts:     make(map[string]*domain.Cart),
		orders:    make(map[string]*domain.Order),
		wishlists: make(map[string]map[string]bool),
	}
}

func (s *Store) AddUser(user domain.User, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users[strings.ToLower(user.Email)] = userRecord{user: user, password: password}
}

func (s *Store) AddProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.products[p.ID]; !exists {
		s.productOrder = append(s.productOrder, p.ID)
	}
	s.products[p.ID] = p
	return p
}

// Authenticate checks credentials. The stub compares plain text; hashing
// belongs to the production service.
func (s *Store) Authenticate(email, password string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[strings.ToLower(email)]
	if !ok || rec.password != password {
		return domain.User{}, false
	}
	return rec.user, true
}

func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, s.products[id])
	}
	return out
}

func (s *Store) Product(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

// Cart returns the user's cart, creating it implicitly on first use. Line
// prices and stock levels are refreshed from the current product catalog on
// every read; this is why clients must treat the server's snapshot as the
// only source of price-dependent totals.
func (s *Store) Cart(userID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	s.repriceLocked(cart)
	return copyCart(cart)
}

func (s *Store) AddCartItem(userID, productID string, quantity int) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return domain.Cart{}, domain.Validationf("quantity must be a positive integer")
	}
	product, ok := s.products[productID]
	if !ok {
		return domain.Cart{}, domain.Validationf("product not found")
	}
	if !product.Active {
		return domain.Cart{}, domain.Validationf("%s is not available", product.Name)
	}
	if product.Stock == 0 {
		return domain.Cart{}, domain.Validationf("%s is out of stock", product.Name)
	}

	cart := s.cartLocked(userID)
	existing := 0
	if line, ok := cartLineByProduct(cart, productID); ok {
		existing = line.Quantity
	}
	if existing+quantity > product.Stock {
		return domain.Cart{}, domain.Validationf("only %d of %s left in stock", product.Stock, product.Name)
	}

	if line, ok := cartLineByProduct(cart, productID); ok {
		for i := range cart.Lines {
			if cart.Lines[i].ID == line.ID {
				cart.Lines[i].Quantity += quantity
			}
		}
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ID:             uuid.NewString(),
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductImage:   product.ImageURL,
			UnitPriceCents: product.EffectivePriceCents(),
			Stock:          product.Stock,
			Quantity:       quantity,
			AddedAt:        time.Now().UTC(),
		})
	}

	s.repriceLocked(cart)
	return copyCart(cart), nil
}

func (s *Store) UpdateCartItem(userID, itemID string, quantity int) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return domain.Cart{}, domain.Validationf("quantity must be a positive integer")
	}
	cart := s.cartLocked(userID)
	for i := range cart.Lines {
		if cart.Lines[i].ID != itemID {
			continue
		}
		product, ok := s.products[cart.Lines[i].ProductID]
		if ok && quantity > product.Stock {
			return domain.Cart{}, domain.Validationf("only %d of %s left in stock", product.Stock, product.Name)
		}
		cart.Lines[i].Quantity = quantity
		s.repriceLocked(cart)
		return copyCart(cart), nil
	}
	return domain.Cart{}, domain.ErrNotFound
}

func (s *Store) RemoveCartItem(userID, itemID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	for i := range cart.Lines {
		if cart.Lines[i].ID == itemID {
			cart.Lines = append(cart.Lines[:i:i], cart.Lines[i+1:]...)
			s.repriceLocked(cart)
			return copyCart(cart), nil
		}
	}
	return domain.Cart{}, domain.ErrNotFound
}

func (s *Store) ClearCart(userID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.cartLocked(userID)
	cart.Lines = nil
	return copyCart(cart)
}

// PlaceOrder turns the user's cart into an order with one sub-order per
// merchant, snapshots every item at its current price, then empties the
// cart. Sub-order membership and subtotals never change afterwards.
func (s *Store) PlaceOrder(userID string, address domain.Address, paymentMethod string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	if len(cart.Lines) == 0 {
		return domain.Order{}, domain.Validationf("cart is empty")
	}
	s.repriceLocked(cart)

	now := time.Now().UTC()
	order := &domain.Order{
		ID:          uuid.NewString(),
		OrderNumber: "ORD-" + referenceSuffix(),
		UserID:      userID,
		Payment: domain.Payment{
			Method: paymentMethod,
			Status: domain.PaymentPending,
		},
		ShippingAddress: address,
		CreatedAt:       now,
	}

	// Group lines by merchant, keeping the order merchants first appear in.
	var merchants []string
	linesByMerchant := make(map[string][]domain.CartLine)
	for _, line := range cart.Lines {
		merchantID := s.products[line.ProductID].MerchantID
		if _, seen := linesByMerchant[merchantID]; !seen {
			merchants = append(merchants, merchantID)
		}
		linesByMerchant[merchantID] = append(linesByMerchant[merchantID], line)
	}

	for _, merchantID := range merchants {
		sub := domain.SubOrder{
			ID:             uuid.NewString(),
			SubOrderNumber: "SUB-" + referenceSuffix(),
			OrderID:        order.ID,
			MerchantID:     merchantID,
			Status:         domain.StatusPending,
			CreatedAt:      now,
		}
		for _, line := range linesByMerchant[merchantID] {
			product := s.products[line.ProductID]
			item := domain.OrderItem{
				ID:             uuid.NewString(),
				ProductID:      line.ProductID,
				ProductName:    line.ProductName,
				Description:    product.Description,
				ProductImage:   line.ProductImage,
				UnitPriceCents: line.UnitPriceCents,
				Quantity:       line.Quantity,
				ItemTotalCents: line.TotalCents(),
			}
			sub.Items = append(sub.Items, item)
			sub.SubtotalCents += item.ItemTotalCents
		}
		order.TotalCents += sub.SubtotalCents
		order.SubOrders = append(order.SubOrders, sub)
	}

	cart.Lines = nil
	s.orders[order.ID] = order
	s.orderSeq = append(s.orderSeq, order.ID)
	return copyOrder(order), nil
}

// MarkPaid flips the payment to paid. Marking an already-paid order again is
// a no-op success.
func (s *Store) MarkPaid(orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	if order.Payment.Status != domain.PaymentPaid {
		now := time.Now().UTC()
		order.Payment.Status = domain.PaymentPaid
		order.Payment.PaidAt = &now
	}
	return copyOrder(order), nil
}

func (s *Store) OrdersFor(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, id := range s.orderSeq {
		if order := s.orders[id]; order.UserID == userID {
			out = append(out, copyOrder(order))
		}
	}
	return out
}

func (s *Store) OrderFor(userID, orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return domain.Order{}, domain.ErrNotFound
	}
	return copyOrder(order), nil
}

// MerchantSubOrders lists the merchant's sub-orders from paid orders only;
// unpaid orders are not offered for fulfilment.
func (s *Store) MerchantSubOrders(merchantID string) []domain.SubOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.SubOrder
	for _, id := range s.orderSeq {
		order := s.orders[id]
		if order.Payment.Status != domain.PaymentPaid {
			continue
		}
		for _, sub := range order.SubOrders {
			if sub.MerchantID == merchantID {
				out = append(out, copySubOrder(sub))
			}
		}
	}
	return out
}

type shipmentDetails struct {
	trackingNumber    string
	carrier           string
	estimatedDelivery *time.Time
}

// TransitionSubOrder applies a merchant action through the status machine.
// Illegal pairs fail with a TransitionError and leave the status unchanged.
func (s *Store) TransitionSubOrder(merchantID, subOrderID string, action domain.Action, shipment shipmentDetails) (domain.SubOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.orderSeq {
		order := s.orders[id]
		for i := range order.SubOrders {
			sub := &order.SubOrders[i]
			if sub.ID != subOrderID || sub.MerchantID != merchantID {
				continue
			}
			next, err := domain.Transition(sub.Status, action)
			if err != nil {
				return domain.SubOrder{}, err
			}
			now := time.Now().UTC()
			sub.Status = next
			switch action {
			case domain.ActionShip:
				sub.ShippedAt = &now
				sub.TrackingNumber = shipment.trackingNumber
				sub.Carrier = shipment.carrier
				sub.EstimatedDelivery = shipment.estimatedDelivery
			case domain.ActionDeliver:
				sub.DeliveredAt = &now
			}
			return copySubOrder(*sub), nil
		}
	}
	return domain.SubOrder{}, domain.ErrNotFound
}

func (s *Store) WishlistState(userID, productID string) (domain.WishlistState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[productID]
	if !ok {
		return domain.WishlistState{}, domain.ErrNotFound
	}
	return domain.WishlistState{
		Liked:      s.wishlists[userID][productID],
		LikesCount: product.LikesCount,
	}, nil
}

// ToggleWishlist flips the user's flag and moves the aggregate count with
// it. The returned pair is what clients cache wholesale.
func (s *Store) ToggleWishlist(userID, productID string) (domain.WishlistState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[productID]
	if !ok {
		return domain.WishlistState{}, domain.ErrNotFound
	}
	flags := s.wishlists[userID]
	if flags == nil {
		flags = make(map[string]bool)
		s.wishlists[userID] = flags
	}
	if flags[productID] {
		delete(flags, productID)
		if product.LikesCount > 0 {
			product.LikesCount--
		}
	} else {
		flags[productID] = true
		product.LikesCount++
	}
	s.products[productID] = product
	return domain.WishlistState{Liked: flags[productID], LikesCount: product.LikesCount}, nil
}

func (s *Store) cartLocked(userID string) *domain.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = &domain.Cart{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
		s.carts[userID] = cart
	}
	return cart
}

// repriceLocked refreshes each line's unit price and stock from the catalog.
func (s *Store) repriceLocked(cart *domain.Cart) {
	for i := range cart.Lines {
		if product, ok := s.products[cart.Lines[i].ProductID]; ok {
			cart.Lines[i].UnitPriceCents = product.EffectivePriceCents()
			cart.Lines[i].Stock = product.Stock
		}
	}
}

func cartLineByProduct(cart *domain.Cart, productID string) (domain.CartLine, bool) {
	for _, l := range cart.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return domain.CartLine{}, false
}

func referenceSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func copyCart(cart *domain.Cart) domain.Cart {
	out := *cart
	out.Lines = append([]domain.CartLine(nil), cart.Lines...)
	return out
}

func copySubOrder(sub domain.SubOrder) domain.SubOrder {
	sub.Items = append([]domain.OrderItem(nil), sub.Items...)
	return sub
}

func copyOrder(order *domain.Order) domain.Order {
	out := *order
	out.SubOrders = make([]domain.SubOrder, 0, len(order.SubOrders))
	for _, sub := range order.SubOrders {
		out.SubOrders = append(out.SubOrders, copySubOrder(sub))
	}
	return out
}
