// shopctl drives an end-to-end shopping scenario against a running API
// (the stub or a real deployment): sign in, fill the cart, place and pay an
// order, then walk it through the merchant's fulfilment transitions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"ebuy-client/internal/config"
	"ebuy-client/internal/domain"
	"ebuy-client/internal/gateway"
	cartsvc "ebuy-client/internal/service/cart"
	ordersvc "ebuy-client/internal/service/order"
	wishlistsvc "ebuy-client/internal/service/wishlist"
	"ebuy-client/internal/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	baseURL := flag.String("base", cfg.APIBaseURL, "API base URL")
	shopperEmail := flag.String("email", "shopper@example.com", "shopper email")
	shopperPassword := flag.String("password", "password123", "shopper password")
	merchantEmail := flag.String("merchant-email", "gadgets@example.com", "merchant email")
	merchantPassword := flag.String("merchant-password", "password123", "merchant password")
	flag.Parse()

	logger := log.New(os.Stderr, "[shopctl] ", log.LstdFlags|log.LUTC)

	if err := run(cfg, logger, *baseURL, *shopperEmail, *shopperPassword, *merchantEmail, *merchantPassword); err != nil {
		logger.Fatalf("scenario failed: %v", err)
	}
}

func run(cfg config.Config, logger *log.Logger, baseURL, shopperEmail, shopperPassword, merchantEmail, merchantPassword string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sess := session.New()
	client := gateway.New(gateway.Config{
		BaseURL:    baseURL,
		Tokens:     sess,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:     logger,
	})
	cart := cartsvc.New(client, logger)
	orders := ordersvc.New(client, logger)
	wishlist := wishlistsvc.New(client, sess)

	// Shopper side.
	token, user, err := client.Login(ctx, shopperEmail, shopperPassword)
	if err != nil {
		return fmt.Errorf("shopper login: %w", err)
	}
	sess.SignIn(token, user)
	color.Green("signed in as %s", user.Email)

	products, err := client.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	var picks []domain.Product
	for _, p := range products {
		if p.Active && p.InStock() {
			picks = append(picks, p)
		}
		if len(picks) == 2 {
			break
		}
	}
	if len(picks) == 0 {
		return fmt.Errorf("no purchasable products")
	}

	for _, p := range picks {
		snapshot, err := cart.AddItem(ctx, p.ID, 2)
		if err != nil {
			return fmt.Errorf("add %s: %w", p.Name, err)
		}
		fmt.Printf("added %s x2, cart total %s (%d items)\n",
			p.Name, domain.DecimalFromCents(snapshot.TotalCents()), snapshot.TotalQuantity())
	}

	if state, err := wishlist.Toggle(ctx, picks[0].ID); err == nil {
		fmt.Printf("wishlisted %s, now %d likes\n", picks[0].Name, state.LikesCount)
	}

	order, err := orders.PlaceOrder(ctx, domain.Address{
		FullAddress: "1 Demo Street",
		City:        "Springfield",
		State:       "IL",
		ZipCode:     "62701",
		Country:     "US",
		Phone:       "+1 555 0100",
	}, "card")
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}
	color.Green("placed order %s, total %s, %d sub-order(s)",
		order.OrderNumber, domain.DecimalFromCents(order.TotalCents), len(order.SubOrders))

	if _, err := client.MarkOrderPaid(ctx, order.ID); err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}

	// Merchant side.
	token, user, err = client.Login(ctx, merchantEmail, merchantPassword)
	if err != nil {
		return fmt.Errorf("merchant login: %w", err)
	}
	sess.SignIn(token, user)
	color.Green("signed in as merchant %s", user.Email)

	subs, err := orders.RefreshSubOrders(ctx)
	if err != nil {
		return fmt.Errorf("list sub-orders: %w", err)
	}
	for _, sub := range subs {
		if sub.Status != domain.StatusPending {
			printStatus(sub)
			continue
		}
		if _, err := orders.Accept(ctx, sub.ID); err != nil {
			return fmt.Errorf("accept %s: %w", sub.SubOrderNumber, err)
		}
		eta := time.Now().AddDate(0, 0, 4)
		shipped, err := orders.Ship(ctx, sub.ID, gateway.ShipmentInput{
			TrackingNumber:    "TRK-" + sub.SubOrderNumber,
			Carrier:           "UPS",
			EstimatedDelivery: &eta,
		})
		if err != nil {
			return fmt.Errorf("ship %s: %w", sub.SubOrderNumber, err)
		}
		delivered, err := orders.Deliver(ctx, shipped.ID)
		if err != nil {
			return fmt.Errorf("deliver %s: %w", sub.SubOrderNumber, err)
		}
		printStatus(*delivered)
	}

	return nil
}

func printStatus(sub domain.SubOrder) {
	paint := color.New(color.FgYellow)
	switch sub.Status {
	case domain.StatusDelivered:
		paint = color.New(color.FgGreen)
	case domain.StatusCancelled, domain.StatusRefunded:
		paint = color.New(color.FgRed)
	case domain.StatusShipped:
		paint = color.New(color.FgCyan)
	}
	fmt.Printf("%s  %s  %s\n", sub.SubOrderNumber, paint.Sprint(sub.Status), domain.DecimalFromCents(sub.SubtotalCents))
}
