package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dkazlou/gearhub/internal/client/models"
)

// catalog stands in for the external merch catalog collaborator. The cart
// layer treats these as immutable.
var catalog = []models.MerchItem{
	{ID: "tee-classic", Name: "Classic Club Tee", Price: "$24.50", Category: "apparel"},
	{ID: "hoodie-track", Name: "Track Day Hoodie", Price: "$54.00", Category: "apparel"},
	{ID: "cap-snap", Name: "Snapback Cap", Price: "$19.99", Category: "apparel"},
	{ID: "sticker-pack", Name: "Sticker Pack", Price: "$6.00", Category: "accessories"},
	{ID: "mug-pitlane", Name: "Pit Lane Mug", Price: "$12.50", Category: "accessories"},
}

func (a *App) ShowCatalog() {
	for i, item := range catalog {
		fmt.Printf("%2d. %-20s %8s  [%s]\n", i, item.Name, item.Price, item.Category)
	}
}

// Buy adds a catalog item to the cart: buy <index> [quantity] [size].
func (a *App) Buy(_ context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: buy <index> [quantity] [size]")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 0 || index >= len(catalog) {
		fmt.Println("No catalog item at", args[0])
		return
	}

	quantity := 1
	if len(args) > 1 {
		if q, err := strconv.Atoi(args[1]); err == nil {
			quantity = q
		}
	}
	size := ""
	if len(args) > 2 {
		size = args[2]
	}

	a.cart.Add(catalog[index], quantity, size)
	fmt.Printf("Added: %s\n", a.cart.LastAdded())
}

func (a *App) ShowCart() {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("Cart is empty")
		return
	}

	for i, line := range lines {
		size := line.Size
		if size == "" {
			size = "-"
		}
		fmt.Printf("%2d. %-20s size %-3s x%-3d %8s\n", i, line.Item.Name, size, line.Quantity, line.Item.Price)
	}
	fmt.Printf("Subtotal: $%s\n", a.cart.Subtotal().StringFixed(2))
	fmt.Printf("Tax:      $%s\n", a.cart.Tax().StringFixed(2))
	fmt.Printf("Shipping: $%s\n", a.cart.Shipping().StringFixed(2))
	fmt.Printf("Total:    $%s\n", a.cart.Total().StringFixed(2))
}

// SetQuantity updates a line's quantity: qty <line index> <quantity>.
// Quantities below one are clamped to one by the cart.
func (a *App) SetQuantity(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: qty <line> <quantity>")
		return
	}
	index, err1 := strconv.Atoi(args[0])
	quantity, err2 := strconv.Atoi(args[1])
	lines := a.cart.Lines()
	if err1 != nil || err2 != nil || index < 0 || index >= len(lines) {
		fmt.Println("Usage: qty <line> <quantity>")
		return
	}
	a.cart.UpdateQuantity(lines[index].ID, quantity)
}

// Checkout is a stub: payment integration is out of scope.
func (a *App) Checkout() {
	if len(a.cart.Lines()) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	fmt.Printf("Checkout is not available yet. Your total would be $%s.\n", a.cart.Total().StringFixed(2))
}
