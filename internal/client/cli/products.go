package cli

import (
	"context"
	"fmt"
)

func (a *App) Products(ctx context.Context) {
	products, err := a.api.GetProducts(ctx)
	if err != nil {
		a.log.Debug(ctx, "product list fetch failed", "error", err)
		fmt.Fprintln(a.out, "No products to show right now.")
		return
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return
	}
	for _, p := range products {
		fmt.Fprintf(a.out, "  %s  %s  %.2f\n", p.ID, p.Name, p.Price)
	}
}
