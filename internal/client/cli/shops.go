package cli

import (
	"context"
	"fmt"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/api"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/models"
)

// printShopList renders a shop list, degrading to an empty-state line when
// the fetch failed. Read failures never abort the REPL.
func (a *App) printShopList(ctx context.Context, shops []models.Shop, err error) {
	if err != nil {
		a.log.Debug(ctx, "shop list fetch failed", "error", err)
		fmt.Fprintln(a.out, "No shops to show right now.")
		return
	}
	if len(shops) == 0 {
		fmt.Fprintln(a.out, "No shops found.")
		return
	}
	for _, shop := range shops {
		fmt.Fprintf(a.out, "  %s  %s - %s\n", shop.ID, shop.Name, shop.Description)
	}
}

func (a *App) Shops(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in to list your shops (or use 'publicshops').")
		return
	}
	shops, err := a.api.FetchShops(ctx)
	a.printShopList(ctx, shops, err)
}

func (a *App) PublicShops(ctx context.Context) {
	shops, err := a.api.GetPublicShops(ctx)
	a.printShopList(ctx, shops, err)
}

func (a *App) ShopInfo(ctx context.Context, idOrUUID string) {
	shop, err := a.api.GetShopInfo(ctx, idOrUUID)
	if err != nil {
		a.log.Debug(ctx, "shop info fetch failed", "error", err)
		fmt.Fprintln(a.out, "Shop not found.")
		return
	}
	fmt.Fprintf(a.out, "%s (id %s)\n", shop.Name, shop.ID)
	if shop.UUID != "" {
		fmt.Fprintf(a.out, "  uuid: %s\n", shop.UUID)
	}
	fmt.Fprintf(a.out, "  %s\n", shop.Description)
	if shop.ImageURL != "" {
		fmt.Fprintf(a.out, "  image: %s\n", shop.ImageURL)
	}
}

func (a *App) CreateShop(ctx context.Context) {
	cur := a.session.Current()
	if cur == nil || !cur.Authenticated() {
		fmt.Fprintln(a.out, "Log in before creating a shop.")
		return
	}

	name, err := GetSimpleText(a.reader, "Shop name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	description, err := GetSimpleText(a.reader, "Shop description", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	imageURL, err := GetSimpleText(a.reader, "Image URL (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	shop, err := a.api.CreateShop(ctx, api.CreateShopRequest{
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		UserID:      cur.ID,
		UserRole:    cur.Role,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Could not create shop: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Created shop %q (id %s)\n", shop.Name, shop.ID)
}
