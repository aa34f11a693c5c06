package cli

import (
	"context"
	"fmt"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/models"
)

func (a *App) printOrder(order *models.Order) {
	fmt.Fprintf(a.out, "Order %s  %s %s  total %.2f\n",
		order.ID, order.Status.Badge(), order.Status.Label(), order.Total)
	for _, item := range order.Items {
		fmt.Fprintf(a.out, "  %dx %s  %.2f\n", item.Quantity, item.Name, item.Price)
	}
}

func (a *App) Order(ctx context.Context, id string) {
	order, err := a.api.GetOrder(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load order %s: %v\n", id, err)
		return
	}
	a.printOrder(order)
}

func (a *App) Track(ctx context.Context, id string) {
	tracking, err := a.api.GetOrderTracking(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load tracking for order %s: %v\n", id, err)
		return
	}
	if len(tracking.Steps) == 0 {
		fmt.Fprintln(a.out, "No tracking updates yet.")
		return
	}
	for _, step := range tracking.Steps {
		line := fmt.Sprintf("  %s %s", step.Status.Badge(), step.Status.Label())
		if step.Note != "" {
			line += "  " + step.Note
		}
		if !step.Timestamp.IsZero() {
			line += "  " + step.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) CancelOrder(ctx context.Context, id string) {
	ok, err := GetConfirm(a.reader, fmt.Sprintf("Cancel order %s?", id), a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if !ok {
		fmt.Fprintln(a.out, "Kept the order.")
		return
	}

	order, err := a.api.CancelOrder(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Could not cancel order %s: %v\n", id, err)
		return
	}
	a.printOrder(order)
}
