package console

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/multierr"

	"tienda/internal/logger"
	"tienda/internal/menu"
)

func (a *App) userMenu(ctx context.Context) *menu.Dispatcher {
	return menu.New("User menu", []menu.Entry{
		{Option: menu.ListProducts, Action: func() { a.listProducts(ctx) }},
		{Option: menu.BuyProduct, Action: func() { a.buy(ctx) }},
		{Option: menu.ViewCart, Action: func() { a.viewCart(ctx) }},
		{Option: menu.ClearCart, Action: func() { a.clearCart(ctx) }},
		{Option: menu.SaveCart, Action: func() { a.saveCart(ctx) }},
		{Option: menu.RestoreCart, Action: func() { a.restoreCart(ctx) }},
		{Option: menu.Exit, Action: func() { a.leaveShop(ctx) }},
	}, a.prompter, a.out)
}

func (a *App) buy(ctx context.Context) {
	id, err := a.prompter.Int("Product id", 1, math.MaxInt32)
	if err != nil {
		return
	}
	qty, err := a.prompter.Int("Quantity", 1, math.MaxInt32)
	if err != nil {
		return
	}
	if err := a.cart.Add(ctx, id, qty); err != nil {
		a.report(ctx, "buy product", err)
		return
	}
	fmt.Fprintf(a.out, "Added %d x product %d to the cart.\n", qty, id)
}

func (a *App) viewCart(ctx context.Context) {
	if err := a.cart.View(ctx).Render(a.out); err != nil {
		a.report(ctx, "view cart", err)
	}
}

func (a *App) clearCart(ctx context.Context) {
	a.cart.Clear(ctx)
	fmt.Fprintln(a.out, "Cart cleared.")
}

func (a *App) saveCart(ctx context.Context) {
	if err := a.cart.Persist(ctx); err != nil {
		a.report(ctx, "save cart", err)
		return
	}
	fmt.Fprintln(a.out, "Cart saved.")
}

func (a *App) restoreCart(ctx context.Context) {
	n, err := a.cart.Restore(ctx)
	for _, failure := range multierr.Errors(err) {
		fmt.Fprintf(a.out, "Skipped: %s\n", describe(failure))
	}
	if err != nil {
		log := logger.FromContext(ctx, a.logger)
		log.Warn().Err(err).Int("restored", n).Msg("console: cart restored partially")
	}
	fmt.Fprintf(a.out, "Restored %d line(s).\n", n)
}

func (a *App) leaveShop(ctx context.Context) {
	if !a.saveOnExit || len(a.cart.Lines(ctx)) == 0 {
		return
	}
	a.saveCart(ctx)
}
