package console

import (
	"context"
	"fmt"
	"math"

	"tienda/internal/domain"
	"tienda/internal/logger"
	"tienda/internal/menu"
)

func (a *App) adminMenu(ctx context.Context) *menu.Dispatcher {
	return menu.New("Admin menu", []menu.Entry{
		{Option: menu.ListProducts, Action: func() { a.listProducts(ctx) }},
		{Option: menu.AddProduct, Action: func() { a.addProduct(ctx) }},
		{Option: menu.DeleteProduct, Action: func() { a.deleteProduct(ctx) }},
		{Option: menu.Exit},
	}, a.prompter, a.out)
}

func (a *App) addProduct(ctx context.Context) {
	var (
		p   domain.Product
		err error
	)
	if p.ID, err = a.prompter.Int("Id", 1, math.MaxInt32); err != nil {
		return
	}
	if p.Name, err = a.prompter.Required("Name"); err != nil {
		return
	}
	if p.Price, err = a.prompter.Decimal("Price"); err != nil {
		return
	}
	if p.Stock, err = a.prompter.Int("Stock", 0, math.MaxInt32); err != nil {
		return
	}
	if p.Description, err = a.prompter.Text("Description (optional)"); err != nil {
		return
	}

	if err := a.catalog.Add(ctx, p); err != nil {
		a.report(ctx, "add product", err)
		return
	}
	fmt.Fprintf(a.out, "Product %d added.\n", p.ID)
}

func (a *App) deleteProduct(ctx context.Context) {
	id, err := a.prompter.Int("Id of the product to delete", 1, math.MaxInt32)
	if err != nil {
		return
	}
	if err := a.catalog.Delete(ctx, id); err != nil {
		a.report(ctx, "delete product", err)
		return
	}
	fmt.Fprintf(a.out, "Product %d deleted.\n", id)
}

// report logs err with the session fields and shows the user-facing message.
func (a *App) report(ctx context.Context, action string, err error) {
	log := logger.FromContext(ctx, a.logger)
	log.Warn().Err(err).Str("action", action).Msg("console: action failed")
	fmt.Fprintln(a.out, describe(err))
}
