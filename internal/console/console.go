package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tienda/internal/domain"
	"tienda/internal/logger"
	"tienda/internal/menu"
	"tienda/internal/service/auth"
	"tienda/internal/service/cart"
	"tienda/internal/service/catalog"
)

// MaxPasswordAttempts is how many wrong passwords end a login.
const MaxPasswordAttempts = 3

type Options struct {
	SaveCartOnExit bool
	Logger         zerolog.Logger
}

// App is the interactive host: role selection followed by the admin or user menu.
type App struct {
	catalog    *catalog.Service
	cart       *cart.Service
	auth       *auth.Service
	prompter   *menu.Prompter
	out        io.Writer
	logger     zerolog.Logger
	saveOnExit bool
}

func New(cat *catalog.Service, c *cart.Service, a *auth.Service, in io.Reader, out io.Writer, opts Options) *App {
	return &App{
		catalog:    cat,
		cart:       c,
		auth:       a,
		prompter:   menu.NewPrompter(in, out),
		out:        out,
		logger:     opts.Logger,
		saveOnExit: opts.SaveCartOnExit,
	}
}

// Run blocks until Exit is chosen on the role menu or input ends. The end of input
// is not an error.
func (a *App) Run(ctx context.Context) error {
	roles := menu.New("Choose a role", []menu.Entry{
		{Option: menu.LoginAdmin, Action: func() { a.session(ctx, domain.RoleAdmin) }},
		{Option: menu.LoginUser, Action: func() { a.session(ctx, domain.RoleUser) }},
		{Option: menu.Exit, Action: func() { fmt.Fprintln(a.out, "Goodbye.") }},
	}, a.prompter, a.out)

	err := roles.Run()
	if errors.Is(err, io.EOF) {
		a.logger.Debug().Msg("console: input closed")
		return nil
	}
	return err
}

func (a *App) session(ctx context.Context, role domain.Role) {
	ctx = logger.WithFields(ctx, a.logger, map[string]any{
		"session_id": uuid.NewString(),
		"role":       string(role),
	})
	log := logger.FromContext(ctx, a.logger)

	acc, err := a.login(role)
	if errors.Is(err, io.EOF) {
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("console: login failed")
		fmt.Fprintln(a.out, describe(err))
		return
	}
	log.Info().Str("account", acc.Name).Msg("console: session started")
	fmt.Fprintf(a.out, "Welcome, %s.\n", acc.Name)

	var d *menu.Dispatcher
	switch role {
	case domain.RoleAdmin:
		d = a.adminMenu(ctx)
	default:
		d = a.userMenu(ctx)
	}
	if err := d.Run(); err != nil {
		log.Debug().Err(err).Msg("console: session input ended")
		return
	}
	log.Info().Msg("console: session ended")
}

func (a *App) login(role domain.Role) (domain.Account, error) {
	if !a.auth.RequiresPassword(role) {
		return a.auth.Authenticate(role, "")
	}
	var err error
	for attempt := 1; attempt <= MaxPasswordAttempts; attempt++ {
		var password string
		password, err = a.prompter.Text("Password")
		if err != nil {
			return domain.Account{}, err
		}
		var acc domain.Account
		acc, err = a.auth.Authenticate(role, password)
		if err == nil {
			return acc, nil
		}
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.Account{}, err
		}
		if attempt < MaxPasswordAttempts {
			fmt.Fprintf(a.out, "Wrong password, %d attempt(s) left.\n", MaxPasswordAttempts-attempt)
		}
	}
	return domain.Account{}, err
}

func (a *App) listProducts(ctx context.Context) {
	products := a.catalog.List(ctx)
	if len(products) == 0 {
		fmt.Fprintln(a.out, "The catalog is empty.")
		return
	}
	for _, p := range products {
		fmt.Fprintln(a.out, p)
	}
}
