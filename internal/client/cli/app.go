// Package cli implements the interactive terminal screens of the shopping
// client: authentication, shop and product browsing, shop creation, profile
// editing and order tracking.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/api"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/config"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/session"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/storage"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/logging"
)

type App struct {
	config  *config.Config
	api     api.Client
	session *session.Store
	storage storage.Store
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	apiClient := api.NewHTTPClient(api.Options{
		BaseURL:           cfg.BaseURL,
		Tokens:            st,
		Logger:            log,
		RequestTimeout:    cfg.RequestTimeout,
		CreateShopTimeout: cfg.CreateShopTimeout,
		CacheTTL:          cfg.CacheTTL,
	})

	return &App{
		config:  cfg,
		api:     apiClient,
		session: session.NewStore(apiClient, st, log),
		storage: st,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.storage.Close() }()

	if restored := a.session.Restore(ctx); restored != nil {
		if restored.Authenticated() {
			fmt.Fprintf(a.out, "Welcome back, %s!\n", restored.Name)
		} else {
			fmt.Fprintf(a.out, "Session for %s found but it has no token; please log in again.\n", restored.Name)
		}
	}

	a.showOnboarding(ctx)
	a.Root(ctx)
}

// showOnboarding prints the first-run banner once and records the flag.
func (a *App) showOnboarding(ctx context.Context) {
	if _, err := a.storage.Get(ctx, storage.KeyOnboarding); err == nil {
		return
	}

	fmt.Fprintln(a.out, "Welcome to the shop client!")
	fmt.Fprintln(a.out, "Browse shops and products, place orders, and track deliveries.")
	fmt.Fprintln(a.out, "Start with 'register' or 'login', or type 'help' for all commands.")

	if err := a.storage.Set(ctx, storage.KeyOnboarding, "true"); err != nil {
		a.log.Warn(ctx, "failed to record onboarding flag", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	cur := a.session.Current()
	return cur != nil && cur.Authenticated()
}
