// Package cli implements the interactive portal client: a small REPL backed
// by the HTTP API, with the signed-in user cached in a session store.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmorenoweb/portal/internal/client/api"
	"github.com/dmorenoweb/portal/internal/client/config"
	"github.com/dmorenoweb/portal/internal/client/session"
)

type App struct {
	config  *config.Config
	client  *api.Client
	session *session.Session
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.NewClient(c.BaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config:  c,
		client:  apiClient,
		session: session.New(apiClient),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.session.Initialize(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	user, _ := a.session.Current()
	return user != nil
}
