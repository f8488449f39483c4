package cli

import (
	"context"

	"github.com/dmitrijs2005/bunfight/internal/client/breadclient"
	"github.com/dmitrijs2005/bunfight/internal/client/config"
	"github.com/dmitrijs2005/bunfight/internal/client/geocode"
)

// BreadDirectory is the remote directory as the commands see it.
type BreadDirectory interface {
	Lookup(ctx context.Context, locality string) (string, error)
	Submit(ctx context.Context, locality, term string) (*breadclient.Entry, error)
	ListAll(ctx context.Context) ([]breadclient.Entry, error)
}

type App struct {
	resolver geocode.Resolver
	bread    BreadDirectory
}

// factory builds the App once configuration is known.
type factory func(c *config.Config) *App

func NewApp(c *config.Config) *App {
	return &App{
		resolver: geocode.NewNominatimResolver(c.GeocoderURL, c.Timeout),
		bread:    breadclient.New(c.ServerURL, c.Timeout),
	}
}
