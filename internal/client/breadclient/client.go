// Package breadclient is a typed client of the BunFight HTTP API.
package breadclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/netx"
)

type Entry struct {
	Locality string `json:"locality"`
	Term     string `json:"term"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL. A bare host:port gets an
// http:// scheme.
func New(baseURL string, timeout time.Duration) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// mapError translates API status codes back into the common sentinels.
func mapError(op string, err error) error {
	switch netx.StatusCode(err) {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, common.ErrUnknown)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w: %w", op, common.ErrValidation, err)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%s: %w: %w", op, common.ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	req, err := netx.NewJSONRequest(ctx, method, c.baseURL+path, in)
	if err != nil {
		return err
	}
	return netx.DoJSON(c.http, req, out)
}

// Lookup returns the term for locality or common.ErrUnknown.
func (c *Client) Lookup(ctx context.Context, locality string) (string, error) {
	var resp struct {
		Term string `json:"term"`
	}
	if err := c.do(ctx, http.MethodGet, "/bread?locality="+url.QueryEscape(locality), nil, &resp); err != nil {
		return "", mapError("lookup", err)
	}
	return resp.Term, nil
}

// Submit stores a new entry and returns it as the server recorded it.
func (c *Client) Submit(ctx context.Context, locality, term string) (*Entry, error) {
	var out Entry
	if err := c.do(ctx, http.MethodPost, "/bread", Entry{Locality: locality, Term: term}, &out); err != nil {
		return nil, mapError("submit", err)
	}
	return &out, nil
}

// ListAll returns every entry in store order.
func (c *Client) ListAll(ctx context.Context) ([]Entry, error) {
	var out []Entry
	if err := c.do(ctx, http.MethodGet, "/bread/entries", nil, &out); err != nil {
		return nil, mapError("list", err)
	}
	return out, nil
}

func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		return mapError("health", err)
	}
	return nil
}
