// Package geocode turns a coordinate pair into a locality name using a
// Nominatim-compatible reverse geocoding API.
package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bunfight/internal/common"
	"github.com/dmitrijs2005/bunfight/internal/netx"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "bunfight/1.0"
)

type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether c lies within the WGS84 ranges.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Resolver maps coordinates to the locality they fall in.
type Resolver interface {
	Resolve(ctx context.Context, c Coordinates) (string, error)
}

type address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	Municipality string `json:"municipality"`
}

// locality is the most specific populated-place name in a.
func (a address) locality() string {
	for _, s := range []string{a.City, a.Town, a.Village, a.Hamlet, a.Municipality} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

type reverseResponse struct {
	Address address `json:"address"`
}

type NominatimResolver struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

type Option func(*NominatimResolver)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *NominatimResolver) { r.client = c }
}

func WithUserAgent(ua string) Option {
	return func(r *NominatimResolver) { r.userAgent = ua }
}

// NewNominatimResolver returns a resolver querying baseURL. An empty baseURL
// means the public OpenStreetMap instance.
func NewNominatimResolver(baseURL string, timeout time.Duration, opts ...Option) *NominatimResolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	r := &NominatimResolver{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
		client:    &http.Client{Timeout: timeout},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func failed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrResolutionFailed, fmt.Sprintf(format, args...))
}

// Resolve makes a single reverse geocoding call. Every failure, including a
// reply that names no locality, is reported as common.ErrResolutionFailed.
func (r *NominatimResolver) Resolve(ctx context.Context, c Coordinates) (string, error) {
	if !c.Valid() {
		return "", failed("invalid coordinates %v,%v", c.Lat, c.Lon)
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))

	req, err := netx.NewJSONRequest(ctx, http.MethodGet, r.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", failed("%v", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	var resp reverseResponse
	if err := netx.DoJSON(r.client, req, &resp); err != nil {
		return "", failed("%v", err)
	}

	loc := resp.Address.locality()
	if loc == "" {
		return "", failed("no locality at %v,%v", c.Lat, c.Lon)
	}
	return loc, nil
}
