package tiles

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strconv"
	"strings"
)

// DefaultTileURL is the standard OpenStreetMap raster tile endpoint.
const DefaultTileURL = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"

// HTTPTileProvider fetches raster tiles from a {z}/{x}/{y} URL template.
type HTTPTileProvider struct {
	Template  string
	UserAgent string
	Client    *http.Client
}

// NewHTTPTileProvider returns a provider for the given URL template. An
// empty template means DefaultTileURL.
func NewHTTPTileProvider(template string) *HTTPTileProvider {
	if template == "" {
		template = DefaultTileURL
	}
	return &HTTPTileProvider{
		Template:  template,
		UserAgent: "slippymap/1.0",
		Client:    &http.Client{},
	}
}

// URL returns the fetch URL for a tile.
func (p *HTTPTileProvider) URL(t Tile) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(t.Zoom),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	).Replace(p.Template)
}

func (p *HTTPTileProvider) GetTile(t Tile) (image.Image, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("tile %s: index out of range", t.Key())
	}

	req, err := http.NewRequest(http.MethodGet, p.URL(t), nil)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", t.Key(), err)
	}
	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept", "image/webp,*/*")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tile %s: %w", t.Key(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching tile %s: unexpected status %s", t.Key(), resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding tile %s: %w", t.Key(), err)
	}
	return img, nil
}
