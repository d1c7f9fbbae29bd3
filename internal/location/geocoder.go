package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// geocodeCacheSize bounds the reverse-geocode response cache.
const geocodeCacheSize = 512

// Geocoder resolves coordinates to place names against a Nominatim-style
// endpoint. Responses are cached in a bounded LRU keyed by coordinates
// rounded to 4 decimals (~11 m), which collapses repeated picker taps on
// the same spot.
type Geocoder struct {
	baseURL string
	client  *http.Client
	cache   *lru.Cache[string, Place]
}

func NewGeocoder(baseURL string) *Geocoder {
	cache, _ := lru.New[string, Place](geocodeCacheSize)
	return &Geocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

func (g *Geocoder) Reverse(ctx context.Context, lat, lng float64) (Place, error) {
	key := cacheKey(lat, lng)
	if place, ok := g.cache.Get(key); ok {
		return place, nil
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Place{}, err
	}
	req.Header.Set("User-Agent", "contravento-backend")

	resp, err := g.client.Do(req)
	if err != nil {
		return Place{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Place{}, err
	}

	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}

	place := Place{
		Label:   body.DisplayName,
		City:    city,
		Region:  body.Address.State,
		Country: body.Address.Country,
		Lat:     lat,
		Lng:     lng,
	}
	g.cache.Add(key, place)
	return place, nil
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}
