// Package weather wraps the weatherapi.com current-conditions endpoint.
// One request per lookup: no retry, no caching.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// ErrLocationNotFound is returned when the provider rejects the query,
// typically for an unknown city name.
var ErrLocationNotFound = errors.New("location not found")

// Options configures a Client.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client fetches current conditions from weatherapi.com.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Current is the trimmed current-conditions payload served to the dashboard.
type Current struct {
	Location struct {
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"location"`
	Current struct {
		TempC      float64 `json:"temp_c"`
		FeelsLikeC float64 `json:"feelslike_c"`
		Humidity   int     `json:"humidity"`
		WindKph    float64 `json:"wind_kph"`
		PressureMb float64 `json:"pressure_mb"`
		VisKm      float64 `json:"vis_km"`
		UV         float64 `json:"uv"`
		Condition  struct {
			Text string `json:"text"`
			Code int    `json:"code"`
		} `json:"condition"`
	} `json:"current"`
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("weather api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.weatherapi.com/v1"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{apiKey: opts.APIKey, baseURL: baseURL, client: client}, nil
}

// CurrentByCity looks up conditions for a city name.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*Current, error) {
	return c.fetch(ctx, city)
}

// CurrentByCoords looks up conditions for a lat/lon pair.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (*Current, error) {
	return c.fetch(ctx, fmt.Sprintf("%.4f,%.4f", lat, lon))
}

func (c *Client) fetch(ctx context.Context, query string) (*Current, error) {
	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, ErrLocationNotFound
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("weather provider status %d", resp.StatusCode)
	}

	var out Current
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("weather decode: %w", err)
	}
	return &out, nil
}
