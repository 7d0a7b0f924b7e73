package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/cafepos/internal/config"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("weather lookup is not configured")

// Client fetches current conditions for the store.
type Client interface {
	Current(ctx context.Context) (*Conditions, error)
}

// Conditions is the slice of the OpenWeather response shown on the kiosk.
type Conditions struct {
	City        string  `json:"city"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	TempF       float64 `json:"temp_f"`
	FeelsLikeF  float64 `json:"feels_like_f"`
	Humidity    int     `json:"humidity"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	apiKey     string
	lat, lon   float64
}

// NewClient builds an OpenWeather client for the configured coordinates.
func NewClient(cfg config.WeatherConfig) *APIClient {
	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	return &APIClient{httpClient: restyClient, apiKey: cfg.APIKey, lat: cfg.Lat, lon: cfg.Lon}
}

type currentResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
}

type apiError struct {
	Code    any    `json:"cod"`
	Message string `json:"message"`
}

// Current returns present conditions in imperial units.
func (c *APIClient) Current(ctx context.Context) (*Conditions, error) {
	if c.apiKey == "" {
		return nil, ErrDisabled
	}

	result := new(currentResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   fmt.Sprintf("%f", c.lat),
			"lon":   fmt.Sprintf("%f", c.lon),
			"appid": c.apiKey,
			"units": "imperial",
		}).
		SetResult(result).
		SetError(apiErr).
		Get("/data/2.5/weather")
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("weather api error: status=%d, message=%s", resp.StatusCode(), apiErr.Message)
	}

	out := &Conditions{
		City:       result.Name,
		TempF:      result.Main.Temp,
		FeelsLikeF: result.Main.FeelsLike,
		Humidity:   result.Main.Humidity,
	}
	if len(result.Weather) > 0 {
		out.Summary = result.Weather[0].Main
		out.Description = result.Weather[0].Description
		out.Icon = result.Weather[0].Icon
	}
	return out, nil
}
