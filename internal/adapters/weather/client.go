package weather

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tourflow/internal/adapters/observability"
	"tourflow/internal/domain"
)

// Client proxies current-weather lookups to OpenWeather. When no API key is
// configured, or the upstream misbehaves, it degrades to a canned report so
// destination pages never fail on weather.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 15 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

var (
	ErrNotFound     = errors.New("weather: not found")
	ErrUnauthorized = errors.New("weather: unauthorized")
)

func (c *Client) ByLocation(ctx context.Context, location string) (domain.WeatherReport, error) {
	if c.key == "" {
		return mockReport(location), nil
	}
	q := url.Values{"q": {location}, "appid": {c.key}, "units": {"metric"}}
	rep, err := c.fetch(ctx, q)
	if err != nil {
		return mockReport(location), nil
	}
	if rep.Location == "" {
		rep.Location = location
	}
	return rep, nil
}

func (c *Client) ByCoords(ctx context.Context, lat, lon float64) (domain.WeatherReport, error) {
	if c.key == "" {
		return mockReport("Your location"), nil
	}
	q := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"appid": {c.key},
		"units": {"metric"},
	}
	rep, err := c.fetch(ctx, q)
	if err != nil {
		return mockReport("Your location"), nil
	}
	if rep.Location == "" {
		rep.Location = "Your location"
	}
	return rep, nil
}

// mockReport mirrors the placeholder payload served when no upstream key is
// configured.
func mockReport(location string) domain.WeatherReport {
	return domain.WeatherReport{
		Location:    location,
		Temperature: 22.5,
		Description: "Partly cloudy",
		Humidity:    65,
		WindSpeed:   5.2,
		Icon:        "02d",
	}
}

// openWeatherPayload is the subset of the upstream response we read.
type openWeatherPayload struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// fetch performs a GET with client-side rate limiting and retries on 429 and
// transient 5xx, honoring Retry-After when provided.
func (c *Client) fetch(ctx context.Context, q url.Values) (domain.WeatherReport, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.WeatherReport{}, err
	}
	u := c.base + "?" + q.Encode()

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return domain.WeatherReport{}, err
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return domain.WeatherReport{}, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return domain.WeatherReport{}, lastErr
		}
		observability.ObserveExternal("openweather", "current", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			var p openWeatherPayload
			err := json.NewDecoder(resp.Body).Decode(&p)
			resp.Body.Close()
			if err != nil {
				return domain.WeatherReport{}, err
			}
			rep := domain.WeatherReport{
				Location:    p.Name,
				Temperature: p.Main.Temp,
				Humidity:    p.Main.Humidity,
				WindSpeed:   p.Wind.Speed,
			}
			if len(p.Weather) > 0 {
				rep.Description = p.Weather[0].Description
				rep.Icon = p.Weather[0].Icon
			}
			return rep, nil

		case http.StatusNotFound:
			resp.Body.Close()
			return domain.WeatherReport{}, ErrNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return domain.WeatherReport{}, ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return domain.WeatherReport{}, ctx.Err()
			}
			return domain.WeatherReport{}, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return domain.WeatherReport{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return domain.WeatherReport{}, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
