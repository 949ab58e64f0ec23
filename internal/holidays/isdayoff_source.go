package holidays

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultIsDayOffURL is the public isdayoff.ru endpoint
	DefaultIsDayOffURL = "https://isdayoff.ru"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// IsDayOffSource implements Source using the isdayoff.ru production calendar API.
// Non-working weekdays (public holidays and transferred days off) are reported
// as one-off holidays; weekends are left to the workday calendar.
type IsDayOffSource struct {
	baseURL    string
	country    string
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[int]*cachedYear
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
}

type cachedYear struct {
	data      []Holiday
	fetchedAt time.Time
}

// NewIsDayOffSource creates a new IsDayOffSource instance.
// An empty country uses the API default.
func NewIsDayOffSource(baseURL, country string, cacheTTL time.Duration, logger *zap.Logger) *IsDayOffSource {
	if baseURL == "" {
		baseURL = DefaultIsDayOffURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &IsDayOffSource{
		baseURL: baseURL,
		country: country,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cache:    make(map[int]*cachedYear),
		cacheTTL: cacheTTL,
	}
}

// Holidays returns the non-working weekdays of the given year
func (c *IsDayOffSource) Holidays(year int) ([]Holiday, error) {
	c.cacheMu.RLock()
	if cached, ok := c.cache[year]; ok {
		if time.Since(cached.fetchedAt) < c.cacheTTL {
			c.cacheMu.RUnlock()
			c.logger.Debug("Using cached holidays", zap.Int("year", year))
			return cached.data, nil
		}
	}
	c.cacheMu.RUnlock()

	var holidays []Holiday
	for month := time.January; month <= time.December; month++ {
		monthHolidays, err := c.fetchMonth(year, month)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, monthHolidays...)
	}

	c.cacheMu.Lock()
	c.cache[year] = &cachedYear{
		data:      holidays,
		fetchedAt: time.Now(),
	}
	c.cacheMu.Unlock()

	c.logger.Info("Holidays fetched from API",
		zap.Int("year", year),
		zap.Int("holidays", len(holidays)))

	return holidays, nil
}

// fetchMonth fetches one month from the isdayoff.ru bulk API
func (c *IsDayOffSource) fetchMonth(year int, month time.Month) ([]Holiday, error) {
	// Build URL: https://isdayoff.ru/api/getdata?year=2025&month=11&pre=1
	url := fmt.Sprintf("%s/api/getdata?year=%d&month=%d&pre=1",
		c.baseURL, year, int(month))
	if c.country != "" {
		url += "&cc=" + c.country
	}

	c.logger.Debug("Fetching month from isdayoff.ru",
		zap.String("url", url),
		zap.Int("year", year),
		zap.Int("month", int(month)))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	holidays, err := parseBulkResponse(year, month, string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bulk response: %w", err)
	}

	return holidays, nil
}

// parseBulkResponse parses isdayoff.ru bulk response string
// Format: "211100011000001100000110000011" where:
// 0 = working day
// 1 = non-working day (holiday/weekend)
// 2 = shortened working day
func parseBulkResponse(year int, month time.Month, data string) ([]Holiday, error) {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	if len(data) != daysInMonth {
		return nil, fmt.Errorf("bulk data length mismatch: expected %d, got %d", daysInMonth, len(data))
	}

	var holidays []Holiday
	for i, code := range data {
		date := time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC)

		switch code {
		case '0', '2':
		case '1':
			if date.Weekday() != time.Saturday && date.Weekday() != time.Sunday {
				holidays = append(holidays, Holiday{Date: date, Note: "isdayoff.ru"})
			}
		default:
			return nil, fmt.Errorf("unknown code '%c' at position %d", code, i)
		}
	}

	return holidays, nil
}

// ClearCache clears the cache
func (c *IsDayOffSource) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[int]*cachedYear)
	c.logger.Info("Holiday cache cleared")
}
