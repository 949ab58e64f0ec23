package holidays

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Holiday represents a non-working day
type Holiday struct {
	Date      time.Time
	Recurring bool // only month and day of Date are meaningful
	Note      string
}

// Source interface for anything that can list holidays
type Source interface {
	// Holidays returns the holidays that apply to the given year.
	// Recurring holidays are returned regardless of year.
	Holidays(year int) ([]Holiday, error)
}

// Registrar receives holidays, implemented by the workday calendar
type Registrar interface {
	SetHoliday(date time.Time)
	SetRecurringHoliday(month time.Month, day int)
}

// Register feeds holidays into a registrar
func Register(reg Registrar, hs []Holiday) {
	for _, h := range hs {
		if h.Recurring {
			reg.SetRecurringHoliday(h.Date.Month(), h.Date.Day())
			continue
		}
		reg.SetHoliday(h.Date)
	}
}

// MultiSource concatenates the holidays of several sources
type MultiSource struct {
	sources []Source
	logger  *zap.Logger
}

// NewMultiSource creates a new MultiSource
func NewMultiSource(logger *zap.Logger, sources ...Source) *MultiSource {
	return &MultiSource{
		sources: sources,
		logger:  logger,
	}
}

// Holidays returns holidays of every source, failing on the first error
func (ms *MultiSource) Holidays(year int) ([]Holiday, error) {
	var all []Holiday
	for i, src := range ms.sources {
		hs, err := src.Holidays(year)
		if err != nil {
			return nil, fmt.Errorf("holiday source %d failed for %d: %w", i, year, err)
		}
		all = append(all, hs...)
	}

	ms.logger.Debug("Holidays collected",
		zap.Int("year", year),
		zap.Int("sources", len(ms.sources)),
		zap.Int("holidays", len(all)))

	return all, nil
}

// StaticSource serves a fixed holiday list, e.g. dates listed in the config file
type StaticSource []Holiday

// Holidays returns the static holidays in the given year and all recurring ones
func (ss StaticSource) Holidays(year int) ([]Holiday, error) {
	return filterYear(ss, year), nil
}

func filterYear(hs []Holiday, year int) []Holiday {
	out := make([]Holiday, 0, len(hs))
	for _, h := range hs {
		if h.Recurring || h.Date.Year() == year {
			out = append(out, h)
		}
	}
	return out
}
