package holidays

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var presets = map[string][]*cal.Holiday{
	"us": {
		us.NewYear,
		us.MlkDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	},
}

// PresetNames returns the names accepted by NewPresetSource
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetSource implements Source with a named holiday set.
// Holidays are reported on their observed date.
type PresetSource struct {
	name     string
	holidays []*cal.Holiday
}

// NewPresetSource creates a PresetSource for a named set, e.g. "us"
func NewPresetSource(name string) (*PresetSource, error) {
	hs, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown holiday preset %q (available: %s)",
			name, strings.Join(PresetNames(), ", "))
	}

	return &PresetSource{
		name:     strings.ToLower(name),
		holidays: hs,
	}, nil
}

// Holidays returns the observed dates of the preset's holidays in the given year
func (ps *PresetSource) Holidays(year int) ([]Holiday, error) {
	out := make([]Holiday, 0, len(ps.holidays))
	for _, h := range ps.holidays {
		_, observed := h.Calc(year)
		if observed.IsZero() {
			// not in effect that year
			continue
		}
		out = append(out, Holiday{Date: observed, Note: h.Name})
	}
	return out, nil
}
