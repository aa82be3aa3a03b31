package forecast

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
	"github.com/yanqian/tw-weather-advisor/pkg/util"
)

var (
	// ErrLocationNotFound means the payload has no record for the requested key.
	ErrLocationNotFound = errors.New("location not found in forecast")
	// ErrMalformed means a required element, index or timestamp is missing or inconsistent.
	ErrMalformed = errors.New("malformed forecast")
)

// Parse reshapes the parallel element series of key's record into ordered
// periods. Labels are left empty; see Build.
//
// All five elements must carry every index of the first element, and every
// element must agree on each index's start and end timestamps.
func Parse(raw RawResponse, key location.Key) ([]Period, error) {
	loc, ok := findLocation(raw, key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, key)
	}
	if len(loc.Elements) == 0 {
		return nil, fmt.Errorf("%w: %s has no weather elements", ErrMalformed, key)
	}

	count := len(loc.Elements[0].Times)
	if count == 0 {
		return nil, fmt.Errorf("%w: %s element %s has no periods", ErrMalformed, key, loc.Elements[0].ElementName)
	}

	series := make(map[string]RawElement, len(requiredElements))
	for _, name := range requiredElements {
		el, ok := loc.element(name)
		if !ok {
			return nil, fmt.Errorf("%w: element %s missing", ErrMalformed, name)
		}
		series[name] = el
	}

	periods := make([]Period, 0, count)
	for i := 0; i < count; i++ {
		period, err := buildPeriod(series, i)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, nil
}

// Build parses key's periods and labels each relative to now.
func Build(raw RawResponse, key location.Key, now time.Time) ([]Period, error) {
	parsed, err := Parse(raw, key)
	if err != nil {
		return nil, err
	}
	out := make([]Period, 0, len(parsed))
	for _, p := range parsed {
		label := LabelFor(p.Start, now)
		p.Label = label
		p.LabelName = label.DisplayName()
		out = append(out, p)
	}
	return out, nil
}

func findLocation(raw RawResponse, key location.Key) (RawLocation, bool) {
	for _, loc := range raw.Records.Locations {
		if loc.LocationName == string(key) {
			return loc, true
		}
	}
	return RawLocation{}, false
}

func buildPeriod(series map[string]RawElement, index int) (Period, error) {
	entries := make(map[string]RawTime, len(requiredElements))
	for _, name := range requiredElements {
		times := series[name].Times
		if index >= len(times) {
			return Period{}, fmt.Errorf("%w: element %s missing period %d", ErrMalformed, name, index)
		}
		entries[name] = times[index]
	}

	ref := entries[requiredElements[0]]
	for _, name := range requiredElements[1:] {
		entry := entries[name]
		if strings.TrimSpace(entry.StartTime) != strings.TrimSpace(ref.StartTime) || strings.TrimSpace(entry.EndTime) != strings.TrimSpace(ref.EndTime) {
			return Period{}, fmt.Errorf("%w: element %s period %d spans %s to %s, expected %s to %s",
				ErrMalformed, name, index, entry.StartTime, entry.EndTime, ref.StartTime, ref.EndTime)
		}
	}

	start, err := parseProviderTime(ref.StartTime)
	if err != nil {
		return Period{}, fmt.Errorf("%w: period %d start: %v", ErrMalformed, index, err)
	}
	end, err := parseProviderTime(ref.EndTime)
	if err != nil {
		return Period{}, fmt.Errorf("%w: period %d end: %v", ErrMalformed, index, err)
	}

	return Period{
		Start:       start,
		End:         end,
		Weather:     entries[ElementWeather].Parameter.Name,
		PoP:         entries[ElementPoP].Parameter.Name,
		LowTemp:     entries[ElementMinTemp].Parameter.Name,
		HighTemp:    entries[ElementMaxTemp].Parameter.Name,
		Comfort:     entries[ElementComfort].Parameter.Name,
		Description: describe(start, end),
	}, nil
}

func parseProviderTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, errors.New("timestamp missing")
	}
	for _, layout := range []string{ProviderTimeLayout, QueryTimeLayout} {
		if ts, err := time.ParseInLocation(layout, trimmed, util.Taipei); err == nil {
			return ts, nil
		}
	}
	if ts, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return ts.In(util.Taipei), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
