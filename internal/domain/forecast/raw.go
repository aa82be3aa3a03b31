package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Weather element identifiers of the CWA 36-hour forecast dataset.
const (
	ElementWeather  = "Wx"
	ElementPoP      = "PoP"
	ElementMinTemp  = "MinT"
	ElementMaxTemp  = "MaxT"
	ElementComfort  = "CI"
	ProviderDataset = "F-C0032-001"
)

var requiredElements = []string{ElementWeather, ElementPoP, ElementMinTemp, ElementMaxTemp, ElementComfort}

// RawResponse is the decoded CWA payload before it is shaped into periods.
type RawResponse struct {
	Success Flag       `json:"success"`
	Records RawRecords `json:"records"`
}

// RawRecords holds the per-location collection.
type RawRecords struct {
	DatasetDescription string        `json:"datasetDescription"`
	Locations          []RawLocation `json:"location"`
}

// RawLocation is one county or city in the payload.
type RawLocation struct {
	LocationName string       `json:"locationName"`
	Elements     []RawElement `json:"weatherElement"`
}

// RawElement is a named series whose entries are parallel across elements.
type RawElement struct {
	ElementName string    `json:"elementName"`
	Times       []RawTime `json:"time"`
}

// RawTime is one half-day entry of an element series.
type RawTime struct {
	StartTime string       `json:"startTime"`
	EndTime   string       `json:"endTime"`
	Parameter RawParameter `json:"parameter"`
}

// RawParameter carries the element value as text.
type RawParameter struct {
	Name  string `json:"parameterName"`
	Value string `json:"parameterValue,omitempty"`
	Unit  string `json:"parameterUnit,omitempty"`
}

// Flag decodes the provider success marker, which CWA emits as the string
// "true" but which may also arrive as a JSON boolean.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = false
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = Flag(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	var b bool
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return fmt.Errorf("decode success flag: %w", err)
	}
	*f = Flag(b)
	return nil
}

func (l RawLocation) element(name string) (RawElement, bool) {
	for _, el := range l.Elements {
		if el.ElementName == name {
			return el, true
		}
	}
	return RawElement{}, false
}
