package conf

import "fmt"

// LeadTimeMode selects how forecast steps are enumerated.
type LeadTimeMode int

const (
	// HRES - hourly to 90h, 3-hourly to 144h, 6-hourly to 240h
	HRES LeadTimeMode = iota
	// Uniform - 6-hourly up to the configured lead time
	Uniform
)

// FromString parses a mode name as given on the command line.
func (m *LeadTimeMode) FromString(value string) error {
	switch value {
	case "HRES":
		*m = HRES
	case "UNIFORM":
		*m = Uniform
	default:
		return fmt.Errorf("unknown lead time mode `%s`: use HRES or UNIFORM", value)
	}
	return nil
}

func (m LeadTimeMode) String() string {
	if m == HRES {
		return "HRES"
	}
	return "UNIFORM"
}
