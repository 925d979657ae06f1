package mode

import "fmt"

// Mode is the term matching strategy used by the scorer.
type Mode string

// Match mode constants.
const (
	// Containment tests substring containment against the normalized text,
	// so partial-word matches inside longer words count.
	Containment Mode = "containment"
	// Membership tests exact token membership against the tokenized text.
	Membership Mode = "membership"
)

// Default is the mode used when none is configured.
const Default = Containment

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Containment || m == Membership
}

// Parse converts a config value to a Mode. Empty means Default.
func Parse(s string) (Mode, error) {
	if s == "" {
		return Default, nil
	}
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, Containment, Membership)
	}
	return m, nil
}
