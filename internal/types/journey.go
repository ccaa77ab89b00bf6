package types

import (
	"strings"
	"time"
)

// JourneyCheckpoints is the in-progress journey state: one value per
// checkpoint plus the baggage sorting decisions.
type JourneyCheckpoints struct {
	Arrival   string            `json:"boarding_ping,omitempty"`
	Verb      string            `json:"verb,omitempty"`
	Note      string            `json:"cabin_note,omitempty"`
	Departure string            `json:"landing_ping,omitempty"`
	Baggage   map[string]string `json:"baggage_decisions,omitempty"`
}

func (c *JourneyCheckpoints) Clone() *JourneyCheckpoints {
	if c == nil {
		return nil
	}
	out := *c
	if c.Baggage != nil {
		out.Baggage = make(map[string]string, len(c.Baggage))
		for item, decision := range c.Baggage {
			out.Baggage[item] = decision
		}
	}
	return &out
}

// Complete reports whether every named checkpoint holds a value.
func (c *JourneyCheckpoints) Complete() bool {
	if c == nil {
		return false
	}
	return strings.TrimSpace(c.Arrival) != "" &&
		strings.TrimSpace(c.Verb) != "" &&
		strings.TrimSpace(c.Note) != "" &&
		strings.TrimSpace(c.Departure) != ""
}

// JourneyRecord is one finalized journey in the history log.
type JourneyRecord struct {
	Arrival   string    `json:"boarding_ping"`
	Verb      string    `json:"verb"`
	Note      string    `json:"cabin_note"`
	Departure string    `json:"landing_ping"`
	CreatedAt time.Time `json:"timestamp"`
}

// Clone returns an independent copy. Any reference field added to the
// record must be copied here too.
func (r *JourneyRecord) Clone() *JourneyRecord {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}

// SharedNote is one entry in the collective note pool. The pool outlives
// journeys and survives every reset.
type SharedNote struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"timestamp"`
}
