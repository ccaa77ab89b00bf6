package types

import "time"

type SessionMode string

const (
	ModeSelfGuided  SessionMode = "self"
	ModeFacilitated SessionMode = "facilitated"
)

// SessionRecord is one finalized research session. Field names match the
// historical storage document so old exports round-trip unchanged.
type SessionRecord struct {
	CreatedAt   time.Time         `json:"timestamp"`
	Mode        SessionMode       `json:"mode"`
	Facilitator string            `json:"researcher,omitempty"`
	Answers     map[string]Answer `json:"responses"`
}

func (r *SessionRecord) Clone() *SessionRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.Answers != nil {
		out.Answers = make(map[string]Answer, len(r.Answers))
		for id, answer := range r.Answers {
			out.Answers[id] = answer
		}
	}
	return &out
}

// AnsweredCount counts non-empty answers.
func (r *SessionRecord) AnsweredCount() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, answer := range r.Answers {
		if !answer.IsEmpty() {
			count++
		}
	}
	return count
}
