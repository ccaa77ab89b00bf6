package report

import (
	"iter"
	"math"
	"strings"

	"arrive/internal/journey"
	"arrive/internal/types"
)

// Overview is the dashboard's headline block.
type Overview struct {
	Total          int
	SelfGuided     int
	Facilitated    int
	CompletionRate int
	Latest         string
}

const noSessionsText = "No sessions yet"

// BuildOverview summarizes the whole session history.
func BuildOverview(history []*types.SessionRecord) Overview {
	out := Overview{
		CompletionRate: CompletionRate(history),
		Latest:         noSessionsText,
	}
	for _, record := range history {
		if record == nil {
			continue
		}
		out.Total++
		switch record.Mode {
		case types.ModeFacilitated:
			out.Facilitated++
		default:
			out.SelfGuided++
		}
	}
	if out.Total > 0 {
		latest := history[len(history)-1]
		out.Latest = latest.CreatedAt.Format("Jan 2, 2006 at 3:04 PM")
		if latest.Mode == types.ModeFacilitated && latest.Facilitator != "" {
			out.Latest += " (facilitated by " + latest.Facilitator + ")"
		}
	}
	return out
}

// CompletionRate is the percentage of answered questions across all
// sessions, 0..100. The denominator is the currently configured
// question count, so the rate stays comparable across a catalog change.
// A record answered under a larger catalog counts at most the
// configured total, keeping the rate inside 0..100.
func CompletionRate(history []*types.SessionRecord) int {
	if len(history) == 0 {
		return 0
	}
	total := len(journey.ResearchQuestions())
	if total == 0 {
		return 0
	}
	answered := 0
	counted := 0
	for _, record := range history {
		if record == nil {
			continue
		}
		counted++
		answered += min(record.AnsweredCount(), total)
	}
	if counted == 0 {
		return 0
	}
	return int(math.Round(float64(answered) / float64(counted*total) * 100))
}

// OptionCount is one row of a single-choice tally. Every configured
// option appears, zeros included; renderers decide what to omit.
type OptionCount struct {
	Option string
	Count  int
}

// Tally counts selections for a single-choice question. Legacy records
// that stored the bare option string count the same as tagged choices.
func Tally(history []*types.SessionRecord, questionID string) []OptionCount {
	question, ok := journey.QuestionByID(questionID)
	if !ok || question.Type != types.QuestionTypeSingleChoice {
		return nil
	}
	counts := make([]OptionCount, len(question.Options))
	index := make(map[string]int, len(question.Options))
	for i, option := range question.Options {
		counts[i] = OptionCount{Option: option}
		index[option] = i
	}
	for _, record := range history {
		if record == nil {
			continue
		}
		selection := record.Answers[questionID].SelectionValue()
		if selection == "" {
			continue
		}
		if i, ok := index[selection]; ok {
			counts[i].Count++
		}
	}
	return counts
}

// DiffStatus classifies how an answer moved between two sessions.
type DiffStatus string

const (
	DiffSame         DiffStatus = "same"
	DiffChanged      DiffStatus = "changed"
	DiffIncomparable DiffStatus = "incomparable"
)

// Diff compares two answers by normalized display text. An empty side
// makes the pair incomparable rather than changed.
func Diff(prev, curr types.Answer) DiffStatus {
	if prev.IsEmpty() || curr.IsEmpty() {
		return DiffIncomparable
	}
	if prev.Display() == curr.Display() {
		return DiffSame
	}
	return DiffChanged
}

// GroupFreeform yields the non-empty free-text answers for a question,
// in record order. The sequence is lazy and restartable.
func GroupFreeform(history []*types.SessionRecord, questionID string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, record := range history {
			if record == nil {
				continue
			}
			answer := record.Answers[questionID]
			if answer.Kind != types.AnswerKindScalar {
				continue
			}
			text := strings.TrimSpace(answer.Text)
			if text == "" {
				continue
			}
			if !yield(text) {
				return
			}
		}
	}
}

// ConnectionWords yields the one-word follow-ups given when a traveler
// answered "Yes" to feeling a connection.
func ConnectionWords(history []*types.SessionRecord) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, record := range history {
			if record == nil {
				continue
			}
			answer := record.Answers["connection_felt"]
			if answer.Kind != types.AnswerKindChoice || answer.Selection != "Yes" {
				continue
			}
			word := strings.TrimSpace(answer.FollowUp)
			if word == "" {
				continue
			}
			if !yield(word) {
				return
			}
		}
	}
}

// ComparisonEntry is one record's answer in a comparison view, tagged
// against the immediately preceding supplied record.
type ComparisonEntry struct {
	Record *types.SessionRecord
	Answer types.Answer
	Status DiffStatus
	Tagged bool
}

// Compare lines up the supplied records for one question. The first
// entry carries no tag; callers should gate the view on len(records)
// being at least two.
func Compare(records []*types.SessionRecord, questionID string) []ComparisonEntry {
	out := make([]ComparisonEntry, 0, len(records))
	for i, record := range records {
		if record == nil {
			continue
		}
		entry := ComparisonEntry{
			Record: record,
			Answer: record.Answers[questionID],
		}
		if i > 0 && len(out) > 0 {
			entry.Status = Diff(out[len(out)-1].Answer, entry.Answer)
			entry.Tagged = true
		}
		out = append(out, entry)
	}
	return out
}
