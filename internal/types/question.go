package types

import "strings"

type QuestionType string

const (
	QuestionTypeScale        QuestionType = "scale"
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeShortText    QuestionType = "short_text"
	QuestionTypeLongText     QuestionType = "long_text"
)

// FollowUpRule shows an extra prompt when the chosen option equals Trigger.
type FollowUpRule struct {
	Trigger string `json:"trigger"`
	Prompt  string `json:"prompt"`
}

type Question struct {
	ID          string        `json:"id"`
	Prompt      string        `json:"prompt"`
	Type        QuestionType  `json:"type"`
	Options     []string      `json:"options,omitempty"`
	FollowUp    *FollowUpRule `json:"follow_up,omitempty"`
	ScaleLow    string        `json:"scale_low,omitempty"`
	ScaleHigh   string        `json:"scale_high,omitempty"`
	Help        string        `json:"help,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// Accepts reports whether the answer shape agrees with the question type.
// Empty answers are accepted everywhere; skipping is always legal.
func (q Question) Accepts(answer Answer) bool {
	if answer.IsEmpty() {
		return true
	}
	switch q.Type {
	case QuestionTypeScale:
		return answer.Kind == AnswerKindScale
	case QuestionTypeSingleChoice:
		if answer.Kind != AnswerKindChoice {
			// Pre-tagged records stored bare option strings.
			return answer.Kind == AnswerKindScalar
		}
		return true
	case QuestionTypeShortText, QuestionTypeLongText:
		return answer.Kind == AnswerKindScalar
	default:
		return false
	}
}

// FollowUpFor returns the follow-up prompt triggered by the selection, if any.
func (q Question) FollowUpFor(selection string) (string, bool) {
	if q.FollowUp == nil {
		return "", false
	}
	if strings.TrimSpace(selection) != q.FollowUp.Trigger {
		return "", false
	}
	return q.FollowUp.Prompt, true
}
