package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type AnswerKind string

const (
	AnswerKindEmpty  AnswerKind = "empty"
	AnswerKindScalar AnswerKind = "scalar"
	AnswerKindScale  AnswerKind = "scale"
	AnswerKindChoice AnswerKind = "choice"
)

const (
	ScaleMin = 1
	ScaleMax = 10
)

// Answer is a tagged variant: exactly one shape is populated per kind.
// The JSON form matches the historical storage shapes (null, bare string,
// bare number, {selection, followUp}) so old exports stay readable.
type Answer struct {
	Kind      AnswerKind
	Text      string
	Value     int
	Selection string
	FollowUp  string
}

func EmptyAnswer() Answer {
	return Answer{Kind: AnswerKindEmpty}
}

func ScalarAnswer(text string) Answer {
	return Answer{Kind: AnswerKindScalar, Text: text}
}

// ScaleAnswer panics outside [ScaleMin, ScaleMax]; callers own the range.
func ScaleAnswer(value int) Answer {
	if value < ScaleMin || value > ScaleMax {
		panic(fmt.Sprintf("scale answer out of range: %d", value))
	}
	return Answer{Kind: AnswerKindScale, Value: value}
}

func ChoiceAnswer(selection, followUp string) Answer {
	return Answer{Kind: AnswerKindChoice, Selection: selection, FollowUp: followUp}
}

func (a Answer) IsEmpty() bool {
	return a.Kind == "" || a.Kind == AnswerKindEmpty
}

// Display renders the answer the way the dashboard prints it. Empty
// answers render as "".
func (a Answer) Display() string {
	switch a.Kind {
	case AnswerKindScalar:
		return strings.TrimSpace(a.Text)
	case AnswerKindScale:
		return strconv.Itoa(a.Value) + "/10"
	case AnswerKindChoice:
		selection := strings.TrimSpace(a.Selection)
		followUp := strings.TrimSpace(a.FollowUp)
		if selection != "" && followUp != "" {
			return selection + " (" + followUp + ")"
		}
		return selection
	default:
		return ""
	}
}

// SelectionValue returns the chosen option for choice answers. Scalar
// answers count as a bare selection so pre-tagged records still tally.
func (a Answer) SelectionValue() string {
	switch a.Kind {
	case AnswerKindChoice:
		return strings.TrimSpace(a.Selection)
	case AnswerKindScalar:
		return strings.TrimSpace(a.Text)
	default:
		return ""
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerKindScalar:
		return json.Marshal(a.Text)
	case AnswerKindScale:
		return json.Marshal(a.Value)
	case AnswerKindChoice:
		return json.Marshal(choiceJSON{Selection: a.Selection, FollowUp: a.FollowUp})
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*a = EmptyAnswer()
		return nil
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*a = ScalarAnswer(text)
		return nil
	case '{':
		var choice choiceJSON
		if err := json.Unmarshal(data, &choice); err != nil {
			return err
		}
		if strings.TrimSpace(choice.Selection) == "" && strings.TrimSpace(choice.FollowUp) == "" {
			*a = EmptyAnswer()
			return nil
		}
		*a = ChoiceAnswer(choice.Selection, choice.FollowUp)
		return nil
	default:
		var value float64
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*a = ScaleAnswer(clampScale(int(value)))
		return nil
	}
}

type choiceJSON struct {
	Selection string `json:"selection"`
	FollowUp  string `json:"followUp,omitempty"`
}

func clampScale(value int) int {
	if value < ScaleMin {
		return ScaleMin
	}
	if value > ScaleMax {
		return ScaleMax
	}
	return value
}
