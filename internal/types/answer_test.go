package types

import (
	"encoding/json"
	"testing"
)

func TestAnswerJSONRoundTrip(t *testing.T) {
	answers := []Answer{
		EmptyAnswer(),
		ScalarAnswer("a low hum under everything"),
		ScaleAnswer(7),
		ChoiceAnswer("Yes", "rooted"),
		ChoiceAnswer("Maybe", ""),
	}
	for _, original := range answers {
		raw, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("marshal %v: %v", original.Kind, err)
		}
		var decoded Answer
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if decoded != original {
			t.Fatalf("round trip mismatch: %+v != %+v (raw %s)", decoded, original, raw)
		}
	}
}

func TestAnswerUnmarshalLegacyShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Answer
	}{
		{"null", `null`, EmptyAnswer()},
		{"bare string", `"curious"`, ScalarAnswer("curious")},
		{"bare number", `6`, ScaleAnswer(6)},
		{"string number stays scalar", `"6"`, ScalarAnswer("6")},
		{"selection object", `{"selection":"Yes","followUp":"held"}`, ChoiceAnswer("Yes", "held")},
		{"selection only", `{"selection":"No"}`, ChoiceAnswer("No", "")},
		{"empty object", `{}`, EmptyAnswer()},
		{"out of range clamps", `42`, ScaleAnswer(10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got Answer
			if err := json.Unmarshal([]byte(tc.raw), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestScaleAnswerPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range scale")
		}
	}()
	ScaleAnswer(11)
}

func TestAnswerDisplay(t *testing.T) {
	cases := []struct {
		answer Answer
		want   string
	}{
		{EmptyAnswer(), ""},
		{ScalarAnswer("  open  "), "open"},
		{ScaleAnswer(4), "4/10"},
		{ChoiceAnswer("Yes", "rooted"), "Yes (rooted)"},
		{ChoiceAnswer("No", ""), "No"},
	}
	for _, tc := range cases {
		if got := tc.answer.Display(); got != tc.want {
			t.Fatalf("Display(%+v) = %q, want %q", tc.answer, got, tc.want)
		}
	}
}

func TestQuestionAccepts(t *testing.T) {
	scale := Question{ID: "attention_quality", Type: QuestionTypeScale}
	choice := Question{ID: "connection_felt", Type: QuestionTypeSingleChoice, Options: []string{"Yes", "No", "Unsure"}}
	text := Question{ID: "surprise_element", Type: QuestionTypeLongText}

	if !scale.Accepts(ScaleAnswer(5)) || scale.Accepts(ScalarAnswer("five")) {
		t.Fatalf("scale question shape check failed")
	}
	if !choice.Accepts(ChoiceAnswer("Yes", "")) || !choice.Accepts(ScalarAnswer("Yes")) || choice.Accepts(ScaleAnswer(3)) {
		t.Fatalf("choice question shape check failed")
	}
	if !text.Accepts(ScalarAnswer("a sentence")) || text.Accepts(ScaleAnswer(3)) {
		t.Fatalf("text question shape check failed")
	}
	for _, q := range []Question{scale, choice, text} {
		if !q.Accepts(EmptyAnswer()) {
			t.Fatalf("empty answer must be accepted for %s", q.ID)
		}
	}
}

func TestQuestionFollowUpFor(t *testing.T) {
	q := Question{
		ID:       "connection_felt",
		Type:     QuestionTypeSingleChoice,
		Options:  []string{"Yes", "No", "Unsure"},
		FollowUp: &FollowUpRule{Trigger: "Yes", Prompt: "Describe this connection in one word:"},
	}
	if prompt, ok := q.FollowUpFor("Yes"); !ok || prompt == "" {
		t.Fatalf("expected follow-up for trigger selection")
	}
	if _, ok := q.FollowUpFor("No"); ok {
		t.Fatalf("unexpected follow-up for non-trigger selection")
	}
	if _, ok := (Question{ID: "future_sanctuary"}).FollowUpFor("Yes"); ok {
		t.Fatalf("unexpected follow-up for question without rule")
	}
}
