package journey

import "arrive/internal/types"

// researchQuestions is the configured catalog, in presentation order.
var researchQuestions = []types.Question{
	{
		ID:        "attention_quality",
		Prompt:    "How did the Sound Infused Air affect your attention?",
		Type:      types.QuestionTypeScale,
		ScaleLow:  "Scattered",
		ScaleHigh: "Absorbed",
		Help:      "Move the slider to indicate your experience",
	},
	{
		ID:      "connection_felt",
		Prompt:  "Did you feel a sense of connection :: to self, others, place, or future?",
		Type:    types.QuestionTypeSingleChoice,
		Options: []string{"Yes", "No", "Unsure"},
		FollowUp: &types.FollowUpRule{
			Trigger: "Yes",
			Prompt:  "Describe this connection in one word:",
		},
	},
	{
		ID:          "surprise_element",
		Prompt:      "What surprised you most?",
		Type:        types.QuestionTypeLongText,
		Placeholder: "One sentence...",
		Help:        "There is no wrong answer :: trust what emerges",
	},
	{
		ID:          "resonance_artifact",
		Prompt:      "One image or feeling you are taking with you:",
		Type:        types.QuestionTypeLongText,
		Placeholder: "Poetic reflections welcome...",
		Help:        "This is your departure resonance",
	},
	{
		ID:      "future_sanctuary",
		Prompt:  "Would you visit a public sonic sanctuary in your own neighborhood?",
		Type:    types.QuestionTypeSingleChoice,
		Options: []string{"Yes", "Maybe", "No", "I already do"},
	},
	{
		ID:     "stage_of_change",
		Prompt: "Where are you in your practice?",
		Type:   types.QuestionTypeSingleChoice,
		Options: []string{
			"Investigating :: I am just curious",
			"Preparing :: I am reflecting on how this applies to my life",
			"Acting :: I have an action I want to take",
			"Maintaining :: I already do work like this",
		},
	},
	{
		ID:          "became_visible",
		Prompt:      "What became visible to you?",
		Type:        types.QuestionTypeLongText,
		Placeholder: "What emerged in your awareness...",
		Help:        "From the Community Insight Board prompt",
	},
	{
		ID:          "wants_nurturing",
		Prompt:      "What wants to be nurtured?",
		Type:        types.QuestionTypeLongText,
		Placeholder: "What asks for care and attention...",
		Help:        "From the Community Insight Board prompt",
	},
	{
		ID:          "question_holding",
		Prompt:      "One question you are holding:",
		Type:        types.QuestionTypeLongText,
		Placeholder: "The question does not need an answer yet...",
		Help:        "From the Community Insight Board prompt",
	},
	{
		ID:          "cultural_integration",
		Prompt:      "How did the Gamelatron and Balinese cosmology resonate with you?",
		Type:        types.QuestionTypeLongText,
		Placeholder: "Your reflections on cultural stewardship...",
		Help:        "Optional :: helps us understand cross-cultural reception",
	},
}

func ResearchQuestions() []types.Question {
	return append([]types.Question{}, researchQuestions...)
}

func QuestionByID(id string) (types.Question, bool) {
	for _, question := range researchQuestions {
		if question.ID == id {
			return question, true
		}
	}
	return types.Question{}, false
}

// QuestionLabels maps question IDs to their dashboard/export headings,
// in catalog order.
func QuestionLabels() []QuestionLabel {
	return []QuestionLabel{
		{ID: "attention_quality", Label: "Attention Quality"},
		{ID: "connection_felt", Label: "Connection Felt"},
		{ID: "surprise_element", Label: "Surprise Element"},
		{ID: "resonance_artifact", Label: "Resonance Artifact"},
		{ID: "future_sanctuary", Label: "Future Sanctuary Interest"},
		{ID: "stage_of_change", Label: "Stage of Change"},
		{ID: "became_visible", Label: "What Became Visible"},
		{ID: "wants_nurturing", Label: "What Wants Nurturing"},
		{ID: "question_holding", Label: "Question Holding"},
		{ID: "cultural_integration", Label: "Cultural Integration"},
	}
}

type QuestionLabel struct {
	ID    string
	Label string
}
