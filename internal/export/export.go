package export

import (
	"encoding/json"
	"strconv"
	"strings"

	"arrive/internal/types"
)

// JourneyDocument is the journey-scope export: the in-progress
// checkpoints plus the finalized history.
type JourneyDocument struct {
	Checkpoints *types.JourneyCheckpoints `json:"journey,omitempty"`
	History     []*types.JourneyRecord    `json:"history"`
}

// ResearchDocument is the research-scope export.
type ResearchDocument struct {
	Sessions []*types.SessionRecord `json:"sessions"`
}

// ArchiveDocument is everything at once.
type ArchiveDocument struct {
	Journey  JourneyDocument  `json:"journey"`
	Research ResearchDocument `json:"research"`
}

func JourneyJSON(checkpoints *types.JourneyCheckpoints, history []*types.JourneyRecord) ([]byte, error) {
	if history == nil {
		history = []*types.JourneyRecord{}
	}
	return marshalIndent(JourneyDocument{Checkpoints: checkpoints, History: history})
}

func ResearchJSON(sessions []*types.SessionRecord) ([]byte, error) {
	if sessions == nil {
		sessions = []*types.SessionRecord{}
	}
	return marshalIndent(ResearchDocument{Sessions: sessions})
}

func ArchiveJSON(checkpoints *types.JourneyCheckpoints, history []*types.JourneyRecord, sessions []*types.SessionRecord) ([]byte, error) {
	if history == nil {
		history = []*types.JourneyRecord{}
	}
	if sessions == nil {
		sessions = []*types.SessionRecord{}
	}
	return marshalIndent(ArchiveDocument{
		Journey:  JourneyDocument{Checkpoints: checkpoints, History: history},
		Research: ResearchDocument{Sessions: sessions},
	})
}

// SessionJSON exports one finalized session, for the survey completion
// screen.
func SessionJSON(record *types.SessionRecord) ([]byte, error) {
	return marshalIndent(record)
}

func marshalIndent(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// csvColumns fixes the summary column set: session metadata, then the
// ten research questions in catalog order.
var csvColumns = []string{
	"Session", "Timestamp", "Mode", "Researcher",
	"Attention Quality", "Connection", "Surprise", "Resonance",
	"Future Sanctuary", "Stage of Change", "Became Visible",
	"Wants Nurturing", "Question Holding", "Cultural Integration",
}

var csvQuestionOrder = []string{
	"attention_quality", "connection_felt", "surprise_element",
	"resonance_artifact", "future_sanctuary", "stage_of_change",
	"became_visible", "wants_nurturing", "question_holding",
	"cultural_integration",
}

// SummaryCSV renders one row per research session. Every field is
// quote-wrapped and embedded quotes are doubled, matching the
// historical export format byte for byte.
func SummaryCSV(sessions []*types.SessionRecord) []byte {
	var out strings.Builder
	out.WriteString(strings.Join(csvColumns, ","))
	out.WriteByte('\n')

	for i, record := range sessions {
		if record == nil {
			continue
		}
		fields := make([]string, 0, len(csvColumns))
		fields = append(fields,
			strconv.Itoa(i+1),
			record.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
			string(record.Mode),
			facilitatorField(record),
		)
		for _, questionID := range csvQuestionOrder {
			fields = append(fields, csvAnswer(record.Answers[questionID]))
		}
		for j, field := range fields {
			if j > 0 {
				out.WriteByte(',')
			}
			out.WriteByte('"')
			out.WriteString(strings.ReplaceAll(field, `"`, `""`))
			out.WriteByte('"')
		}
		out.WriteByte('\n')
	}
	return []byte(out.String())
}

func facilitatorField(record *types.SessionRecord) string {
	if strings.TrimSpace(record.Facilitator) == "" {
		return "N/A"
	}
	return record.Facilitator
}

// csvAnswer flattens an answer for the summary: choices keep the
// selection only, scales keep the bare number.
func csvAnswer(answer types.Answer) string {
	switch answer.Kind {
	case types.AnswerKindChoice:
		return answer.Selection
	case types.AnswerKindScale:
		return strconv.Itoa(answer.Value)
	case types.AnswerKindScalar:
		return answer.Text
	default:
		return ""
	}
}
