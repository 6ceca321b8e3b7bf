package review

import "strings"

var cannedResponses = []struct {
	keyword string
	text    string
}{
	{"achievement", "Delivered the main roadmap items for the period and closed out several long-standing backlog issues ahead of schedule."},
	{"challenge", "Balancing support duties with project work was the main difficulty this period; prioritization between the two took repeated alignment."},
	{"improvement", "Could benefit from more structured delegation and from involving stakeholders earlier in the planning phase."},
	{"development", "Plans to deepen technical leadership skills and take ownership of a cross-team initiative in the next period."},
	{"goal", "Primary goals for the next period are improving delivery predictability and mentoring a junior colleague."},
	{"feedback", "Collaboration with the team has been consistently constructive; communication with other departments has noticeably improved."},
}

const defaultParagraph = "Performance over the period met expectations, with steady contributions across the assigned responsibilities."

// seedFormData fabricates a plausible answer set for the stage's linked
// form. Self-evaluations rate 3-4, manager evaluations 3-5; free-text
// answers are canned paragraphs keyed off the field label.
func (g *Generator) seedFormData(form EvaluationForm, stage Stage) map[string]any {
	selfEvaluation := stage.HasEmployeeAttendee()
	data := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		switch field.Type {
		case FieldTypeRating:
			if selfEvaluation {
				data[field.ID] = 3 + g.Rand.Intn(2)
			} else {
				data[field.ID] = 3 + g.Rand.Intn(3)
			}
		case FieldTypeText, FieldTypeTextarea:
			data[field.ID] = cannedAnswer(field.Label)
		case FieldTypeCheckbox:
			data[field.ID] = g.pickOptions(field.Options)
		default:
			data[field.ID] = "Response"
		}
	}
	return data
}

func cannedAnswer(label string) string {
	lowered := strings.ToLower(label)
	for _, canned := range cannedResponses {
		if strings.Contains(lowered, canned.keyword) {
			return canned.text
		}
	}
	return defaultParagraph
}

// pickOptions chooses 2-4 distinct options, fewer when the field offers
// fewer.
func (g *Generator) pickOptions(options []string) []string {
	if len(options) == 0 {
		return []string{}
	}
	count := 2 + g.Rand.Intn(3)
	if count > len(options) {
		count = len(options)
	}
	picked := make([]string, len(options))
	copy(picked, options)
	g.Rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:count]
}
