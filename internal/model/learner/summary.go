package learner

import "strings"

// Summarize renders the grounding text sent with every advice request.
// It is pure: empty lists become empty segments.
func Summarize(p Profile) string {
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, s.Name)
	}

	aspirations := make([]string, 0, len(p.Aspirations))
	for _, a := range p.Aspirations {
		aspirations = append(aspirations, a.Title)
	}

	styles := make([]string, 0, len(p.LearningStyles))
	for _, style := range p.LearningStyles {
		styles = append(styles, string(style))
	}

	var builder strings.Builder
	builder.WriteString("Skills: ")
	builder.WriteString(strings.Join(skills, ", "))
	builder.WriteString(".\nAspirations: ")
	builder.WriteString(strings.Join(aspirations, ", "))
	builder.WriteString(".\nLearning Style: ")
	builder.WriteString(strings.Join(styles, ", "))
	builder.WriteString(".")
	return builder.String()
}
