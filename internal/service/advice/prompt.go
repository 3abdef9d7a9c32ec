package advice

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zhouzirui/skillsetter/backend/internal/model/chat"
	"github.com/zhouzirui/skillsetter/backend/internal/model/learner"
	"github.com/zhouzirui/skillsetter/backend/internal/model/path"
	"github.com/zhouzirui/skillsetter/backend/internal/model/persona"
)

const jsonMIMEType = "application/json"

// buildSystemInstruction combines the persona, the learner context and the rule set.
func buildSystemInstruction(advisor persona.Advisor, contextSummary string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("You are %s, a %s for %s.\n", advisor.Name, advisor.Title, advisor.Framework))
	builder.WriteString("User Context: ")
	builder.WriteString(contextSummary)
	builder.WriteString("\n\nRules:")
	for i, rule := range advisor.Rules {
		builder.WriteString(fmt.Sprintf("\n%d. %s", i+1, rule))
	}
	return builder.String()
}

// buildTurns maps the transcript onto the remote roles and appends the new utterance last.
func buildTurns(transcript []chat.Message, utterance string) []Turn {
	turns := make([]Turn, 0, len(transcript)+1)
	for _, msg := range transcript {
		role := RoleUser
		if msg.Speaker == chat.SpeakerAdvisor {
			role = RoleModel
		}
		turns = append(turns, Turn{Role: role, Text: msg.Text})
	}
	return append(turns, Turn{Role: RoleUser, Text: utterance})
}

// buildPathPrompt asks for a raw JSON node list describing a learning path for profile.
func buildPathPrompt(profile learner.Profile) (string, error) {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}

	return fmt.Sprintf(`Generate a JSON learning path for a student with this profile:
%s

The path should have %d-%d nodes.
Each node needs: id, title, type (%s/%s/%s), duration_hours, description.
Output ONLY raw JSON.`,
		encoded,
		path.MinNodes, path.MaxNodes,
		path.Course, path.Assessment, path.Project,
	), nil
}
