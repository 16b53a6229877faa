package brainstorm

import (
	"strings"
)

const openerRules = `Remember:
- Respond ONLY in valid JSON format matching BrainstormResponse
- Ask ONE question at a time
- Provide EXACTLY 3 structured option objects (label/description/value). Do NOT include "Other".
- Auto-detect and match the user's language
- Include scoring in EVERY response
- When scoring.total >= 7, set isComplete: true and generate the final prompt

Start now.`

// Opener builds the first user message of a session. When seed holds
// ticket material the model is told to work from it instead of asking a
// generic opening question.
func Opener(seed string) string {
	seed = strings.TrimSpace(seed)

	var b strings.Builder
	b.WriteString("You are starting a new brainstorming session.\n\n")
	if seed == "" {
		b.WriteString("Begin Phase 1 by asking the user what they would like to brainstorm today.\n\n")
	} else {
		b.WriteString("The user has created a JIRA ticket with the following information:\n\n")
		b.WriteString("---\n" + seed + "\n---\n\n")
		b.WriteString("Analyze this ticket information carefully. Based on what is provided:\n")
		b.WriteString("- Identify what is already clear and well-defined\n")
		b.WriteString("- Identify what is missing or ambiguous\n")
		b.WriteString("- Do NOT ask a generic opener like \"What would you like to brainstorm today?\"\n")
		b.WriteString("- Begin Phase 1 by acknowledging the ticket context, summarizing your understanding, and asking your first clarifying question.\n\n")
	}
	b.WriteString(openerRules)
	return b.String()
}
