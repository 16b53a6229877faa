package brainstorm

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/promptplay/internal/provider"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// scriptedClient returns canned replies in order and records what it saw.
type scriptedClient struct {
	replies []string
	errs    []error
	calls   [][]provider.Message
	system  []string
}

func (c *scriptedClient) Name() string { return "scripted" }

func (c *scriptedClient) Chat(_ context.Context, systemPrompt string, messages []provider.Message) (string, error) {
	i := len(c.calls)
	c.calls = append(c.calls, messages)
	c.system = append(c.system, systemPrompt)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i >= len(c.replies) {
		return "", fmt.Errorf("no scripted reply for call %d", i+1)
	}
	return c.replies[i], nil
}

// scriptedPrompter answers with canned replies in order.
type scriptedPrompter struct {
	choices   []Reply
	responses []Reply
	seen      []*schema.BrainstormTurn
	onChoose  func()
}

func (p *scriptedPrompter) Choose(_ context.Context, turn *schema.BrainstormTurn) (Reply, error) {
	p.seen = append(p.seen, turn)
	if p.onChoose != nil {
		p.onChoose()
	}
	if len(p.choices) == 0 {
		return QuitReply, nil
	}
	r := p.choices[0]
	p.choices = p.choices[1:]
	return r, nil
}

func (p *scriptedPrompter) Respond(context.Context) (Reply, error) {
	if len(p.responses) == 0 {
		return QuitReply, nil
	}
	r := p.responses[0]
	p.responses = p.responses[1:]
	return r, nil
}

// recordingView keeps every call for assertions.
type recordingView struct {
	banners   []string
	turns     []*schema.BrainstormTurn
	rejected  []error
	completed *schema.BrainstormTurn
	savedTo   string
	abandoned bool
}

func (v *recordingView) Banner(id, seed string)        { v.banners = append(v.banners, seed) }
func (v *recordingView) Turn(t *schema.BrainstormTurn) { v.turns = append(v.turns, t) }
func (v *recordingView) Invalid(_ string, err error)   { v.rejected = append(v.rejected, err) }
func (v *recordingView) Abandoned()                    { v.abandoned = true }
func (v *recordingView) Complete(t *schema.BrainstormTurn, p string) {
	v.completed = t
	v.savedTo = p
}

const questionTurn = "Sure! Here is my first question.\n```json\n" + `{
  "phase": 1,
  "context": "You want a login page.",
  "question": "Who are the users?",
  "options": [
    {"label": "Customers", "description": "Public sign-up", "value": "customers"},
    {"label": "Staff", "description": "Internal accounts", "value": "staff"},
    {"label": "Both", "description": "Two audiences", "value": "both"}
  ],
  "scoring": {"total": 3, "taskGoal": 2, "completionCriteria": 0, "scope": 1, "constraints": 0}
}` + "\n```"

const testingTurn = `{
  "phase": 4,
  "question": "How will you test it?",
  "options": [
    {"label": "Unit", "description": "Handlers", "value": "unit"},
    {"label": "E2E", "description": "Browser", "value": "e2e"},
    {"label": "Manual", "description": "QA pass", "value": "manual"}
  ],
  "scoring": {"total": 6, "taskGoal": 3, "completionCriteria": 1, "scope": 1, "constraints": 1}
}`

const backToContextTurn = `{
  "phase": 2,
  "question": "Which providers?",
  "options": [{"label": "Google", "description": "OAuth", "value": "google"}],
  "scoring": {"total": 5, "taskGoal": 3, "completionCriteria": 1, "scope": 1, "constraints": 0}
}`

// highScoreTurn clears the clarity bar but does not claim completion.
const highScoreTurn = `{
  "phase": 4,
  "question": "Anything to add before I write the prompt?",
  "options": [
    {"label": "No", "description": "Write it", "value": "no"},
    {"label": "Yes", "description": "One more detail", "value": "yes"}
  ],
  "scoring": {"total": 8, "taskGoal": 3, "completionCriteria": 3, "scope": 1, "constraints": 1}
}`

const completeTurn = `{
  "phase": 4,
  "question": "Done",
  "options": [],
  "isComplete": true,
  "summary": {
    "taskOverview": "Login page",
    "background": "New app",
    "coreFeatures": ["email/password"],
    "technicalRequirements": ["bcrypt"],
    "testingPlan": "Unit and e2e",
    "successCriteria": ["users can log in"]
  },
  "generatedPrompt": "Build a login page",
  "scoring": {"total": 8, "taskGoal": 3, "completionCriteria": 3, "scope": 1, "constraints": 1}
}`
