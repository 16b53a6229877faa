package brainstorm

import (
	"github.com/felixgeelhaar/promptplay/internal/provider"
)

// Transcript is the append-only message history of one session. The
// system prompt is not part of it. A Transcript is owned by its Session and
// is not safe for concurrent use.
type Transcript struct {
	messages []provider.Message
}

// Append adds m to the end of the transcript.
func (t *Transcript) Append(m provider.Message) {
	t.messages = append(t.messages, m)
}

// Messages returns a copy of the history.
func (t *Transcript) Messages() []provider.Message {
	return append([]provider.Message(nil), t.messages...)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}
