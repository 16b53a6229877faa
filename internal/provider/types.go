package provider

// Role identifies the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// DefaultMaxTokens caps the reply length requested from backends.
const DefaultMaxTokens = 4096

// Settings are the resolved connection parameters for one backend.
type Settings struct {
	Name      string
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}
