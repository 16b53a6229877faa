package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Provider errors (PROVIDER-001 to PROVIDER-099)
	ErrCodeProviderNotConfigured ErrorCode = "PROVIDER-001"
	ErrCodeProviderConfig        ErrorCode = "PROVIDER-002"
	ErrCodeProviderAuth          ErrorCode = "PROVIDER-003"
	ErrCodeProviderAPI           ErrorCode = "PROVIDER-004"
	ErrCodeProviderTimeout       ErrorCode = "PROVIDER-005"

	// Prompt template errors (PROMPT-001 to PROMPT-099)
	ErrCodePromptNotFound ErrorCode = "PROMPT-001"
	ErrCodePromptInvalid  ErrorCode = "PROMPT-002"

	// Input errors (INPUT-001 to INPUT-099)
	ErrCodeInputMissing ErrorCode = "INPUT-001"
	ErrCodeInputInvalid ErrorCode = "INPUT-002"

	// Structured response errors (EXTRACT-001 to EXTRACT-099)
	ErrCodeNoJSONFound     ErrorCode = "EXTRACT-001"
	ErrCodeSchemaViolation ErrorCode = "EXTRACT-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
	ErrCodeFileReadFailed  ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-004"
)

// PlayError is an error with a code, suggestions, and an optional docs link.
type PlayError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *PlayError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}

	if e.DocsURL != "" {
		fmt.Fprintf(&b, "\n\nDocumentation: %s", e.DocsURL)
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *PlayError) Unwrap() error {
	return e.Cause
}

// New creates a new PlayError
func New(code ErrorCode, message string) *PlayError {
	return &PlayError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new PlayError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *PlayError {
	return &PlayError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *PlayError) WithSuggestion(suggestion string) *PlayError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *PlayError) WithSuggestions(suggestions ...string) *PlayError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *PlayError) WithDocs(url string) *PlayError {
	e.DocsURL = url
	return e
}

// As finds the first PlayError in err's chain.
func As(err error) (*PlayError, bool) {
	var pe *PlayError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// HasCode reports whether err's chain holds a PlayError with the given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		pe, ok := As(err)
		if !ok {
			return false
		}
		if pe.Code == code {
			return true
		}
		err = pe.Cause
	}
	return false
}

// Common error constructors

// NewProviderNotConfiguredError is returned when no chat backend can be resolved.
func NewProviderNotConfiguredError() *PlayError {
	return New(ErrCodeProviderNotConfigured, "no LLM provider configured").
		WithSuggestion("Set OPENAI_API_KEY or GEMINI_API_KEY (a .env file in the working directory is loaded)").
		WithSuggestion("Or choose one explicitly with --provider openai|gemini").
		WithDocs("https://github.com/felixgeelhaar/promptplay#providers")
}

// NewProviderUnknownError reports a provider name that has no adapter.
func NewProviderUnknownError(name string) *PlayError {
	return New(ErrCodeProviderConfig, fmt.Sprintf("unknown provider: %s", name)).
		WithSuggestion("Use one of: openai, gemini")
}

// NewProviderConfigError reports an unreadable or invalid provider config file.
func NewProviderConfigError(path string, cause error) *PlayError {
	return Wrap(ErrCodeProviderConfig, fmt.Sprintf("invalid provider config: %s", path), cause).
		WithSuggestion("Check the YAML syntax of the file").
		WithSuggestion("Remove --config to rely on environment variables only")
}

// NewProviderAuthError creates a provider authentication error
func NewProviderAuthError(provider string, cause error) *PlayError {
	return Wrap(ErrCodeProviderAuth, fmt.Sprintf("authentication failed for provider: %s", provider), cause).
		WithSuggestion(fmt.Sprintf("Set the %s_API_KEY environment variable", strings.ToUpper(provider))).
		WithSuggestion("Check if your API key is valid and not expired")
}

// NewProviderAPIError wraps a failed chat call.
func NewProviderAPIError(provider string, cause error) *PlayError {
	return Wrap(ErrCodeProviderAPI, fmt.Sprintf("%s request failed", provider), cause).
		WithSuggestion("Check network connectivity and the configured base URL").
		WithSuggestion("Run with --log-level debug for request details")
}

// NewProviderTimeoutError reports a chat call that exceeded its deadline.
func NewProviderTimeoutError(provider string, cause error) *PlayError {
	return Wrap(ErrCodeProviderTimeout, fmt.Sprintf("%s request timed out", provider), cause).
		WithSuggestion("Increase the limit with --timeout")
}

// NewPromptNotFoundError creates a missing template error
func NewPromptNotFoundError(name string) *PlayError {
	return New(ErrCodePromptNotFound, fmt.Sprintf("prompt template not found: %s", name)).
		WithSuggestion("Run 'promptplay prompts' to list available templates").
		WithSuggestion(fmt.Sprintf("Create %s.md in the prompts directory", name))
}

// NewInputMissingError reports a command invoked without its required input.
func NewInputMissingError(what string) *PlayError {
	return New(ErrCodeInputMissing, fmt.Sprintf("%s is required", what)).
		WithSuggestion("Pass the input with -f <file> or -t <text>")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *PlayError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileWriteError creates a write failure error
func NewFileWriteError(path string, cause error) *PlayError {
	return Wrap(ErrCodeFileWriteFailed, fmt.Sprintf("failed to write %s", path), cause).
		WithSuggestion("Check that the target directory exists and is writable")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *PlayError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
