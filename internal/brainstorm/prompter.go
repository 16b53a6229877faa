package brainstorm

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// Prompter collects user input for a session.
type Prompter interface {
	// Choose asks the user to answer turn by picking options or typing text.
	Choose(ctx context.Context, turn *schema.BrainstormTurn) (Reply, error)
	// Respond asks for free text after a reply that could not be used.
	Respond(ctx context.Context) (Reply, error)
}

// LinePrompter reads answers line by line. EOF counts as quitting.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a prompter reading from in and writing prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Choose implements Prompter.
func (p *LinePrompter) Choose(ctx context.Context, turn *schema.BrainstormTurn) (Reply, error) {
	line, quit, err := p.ask(ctx, "Your choice (numbers, comma-separated, or text): ")
	if err != nil || quit {
		return QuitReply, err
	}

	sel := ParseSelection(line, len(turn.Options))
	reply := Reply{Indices: sel.Indices, Other: sel.FreeText}
	if sel.WantsOther {
		text, quit, err := p.ask(ctx, "Your custom response: ")
		if err != nil || quit {
			return QuitReply, err
		}
		reply.Other = text
	}
	return reply, nil
}

// Respond implements Prompter.
func (p *LinePrompter) Respond(ctx context.Context) (Reply, error) {
	line, quit, err := p.ask(ctx, "Your response: ")
	if err != nil || quit {
		return QuitReply, err
	}
	return Reply{Other: line}, nil
}

func (p *LinePrompter) ask(ctx context.Context, prompt string) (line string, quit bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	fmt.Fprintf(p.out, "  %s", prompt)

	line, err = p.in.ReadString('\n')
	if err != nil && (line == "" || !stderrors.Is(err, io.EOF)) {
		if stderrors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", true, nil
		}
		return "", false, fmt.Errorf("read answer: %w", err)
	}

	line = strings.TrimSpace(line)
	return line, IsQuit(line), nil
}
