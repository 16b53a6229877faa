package brainstorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/felixgeelhaar/promptplay/internal/extract"
	"github.com/felixgeelhaar/promptplay/internal/log"
	"github.com/felixgeelhaar/promptplay/internal/metrics"
	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/provider"
	"github.com/felixgeelhaar/promptplay/internal/schema"
	"github.com/felixgeelhaar/promptplay/internal/telemetry"
)

// Workflow is the label brainstorm sessions use for logs and metrics.
const Workflow = "brainstorm"

// View presents a session to the user.
type View interface {
	Banner(sessionID, seed string)
	Turn(turn *schema.BrainstormTurn)
	Invalid(raw string, err error)
	Complete(turn *schema.BrainstormTurn, savedTo string)
	Abandoned()
}

// Config wires a session to its collaborators.
type Config struct {
	Client       provider.ChatClient
	SystemPrompt string
	Prompter     Prompter
	View         View

	// OutputPath receives the completing turn. Empty disables writing.
	OutputPath string
	// TranscriptPath receives the transcript when the session ends.
	TranscriptPath string

	Logger  *log.Logger
	Metrics *metrics.Metrics
}

// Result describes how a session ended.
type Result struct {
	SessionID  string
	Outcome    State
	Final      *schema.BrainstormTurn
	Rounds     int
	Transcript []provider.Message
}

// Session is one brainstorm conversation. It is not safe for concurrent use.
type Session struct {
	cfg        Config
	id         string
	state      State
	phase      int
	rounds     int
	transcript Transcript
	logger     *log.Logger
}

// NewSession creates a session in Phase1.
func NewSession(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	id := uuid.NewString()
	return &Session{
		cfg:    cfg,
		id:     id,
		state:  StatePhase1,
		phase:  1,
		logger: logger.With("session_id", id, "workflow", Workflow),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []provider.Message { return s.transcript.Messages() }

// Run drives the conversation until it completes, the user quits, or a
// chat call fails. seed is optional ticket material for the opener.
func (s *Session) Run(ctx context.Context, seed string) (*Result, error) {
	if s.state.Terminal() {
		return nil, fmt.Errorf("session %s already ended", s.id)
	}
	ctx = provider.WithWorkflow(ctx, Workflow)

	s.cfg.View.Banner(s.id, seed)
	s.transcript.Append(provider.UserMessage(Opener(seed)))
	s.logger.Info("brainstorm session started", "seeded", seed != "")

	for {
		turn, err := s.round(ctx)
		if err != nil {
			return nil, err
		}

		var reply Reply
		switch {
		case turn == nil:
			reply, err = s.cfg.Prompter.Respond(ctx)
		case turn.IsComplete:
			return s.complete(turn)
		default:
			s.cfg.View.Turn(turn)
			reply, err = s.cfg.Prompter.Choose(ctx, turn)
		}
		if err != nil {
			return nil, err
		}
		if reply.Quit {
			return s.abort()
		}

		if turn == nil {
			s.transcript.Append(provider.UserMessage(reply.Other))
		} else {
			s.transcript.Append(provider.UserMessage(FormatAnswer(reply.Indices, reply.Other, turn.Options)))
		}
	}
}

// round sends the transcript once. It returns a nil turn when the reply
// was rejected; the raw text is in the transcript either way.
func (s *Session) round(ctx context.Context) (*schema.BrainstormTurn, error) {
	s.rounds++
	s.cfg.Metrics.RecordRound()

	ctx, span := telemetry.StartRoundSpan(ctx, s.id, s.rounds)
	defer span.End()

	raw, err := s.cfg.Client.Chat(ctx, s.cfg.SystemPrompt, s.transcript.Messages())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.transcript.Append(provider.AssistantMessage(raw))

	turn, err := extract.Parse[schema.BrainstormTurn](raw)
	if err != nil {
		kind := extract.KindOf(err)
		s.cfg.Metrics.RecordExtraction(Workflow, kind.String())
		s.logger.WithError(err).Warn("brainstorm reply rejected", "round", s.rounds, "kind", kind.String())
		telemetry.RecordError(span, err)
		s.cfg.View.Invalid(raw, err)
		return nil, nil
	}
	s.cfg.Metrics.RecordExtraction(Workflow, "ok")

	s.observePhase(turn.Phase)
	attrs := []attribute.KeyValue{attribute.Int("phase", turn.Phase)}
	if turn.Scoring != nil {
		attrs = append(attrs, attribute.Int("clarity", turn.Scoring.Total))
	}
	telemetry.RecordSuccess(span, attrs...)
	return turn, nil
}

func (s *Session) observePhase(phase int) {
	if phase < s.phase {
		s.logger.Info("model returned to an earlier phase", "from", s.phase, "to", phase)
	}
	s.phase = phase
	s.state = StateForPhase(phase)
}

func (s *Session) complete(turn *schema.BrainstormTurn) (*Result, error) {
	s.state = StateComplete
	if s.cfg.OutputPath != "" {
		if err := persist.WriteJSON(s.cfg.OutputPath, turn); err != nil {
			return nil, err
		}
		s.cfg.Metrics.RecordPersisted(Workflow)
	}
	s.cfg.View.Complete(turn, s.cfg.OutputPath)
	return s.finish(turn)
}

func (s *Session) abort() (*Result, error) {
	s.state = StateAborted
	s.cfg.View.Abandoned()
	return s.finish(nil)
}

func (s *Session) finish(final *schema.BrainstormTurn) (*Result, error) {
	s.cfg.Metrics.RecordSession(s.state.String())
	s.logger.Info("brainstorm session ended", "outcome", s.state.String(), "rounds", s.rounds)

	res := &Result{
		SessionID:  s.id,
		Outcome:    s.state,
		Final:      final,
		Rounds:     s.rounds,
		Transcript: s.transcript.Messages(),
	}

	if s.cfg.TranscriptPath != "" {
		if err := persist.WriteJSON(s.cfg.TranscriptPath, transcriptFile{
			SessionID: s.id,
			Outcome:   s.state.String(),
			Rounds:    s.rounds,
			Messages:  res.Transcript,
		}); err != nil {
			return res, err
		}
	}
	return res, nil
}

type transcriptFile struct {
	SessionID string             `json:"session_id"`
	Outcome   string             `json:"outcome"`
	Rounds    int                `json:"rounds"`
	Messages  []provider.Message `json:"messages"`
}
