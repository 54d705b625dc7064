package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/feedback"
	"github.com/stemsi/mathsession-backend/internal/model"
	"github.com/stemsi/mathsession-backend/internal/observability"
	"github.com/stemsi/mathsession-backend/internal/problem"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProblemGenerator produces a validated word problem.
type ProblemGenerator interface {
	Configured() bool
	Generate(ctx context.Context) (problem.Problem, error)
}

// FeedbackGenerator produces tutoring feedback for a graded answer.
type FeedbackGenerator interface {
	Configured() bool
	Generate(ctx context.Context, in feedback.Input) (string, error)
}

// SessionStore persists sessions and submissions.
type SessionStore interface {
	CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*model.ProblemSession, error)
	GetSession(ctx context.Context, id string) (*model.ProblemSession, error)
	CreateSubmission(ctx context.Context, sub *model.Submission) error
	ListSubmissions(ctx context.Context, sessionID string) ([]model.Submission, error)
}

// SubmitResult is the graded outcome of one submission.
type SubmitResult struct {
	Submission    *model.Submission
	CorrectAnswer float64
}

// ProblemSessionService creates problem sessions and grades submitted answers.
type ProblemSessionService struct {
	store    SessionStore
	problems ProblemGenerator
	feedback FeedbackGenerator
	metrics  *observability.Metrics
	tracer   trace.Tracer
	log      zerolog.Logger
}

func NewProblemSessionService(
	store SessionStore,
	problems ProblemGenerator,
	feedback FeedbackGenerator,
	metrics *observability.Metrics,
	log zerolog.Logger,
) *ProblemSessionService {
	return &ProblemSessionService{
		store:    store,
		problems: problems,
		feedback: feedback,
		metrics:  metrics,
		tracer:   otel.Tracer(observability.TracerName),
		log:      log.With().Str("component", "problem_session_service").Logger(),
	}
}

// Create generates a problem and stores it as a new session.
func (s *ProblemSessionService) Create(ctx context.Context) (*model.ProblemSession, error) {
	ctx, span := s.tracer.Start(ctx, "problem_session.create")
	defer span.End()

	if !s.problems.Configured() {
		return nil, s.fail(span, "create", newError(KindConfiguration, "problem generator is not configured", nil))
	}

	p, err := s.problems.Generate(ctx)
	if err != nil {
		return nil, s.fail(span, "create", classifyGenerationError(err))
	}

	session, err := s.store.CreateSession(ctx, p.Text, p.Answer)
	if err != nil {
		return nil, s.fail(span, "create", newError(KindPersistence, "failed to save problem session", err))
	}

	span.SetAttributes(attribute.String("session.id", session.ID.String()))
	s.metrics.SessionCreated()
	s.log.Info().
		Str("session_id", session.ID.String()).
		Msg("Problem session created")

	return session, nil
}

// Submit validates and grades an answer, asks for feedback and stores the
// submission. Nothing is stored unless every step succeeds.
func (s *ProblemSessionService) Submit(ctx context.Context, req model.SubmitAnswerRequest) (*SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "problem_session.submit")
	defer span.End()

	if !s.feedback.Configured() {
		return nil, s.fail(span, "submit", newError(KindConfiguration, "feedback generator is not configured", nil))
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return nil, s.fail(span, "submit", newError(KindValidation, msgMissingSessionID, nil))
	}
	userAnswer, verr := parseAnswer(req.UserAnswer)
	if verr != nil {
		return nil, s.fail(span, "submit", verr)
	}
	span.SetAttributes(attribute.String("session.id", sessionID))

	session, lerr := s.lookup(ctx, sessionID)
	if lerr != nil {
		return nil, s.fail(span, "submit", lerr)
	}

	isCorrect := userAnswer == session.CorrectAnswer

	text, err := s.feedback.Generate(ctx, feedback.Input{
		ProblemText:   session.ProblemText,
		CorrectAnswer: session.CorrectAnswer,
		UserAnswer:    userAnswer,
		IsCorrect:     isCorrect,
	})
	if err != nil {
		return nil, s.fail(span, "submit", newError(KindFeedbackGeneration, "failed to generate feedback", err))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, s.fail(span, "submit", newError(KindFeedbackGeneration, "feedback generator returned empty text", nil))
	}

	sub := &model.Submission{
		SessionID:    session.ID,
		UserAnswer:   userAnswer,
		IsCorrect:    isCorrect,
		FeedbackText: text,
	}
	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, s.fail(span, "submit", newError(KindSessionNotFound, "session not found", nil))
		}
		return nil, s.fail(span, "submit", newError(KindPersistence, "failed to save submission", err))
	}

	span.SetAttributes(attribute.Bool("submission.correct", isCorrect))
	s.metrics.SubmissionGraded(isCorrect)
	s.log.Info().
		Str("session_id", session.ID.String()).
		Str("submission_id", sub.ID.String()).
		Bool("is_correct", isCorrect).
		Msg("Submission graded")

	return &SubmitResult{Submission: sub, CorrectAnswer: session.CorrectAnswer}, nil
}

// ListSubmissions returns the submissions recorded for a session, oldest first.
func (s *ProblemSessionService) ListSubmissions(ctx context.Context, sessionID string) ([]model.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "problem_session.list_submissions")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, s.fail(span, "list_submissions", newError(KindValidation, msgMissingSessionID, nil))
	}

	session, lerr := s.lookup(ctx, sessionID)
	if lerr != nil {
		return nil, s.fail(span, "list_submissions", lerr)
	}

	subs, err := s.store.ListSubmissions(ctx, session.ID.String())
	if err != nil {
		return nil, s.fail(span, "list_submissions", newError(KindPersistence, "failed to load submissions", err))
	}
	return subs, nil
}

func (s *ProblemSessionService) lookup(ctx context.Context, sessionID string) (*model.ProblemSession, *Error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, newError(KindSessionNotFound, "session not found", nil)
	}
	if err != nil {
		return nil, newError(KindPersistence, "failed to load session", err)
	}
	return session, nil
}

func classifyGenerationError(err error) *Error {
	var parseErr *problem.ParseError
	var invalidErr *problem.InvalidError
	switch {
	case errors.As(err, &parseErr):
		return newError(KindGenerationParse, "failed to parse generated problem", err)
	case errors.As(err, &invalidErr):
		return newError(KindGenerationInvalid, "generated problem is invalid", err)
	default:
		return newError(KindGenerationUnavailable, "problem generator is unavailable", err)
	}
}

// fail records err on the span, metrics and log, then returns it.
func (s *ProblemSessionService) fail(span trace.Span, operation string, err *Error) error {
	s.metrics.OperationFailed(operation, string(err.Kind))

	if err.ClientFault() {
		s.log.Debug().
			Str("operation", operation).
			Str("kind", string(err.Kind)).
			Msg(err.Message)
		return err
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, string(err.Kind))
	s.log.Error().
		Err(err.Err).
		Str("operation", operation).
		Str("kind", string(err.Kind)).
		Msg(err.Message)
	return err
}
