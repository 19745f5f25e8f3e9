// Package pipeline orchestrates the assessment core: validation, profile
// building, matching, recommendation and explanation, plus the session
// flows that feed them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/explain"
	"github.com/jonathan/career-compass/internal/logger"
	"github.com/jonathan/career-compass/internal/matching"
	"github.com/jonathan/career-compass/internal/metrics"
	"github.com/jonathan/career-compass/internal/profile"
	"github.com/jonathan/career-compass/internal/recommend"
	"github.com/jonathan/career-compass/internal/session"
	"github.com/jonathan/career-compass/internal/types"
)

// Pipeline steps reported through ProgressEvent
const (
	StepValidate  = "validate"
	StepProfile   = "profile"
	StepMatch     = "match"
	StepRecommend = "recommend"
	StepPersist   = "persist"
)

// Step categories
const (
	CategoryAssessment = "assessment"
	CategoryMatching   = "matching"
	CategoryGuidance   = "guidance"
	CategoryStorage    = "storage"
)

// ProgressEvent represents a progress update during a submission
type ProgressEvent struct {
	Step      string `json:"step"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when submission progress occurs
type ProgressCallback func(event ProgressEvent)

// Persister stores submission results. db.DB satisfies it.
type Persister interface {
	SaveSubmission(ctx context.Context, sessionID, path string, result any) (uuid.UUID, error)
}

// SubmissionResult is the full output of a submission.
type SubmissionResult struct {
	Matches         []types.CareerMatch         `json:"matches"`
	Recommendations types.RecommendationSet     `json:"recommendations"`
	Profile         types.StudentProfile        `json:"profile"`
	Validation      assessment.ValidationResult `json:"validation"`
	Explanations    []explain.Summary           `json:"explanations"`
	SubmissionID    string                      `json:"submission_id,omitempty"`
}

// Service runs the assessment operations. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	catalog    *catalog.Catalog
	engine     *matching.Engine
	augmenter  *recommend.Augmenter
	sessions   session.Store
	persister  Persister
	logger     *zap.Logger
	now        func() time.Time
	onProgress ProgressCallback
}

// Option configures a Service.
type Option func(*Service)

// WithSessionStore sets the session store. The default is an in-memory store.
func WithSessionStore(s session.Store) Option {
	return func(svc *Service) { svc.sessions = s }
}

// WithPersister enables best-effort result persistence.
func WithPersister(p Persister) Option {
	return func(svc *Service) { svc.persister = p }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(svc *Service) { svc.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(svc *Service) { svc.onProgress = cb }
}

// New creates a Service. A nil augmenter produces fallback recommendations
// only.
func New(cat *catalog.Catalog, engine *matching.Engine, augmenter *recommend.Augmenter, opts ...Option) *Service {
	svc := &Service{
		catalog:   cat,
		engine:    engine,
		augmenter: augmenter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.logger = logger.WithFields(svc.logger, zap.String("component", "pipeline"))
	if svc.engine == nil {
		svc.engine = matching.NewEngine(cat, matching.WithLogger(svc.logger))
	}
	if svc.augmenter == nil {
		svc.augmenter = recommend.New(nil, recommend.WithLogger(svc.logger))
	}
	if svc.sessions == nil {
		svc.sessions = session.NewMemoryStore(session.DefaultTTL)
	}
	return svc
}

// Observed returns a copy of the service that reports progress to cb. The
// copy shares the catalog, engine and stores.
func (s *Service) Observed(cb ProgressCallback) *Service {
	c := *s
	c.onProgress = cb
	return &c
}

// emitProgress calls the progress callback if configured
func (s *Service) emitProgress(sessionID, step, category, message string, content any) {
	if s.onProgress != nil {
		s.onProgress(ProgressEvent{
			Step:      step,
			Category:  category,
			Message:   message,
			SessionID: sessionID,
			Content:   content,
		})
	}
}

// ---- Stateless Operations ----

// DeterminePath maps a branching answer to its path.
func (s *Service) DeterminePath(answer string) types.PathID {
	return assessment.DeterminePath(answer)
}

// Questions returns the questions shown on path; an empty path returns the
// common questions only.
func (s *Service) Questions(path types.PathID) ([]types.Question, error) {
	if path != types.PathUndetermined && !path.Valid() {
		return nil, &InvalidInputError{Message: fmt.Sprintf("unknown path %q", path)}
	}
	return assessment.QuestionsForPath(path), nil
}

// Validate checks responses against path.
func (s *Service) Validate(responses types.Responses, path types.PathID) assessment.ValidationResult {
	return assessment.Validate(responses, path)
}

// Progress reports completion of responses on path.
func (s *Service) Progress(responses types.Responses, path types.PathID) assessment.ProgressResult {
	return assessment.Progress(responses, path)
}

// Careers returns the catalog in order.
func (s *Service) Careers() []types.Career {
	return s.catalog.All()
}

// Career resolves one career by id, title or alias.
func (s *Service) Career(id string) (types.Career, error) {
	c, err := s.catalog.Lookup(id)
	if err != nil {
		var le *catalog.LookupError
		if errors.As(err, &le) {
			return types.Career{}, &NotFoundError{Kind: "career", ID: id}
		}
		return types.Career{}, err
	}
	return c, nil
}

// Submit validates responses, builds the profile, ranks careers and attaches
// recommendations and explanations. Blocking validation errors refuse the
// submission with an InvalidInputError carrying the validation result. An
// empty path is derived from the branching answer. The result is persisted
// best-effort when a persister is configured.
func (s *Service) Submit(ctx context.Context, responses types.Responses, path types.PathID, limit int) (*SubmissionResult, error) {
	result, err := s.evaluate(ctx, "", responses, path, limit)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, "", result)
	return result, nil
}

func resolvePath(responses types.Responses, path types.PathID) types.PathID {
	if path != types.PathUndetermined {
		return path
	}
	if a, ok := responses[assessment.QCareerDirection]; ok && !a.IsEmpty() {
		return assessment.DeterminePath(a.First())
	}
	return types.PathUndetermined
}

func (s *Service) evaluate(ctx context.Context, sessionID string, responses types.Responses, path types.PathID, limit int) (*SubmissionResult, error) {
	path = resolvePath(responses, path)
	log := s.logger.With(zap.String(logger.FieldPath, string(path)))
	if sessionID != "" {
		log = log.With(zap.String(logger.FieldSessionID, sessionID))
	}

	validation := assessment.Validate(responses, path)
	if validation.HasBlocking() {
		metrics.CountSubmission(string(path), metrics.OutcomeRejected)
		log.Info("submission rejected", zap.Int("errors", len(validation.Errors)))
		return nil, &InvalidInputError{
			Message:    fmt.Sprintf("%d blocking validation error(s)", len(validation.Errors)),
			Validation: &validation,
		}
	}
	if !path.Valid() {
		metrics.CountSubmission(string(path), metrics.OutcomeRejected)
		return nil, &InvalidInputError{Message: "assessment path could not be determined"}
	}
	s.emitProgress(sessionID, StepValidate, CategoryAssessment,
		fmt.Sprintf("Validated responses with %d warning(s)", len(validation.Warnings)), validation)

	relevant := assessment.Relevant(responses, path)
	p := profile.Build(relevant, path)
	s.emitProgress(sessionID, StepProfile, CategoryAssessment, "Built student profile", p)

	matches, err := s.engine.Match(ctx, matching.Request{Profile: p, ZipCode: p.ZipCode, Limit: limit})
	if err != nil {
		metrics.CountSubmission(string(path), metrics.OutcomeError)
		return nil, fmt.Errorf("matching failed: %w", err)
	}
	s.emitProgress(sessionID, StepMatch, CategoryMatching,
		fmt.Sprintf("Ranked %d career(s)", len(matches)), matches)

	recs := s.augmenter.Augment(ctx, recommend.Input{
		Profile:   p,
		Responses: relevant,
		Matches:   matches,
		ZipCode:   p.ZipCode,
		Catalog:   s.catalog,
	})
	s.emitProgress(sessionID, StepRecommend, CategoryGuidance,
		fmt.Sprintf("Prepared %d recommendation(s)", len(recs.Recommendations)), recs)

	metrics.CountSubmission(string(path), metrics.OutcomeOK)
	log.Info("submission evaluated", zap.Int("matches", len(matches)))
	return &SubmissionResult{
		Matches:         matches,
		Recommendations: recs,
		Profile:         p,
		Validation:      validation,
		Explanations:    explain.Summaries(matches),
	}, nil
}

// persist stores result when a persister is configured. Failures are
// logged and counted, never returned.
func (s *Service) persist(ctx context.Context, sessionID string, result *SubmissionResult) {
	if s.persister == nil {
		return
	}
	id, err := s.persister.SaveSubmission(ctx, sessionID, string(result.Profile.Path), result)
	if err != nil {
		metrics.PersistenceFailuresTotal.Inc()
		s.logger.Warn("failed to persist submission",
			zap.String(logger.FieldSessionID, sessionID), zap.Error(err))
		return
	}
	result.SubmissionID = id.String()
	s.emitProgress(sessionID, StepPersist, CategoryStorage, "Stored submission result", id.String())
}

// ---- Session Operations ----

// StartSession creates and starts a new session.
func (s *Service) StartSession(ctx context.Context) (*types.Session, error) {
	sess := assessment.NewSession(s.now())
	if err := assessment.Start(sess, s.now()); err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.Debug("session started", zap.String(logger.FieldSessionID, sess.ID))
	return sess, nil
}

// GetSession loads a session.
func (s *Service) GetSession(ctx context.Context, id string) (*types.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, sessionError(id, err)
	}
	return sess, nil
}

// AnswerSession applies answers in order as one atomic update. If any
// answer is rejected none are stored.
func (s *Service) AnswerSession(ctx context.Context, id string, answers []types.QuestionAnswer) (*types.Session, error) {
	if len(answers) == 0 {
		return nil, &InvalidInputError{Message: "at least one answer is required"}
	}
	sess, err := s.sessions.UpdateAnswers(ctx, id, func(sess *types.Session) error {
		now := s.now()
		for _, qa := range answers {
			if err := assessment.ApplyAnswer(sess, qa, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, sessionError(id, err)
	}
	return sess, nil
}

// SessionProgress reports progress of a stored session.
func (s *Service) SessionProgress(ctx context.Context, id string) (assessment.ProgressResult, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return assessment.ProgressResult{}, err
	}
	return assessment.Progress(sess.Answers, sess.Path), nil
}

// CompleteSession validates the session, evaluates its answers, marks it
// completed and persists the result best-effort. A session with blocking
// errors stays active.
func (s *Service) CompleteSession(ctx context.Context, id string, limit int) (*SubmissionResult, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	check, err := assessment.Complete(sess, s.now())
	if err != nil {
		if errors.Is(err, assessment.ErrIncomplete) {
			return nil, &InvalidInputError{
				Message:    "session has blocking validation errors",
				Validation: &check,
				Cause:      err,
			}
		}
		return nil, sessionError(id, err)
	}

	result, err := s.evaluate(ctx, id, sess.Answers, sess.Path, limit)
	if err != nil {
		return nil, err
	}

	_, err = s.sessions.MarkComplete(ctx, id, func(stored *types.Session) error {
		_, err := assessment.Complete(stored, s.now())
		return err
	})
	if err != nil {
		return nil, sessionError(id, err)
	}

	s.persist(ctx, id, result)
	return result, nil
}
