// Package recommend enriches top career matches with pathways, skill gaps,
// action items, and a course plan. Each recommendation is first requested
// from a generative provider; any provider failure is absorbed and replaced
// by deterministic, sector-specific fallback content.
package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/logger"
	"github.com/jonathan/career-compass/internal/types"
)

// Defaults
const (
	DefaultTopN         = 3
	DefaultTimeout      = 30 * time.Second
	DefaultRetries      = 1
	DefaultConcurrency  = 2
	DefaultCallInterval = 500 * time.Millisecond

	maxRetries     = 1
	maxConcurrency = 3
)

// Input is everything the augmenter reads for one submission.
type Input struct {
	Profile   types.StudentProfile
	Responses types.Responses
	Matches   []types.CareerMatch
	ZipCode   string
	Grade     string
	Catalog   *catalog.Catalog
}

// grade prefers the explicit grade, then the profile, then the raw answer.
func (in Input) grade() string {
	for _, g := range []string{in.Grade, in.Profile.Grade, in.Responses[assessment.QGrade].First()} {
		if g = strings.TrimSpace(g); g != "" {
			return strings.ToLower(g)
		}
	}
	return ""
}

func (in Input) zip() string {
	if in.ZipCode != "" {
		return in.ZipCode
	}
	return in.Profile.ZipCode
}

// Recorder receives augmenter metrics.
type Recorder interface {
	ObserveProviderCall(d time.Duration, err error)
	CountRecommendation(source string)
	CountProviderFailure(reason string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveProviderCall(time.Duration, error) {}
func (nopRecorder) CountRecommendation(string)               {}
func (nopRecorder) CountProviderFailure(string)              {}

// Augmenter produces recommendations for the top matches of a submission.
// It is safe for concurrent use.
type Augmenter struct {
	provider    llm.Provider
	topN        int
	timeout     time.Duration
	retries     int
	concurrency int
	limiter     *rate.Limiter
	schemaHint  string
	logger      *zap.Logger
	recorder    Recorder
}

// Option configures an Augmenter.
type Option func(*Augmenter)

// WithTopN sets how many matches receive a recommendation.
func WithTopN(n int) Option {
	return func(a *Augmenter) {
		if n > 0 {
			a.topN = n
		}
	}
}

// WithTimeout sets the hard limit for a single provider call.
func WithTimeout(d time.Duration) Option {
	return func(a *Augmenter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithRetries sets how many times a failed provider call is retried.
// Values are clamped to [0, 1].
func WithRetries(n int) Option {
	return func(a *Augmenter) {
		a.retries = clamp(n, 0, maxRetries)
	}
}

// WithConcurrency bounds simultaneous provider calls. Values are clamped
// to [1, 3].
func WithConcurrency(n int) Option {
	return func(a *Augmenter) {
		a.concurrency = clamp(n, 1, maxConcurrency)
	}
}

// WithCallInterval sets the minimum spacing between provider calls.
// Zero disables pacing.
func WithCallInterval(d time.Duration) Option {
	return func(a *Augmenter) {
		if d <= 0 {
			a.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		a.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Augmenter) {
		a.logger = logger.WithFields(l)
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(a *Augmenter) {
		if r != nil {
			a.recorder = r
		}
	}
}

// New creates an Augmenter. A nil provider means every recommendation
// comes from the fallback rules.
func New(provider llm.Provider, opts ...Option) *Augmenter {
	a := &Augmenter{
		provider:    provider,
		topN:        DefaultTopN,
		timeout:     DefaultTimeout,
		retries:     DefaultRetries,
		concurrency: DefaultConcurrency,
		limiter:     rate.NewLimiter(rate.Every(DefaultCallInterval), 1),
		schemaHint:  llm.RecommendationSchema().Hint(),
		logger:      zap.NewNop(),
		recorder:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Augment returns one recommendation per top match, in match order, plus the
// merged course plan. It never fails: every provider error is replaced by
// fallback content.
func (a *Augmenter) Augment(ctx context.Context, in Input) types.RecommendationSet {
	top := in.Matches
	if len(top) > a.topN {
		top = top[:a.topN]
	}

	recs := make([]types.Recommendation, len(top))
	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, m := range top {
		g.Go(func() error {
			recs[i] = a.recommend(ctx, in, m)
			return nil
		})
	}
	_ = g.Wait()

	return types.RecommendationSet{
		Recommendations: recs,
		CoursePlan:      coursePlan(recs),
	}
}

// recommend runs the generative attempt for one match and resolves it.
func (a *Augmenter) recommend(ctx context.Context, in Input, m types.CareerMatch) types.Recommendation {
	career := a.career(in, m)
	res := a.Generate(ctx, in, m, career)
	if res.Err != nil {
		a.logger.Warn("recommendation provider failed; using fallback",
			zap.String(logger.FieldCareerID, career.ID),
			zap.Error(res.Err))
		a.recorder.CountProviderFailure(reason(res.Err))
	}
	rec := resolve(res, in, m, career)
	a.recorder.CountRecommendation(rec.Source)
	return rec
}

// resolve maps a generative result to its final recommendation: the
// generated one on success, the fallback on any error.
func resolve(res Result, in Input, m types.CareerMatch, career types.Career) types.Recommendation {
	if res.Err != nil {
		return Fallback(in.Profile, in.grade(), m, career)
	}
	return res.Recommendation
}

// Generate makes the generative attempt for one career: at most 1+retries
// provider calls, each bounded by the call timeout and paced by the limiter.
func (a *Augmenter) Generate(ctx context.Context, in Input, m types.CareerMatch, career types.Career) Result {
	if a.provider == nil {
		return Result{Err: &ProviderUnavailableError{CareerID: career.ID}}
	}
	prompt, err := buildPrompt(in, m, career)
	if err != nil {
		return Result{Err: &ProviderUnavailableError{CareerID: career.ID, Cause: err}}
	}

	var lastErr error
	for attempt := 0; attempt <= a.retries; attempt++ {
		if err := a.limiter.Wait(ctx); err != nil {
			return Result{Err: &ProviderUnavailableError{CareerID: career.ID, Cause: err}}
		}
		rec, err := a.call(ctx, prompt, career)
		if err == nil {
			return Result{Recommendation: rec}
		}
		lastErr = err
		a.logger.Debug("recommendation attempt failed",
			zap.String(logger.FieldCareerID, career.ID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		// a safety block repeats on resend
		if ctx.Err() != nil || errors.Is(err, llm.ErrBlocked) {
			break
		}
	}
	return Result{Err: lastErr}
}

func (a *Augmenter) call(ctx context.Context, prompt string, career types.Career) (types.Recommendation, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	text, err := a.provider.Request(callCtx, prompt, a.schemaHint)
	if err == nil && callCtx.Err() != nil {
		err = callCtx.Err()
	}
	if err != nil {
		err = classify(callCtx, career.ID, a.timeout, err)
	}
	a.recorder.ObserveProviderCall(time.Since(start), err)
	if err != nil {
		return types.Recommendation{}, err
	}
	return parseGenerated(text, career)
}

// career resolves the catalog record behind a match. A match the catalog
// does not know keeps its own title and sector.
func (a *Augmenter) career(in Input, m types.CareerMatch) types.Career {
	if in.Catalog != nil {
		if c, err := in.Catalog.Lookup(m.CareerID); err == nil {
			return c
		}
		a.logger.Warn("recommended career not in catalog",
			zap.String(logger.FieldCareerID, m.CareerID))
	}
	return types.Career{
		ID:                m.CareerID,
		Title:             m.Title,
		Sector:            m.Sector,
		RequiredEducation: types.EducationHighSchool,
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
