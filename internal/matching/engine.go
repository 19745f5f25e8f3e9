// Package matching scores the career catalog against a student profile and
// returns ranked matches.
package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/labor"
	"github.com/jonathan/career-compass/internal/logger"
	"github.com/jonathan/career-compass/internal/types"
)

// DefaultLimit is the result size when a request does not set one.
const DefaultLimit = 5

// ExploringResultSize is the fixed result size on the exploring path.
const ExploringResultSize = 3

// ErrTooFewSectors is returned on the exploring path when the catalog spans
// fewer sectors than the diversity rule needs.
var ErrTooFewSectors = errors.New("catalog has too few distinct sectors for a diverse result")

const explicitFactor = "You named this career directly"

// Request is one matching call.
type Request struct {
	Profile types.StudentProfile
	ZipCode string
	Limit   int
}

// Engine ranks an immutable catalog. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	catalog      *catalog.Catalog
	labor        labor.Provider
	logger       *zap.Logger
	defaultLimit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLaborProvider attaches a local labor-market provider.
func WithLaborProvider(p labor.Provider) Option {
	return func(e *Engine) { e.labor = p }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDefaultLimit overrides DefaultLimit.
func WithDefaultLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.defaultLimit = n
		}
	}
}

// NewEngine creates an Engine over cat.
func NewEngine(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{catalog: cat, defaultLimit: DefaultLimit}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logger.WithFields(e.logger, zap.String("component", "matching"))
	return e
}

// scored is one career with its score and catalog position.
type scored struct {
	career types.Career
	index  int
	match  types.CareerMatch
}

// Match ranks the catalog for req.Profile. A named career is resolved before
// scoring and always ranks first; an unresolvable name is logged and
// ignored. The exploring path returns exactly ExploringResultSize matches
// from distinct sectors.
func (e *Engine) Match(ctx context.Context, req Request) ([]types.CareerMatch, error) {
	p := req.Profile
	limit := req.Limit
	if limit <= 0 {
		limit = e.defaultLimit
	}

	explicit, hasExplicit := e.resolveExplicit(p.ExplicitCareer)

	pool := make([]scored, 0, e.catalog.Len())
	for i, c := range e.catalog.All() {
		if hasExplicit && c.ID == explicit.ID {
			continue
		}
		pool = append(pool, scored{career: c, index: i, match: buildMatch(&p, &c)})
	}
	rankCandidates(pool)

	var picked []scored
	if hasExplicit {
		idx, _ := e.catalog.Index(explicit.ID)
		m := buildMatch(&p, &explicit)
		m.Explicit = true
		m.ReasoningFactors = append([]string{explicitFactor}, m.ReasoningFactors...)
		picked = append(picked, scored{career: explicit, index: idx, match: m})
	}

	if p.Path == types.PathExploring {
		var err error
		picked, err = pickDiverse(picked, pool, ExploringResultSize)
		if err != nil {
			return nil, err
		}
	} else {
		for _, s := range pool {
			if len(picked) >= limit {
				break
			}
			picked = append(picked, s)
		}
	}

	matches := make([]types.CareerMatch, len(picked))
	careers := make([]types.Career, len(picked))
	for i, s := range picked {
		matches[i] = s.match
		careers[i] = s.career
	}
	e.applyLocalData(ctx, req.ZipCode, careers, matches)
	return matches, nil
}

// Score computes the match for a single career without ranking.
func Score(p types.StudentProfile, c types.Career) types.CareerMatch {
	return buildMatch(&p, &c)
}

func buildMatch(p *types.StudentProfile, c *types.Career) types.CareerMatch {
	b := scoreCareer(p, c)
	return types.CareerMatch{
		CareerID:         c.ID,
		Title:            c.Title,
		Sector:           c.Sector,
		MatchScore:       b.score,
		ReasoningFactors: reasoningFactors(p, c, b),
		LocalDemand:      types.DemandUnknown,
	}
}

func (e *Engine) resolveExplicit(name string) (types.Career, bool) {
	if name == "" {
		return types.Career{}, false
	}
	c, err := e.catalog.Lookup(name)
	if err != nil {
		e.logger.Warn("named career not in catalog; ranking without it",
			zap.String("career", name), zap.Error(err))
		return types.Career{}, false
	}
	return c, true
}

// rankCandidates orders by score, then salary, both descending. The stable
// sort keeps catalog order for exact ties.
func rankCandidates(pool []scored) {
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.match.MatchScore != b.match.MatchScore {
			return a.match.MatchScore > b.match.MatchScore
		}
		return a.career.AverageSalary > b.career.AverageSalary
	})
}

// pickDiverse fills picked up to size with the best remaining career of
// each sector not yet represented.
func pickDiverse(picked, ranked []scored, size int) ([]scored, error) {
	used := make(map[types.Sector]bool, size)
	for _, s := range picked {
		used[s.career.Sector] = true
	}
	for _, s := range ranked {
		if len(picked) >= size {
			break
		}
		if used[s.career.Sector] {
			continue
		}
		used[s.career.Sector] = true
		picked = append(picked, s)
	}
	if len(picked) < size {
		return nil, fmt.Errorf("%w: need %d, found %d", ErrTooFewSectors, size, len(picked))
	}
	return picked, nil
}

// applyLocalData fills local demand and salary from the labor provider.
// Provider failures leave the defaults in place.
func (e *Engine) applyLocalData(ctx context.Context, zip string, careers []types.Career, matches []types.CareerMatch) {
	if e.labor == nil || zip == "" || len(careers) == 0 {
		return
	}
	estimates, err := e.labor.Estimate(ctx, zip, careers)
	if err != nil {
		e.logger.Warn("labor estimates unavailable", zap.String("zip", zip), zap.Error(err))
		return
	}
	for i := range matches {
		est, ok := estimates[matches[i].CareerID]
		if !ok {
			continue
		}
		if est.Demand != "" {
			matches[i].LocalDemand = est.Demand
		}
		matches[i].EstimatedLocalSalary = est.Salary
		if est.Demand == types.DemandHigh {
			matches[i].ReasoningFactors = append(matches[i].ReasoningFactors, "High demand in your area")
		}
	}
}
