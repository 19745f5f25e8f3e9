package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/session"
	"github.com/jonathan/career-compass/internal/types"
)

type mockPersister struct {
	mu    sync.Mutex
	calls []string
	err   error
	id    uuid.UUID
}

func (m *mockPersister) SaveSubmission(_ context.Context, sessionID, path string, _ any) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, sessionID+"|"+path)
	if m.err != nil {
		return uuid.Nil, m.err
	}
	return m.id, nil
}

func responsesFor(path types.PathID) types.Responses {
	r := types.Responses{
		assessment.QGrade:         types.TextAnswer("11"),
		assessment.QZipCode:       types.TextAnswer("60614"),
		assessment.QInterests:     types.ChoiceAnswer("healthcare", "helping_people"),
		assessment.QEducationGoal: types.TextAnswer("associate"),
	}
	switch path {
	case types.PathHandsOn:
		r[assessment.QCareerDirection] = types.TextAnswer(assessment.DirectionHandsOn)
		r[assessment.QTradeArea] = types.TextAnswer("electrical")
		r[assessment.QApprenticeshipInterest] = types.RatingAnswer(4)
	case types.PathCareerFocus:
		r[assessment.QCareerDirection] = types.TextAnswer(assessment.DirectionFocused)
		r[assessment.QCareerField] = types.TextAnswer("healthcare")
		r[assessment.QSpecificCareer] = types.TextAnswer("no")
	case types.PathExploring:
		r[assessment.QCareerDirection] = types.TextAnswer(assessment.DirectionUndecided)
		r[assessment.QSectorCuriosity] = types.RatingAnswer(5)
	}
	return r
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	opts = append([]Option{WithClock(func() time.Time { return fixed })}, opts...)
	return New(cat, nil, nil, opts...)
}

func TestSubmit_AllPaths(t *testing.T) {
	svc := newTestService(t)
	for _, path := range []types.PathID{types.PathHandsOn, types.PathCareerFocus, types.PathExploring} {
		t.Run(string(path), func(t *testing.T) {
			res, err := svc.Submit(context.Background(), responsesFor(path), path, 0)
			require.NoError(t, err)

			assert.True(t, res.Validation.IsValid)
			assert.NotEmpty(t, res.Matches)
			assert.Len(t, res.Explanations, len(res.Matches))
			assert.Equal(t, path, res.Profile.Path)
			require.NotEmpty(t, res.Recommendations.Recommendations)
			for _, rec := range res.Recommendations.Recommendations {
				assert.Equal(t, types.SourceFallback, rec.Source)
				assert.NotEmpty(t, rec.Pathway)
				assert.GreaterOrEqual(t, len(rec.SkillGaps), 2)
				assert.GreaterOrEqual(t, len(rec.ActionItems), 2)
			}
			if path == types.PathExploring {
				assert.Len(t, res.Matches, 3)
			}
		})
	}
}

func TestSubmit_RejectsBlockingErrors(t *testing.T) {
	svc := newTestService(t)
	r := responsesFor(types.PathHandsOn)
	delete(r, assessment.QTradeArea)

	res, err := svc.Submit(context.Background(), r, types.PathHandsOn, 0)
	assert.Nil(t, res)
	require.Error(t, err)

	var ie *InvalidInputError
	require.True(t, errors.As(err, &ie))
	require.NotNil(t, ie.Validation)
	assert.False(t, ie.Validation.IsValid)
	assert.Equal(t, assessment.QTradeArea, ie.Validation.Errors[0].QuestionID)
	assert.True(t, IsInvalidInput(err))
}

func TestSubmit_DerivesPathFromBranchingAnswer(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.Submit(context.Background(), responsesFor(types.PathHandsOn), types.PathUndetermined, 2)
	require.NoError(t, err)
	assert.Equal(t, types.PathHandsOn, res.Profile.Path)
	assert.Len(t, res.Matches, 2)

	r := responsesFor(types.PathHandsOn)
	delete(r, assessment.QCareerDirection)
	_, err = svc.Submit(context.Background(), r, types.PathUndetermined, 0)
	assert.True(t, IsInvalidInput(err))
}

func TestSubmit_Persistence(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467a-9af0-1b2a3c4d5e6f")

	t.Run("stores result", func(t *testing.T) {
		p := &mockPersister{id: id}
		svc := newTestService(t, WithPersister(p))
		res, err := svc.Submit(context.Background(), responsesFor(types.PathCareerFocus), types.PathCareerFocus, 0)
		require.NoError(t, err)
		assert.Equal(t, id.String(), res.SubmissionID)
		assert.Equal(t, []string{"|path_b"}, p.calls)
	})

	t.Run("failure is not surfaced", func(t *testing.T) {
		p := &mockPersister{err: errors.New("connection refused")}
		svc := newTestService(t, WithPersister(p))
		res, err := svc.Submit(context.Background(), responsesFor(types.PathCareerFocus), types.PathCareerFocus, 0)
		require.NoError(t, err)
		assert.Empty(t, res.SubmissionID)
		assert.NotEmpty(t, res.Matches)
	})
}

func TestSubmit_EmitsProgress(t *testing.T) {
	var steps []string
	svc := newTestService(t,
		WithPersister(&mockPersister{id: uuid.New()}),
		WithProgress(func(e ProgressEvent) { steps = append(steps, e.Step) }))

	_, err := svc.Submit(context.Background(), responsesFor(types.PathExploring), types.PathExploring, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{StepValidate, StepProfile, StepMatch, StepRecommend, StepPersist}, steps)
}

func TestQuestions(t *testing.T) {
	svc := newTestService(t)

	common, err := svc.Questions(types.PathUndetermined)
	require.NoError(t, err)
	handsOn, err := svc.Questions(types.PathHandsOn)
	require.NoError(t, err)
	assert.Greater(t, len(handsOn), len(common))

	_, err = svc.Questions("path_z")
	assert.True(t, IsInvalidInput(err))
}

func TestCareer(t *testing.T) {
	svc := newTestService(t)

	c, err := svc.Career("Registered Nurse")
	require.NoError(t, err)
	assert.Equal(t, "registered-nurse", c.ID)

	_, err = svc.Career("astronaut")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "career", nf.Kind)
	assert.Len(t, svc.Careers(), len(svc.catalog.All()))
}

func answersOf(r types.Responses) []types.QuestionAnswer {
	out := []types.QuestionAnswer{{QuestionID: assessment.QCareerDirection, Answer: r[assessment.QCareerDirection]}}
	for _, id := range r.SortedKeys() {
		if id != assessment.QCareerDirection {
			out = append(out, types.QuestionAnswer{QuestionID: id, Answer: r[id]})
		}
	}
	return out
}

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()
	p := &mockPersister{id: uuid.New()}
	svc := newTestService(t, WithSessionStore(session.NewMemoryStore(time.Hour)), WithPersister(p))

	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.PhaseBranchingPending, sess.Phase)

	progress, err := svc.SessionProgress(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Percent)

	updated, err := svc.AnswerSession(ctx, sess.ID, answersOf(responsesFor(types.PathHandsOn)))
	require.NoError(t, err)
	assert.Equal(t, types.PathHandsOn, updated.Path)
	assert.Equal(t, types.PhasePathActive, updated.Phase)

	progress, err = svc.SessionProgress(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.Percent)

	res, err := svc.CompleteSession(ctx, sess.ID, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Matches)
	assert.Equal(t, []string{sess.ID + "|path_a"}, p.calls)

	stored, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)

	_, err = svc.CompleteSession(ctx, sess.ID, 0)
	assert.True(t, IsInvalidInput(err))
	assert.ErrorIs(t, err, assessment.ErrSessionCompleted)

	_, err = svc.AnswerSession(ctx, sess.ID, []types.QuestionAnswer{
		{QuestionID: assessment.QGrade, Answer: types.TextAnswer("12")},
	})
	assert.ErrorIs(t, err, assessment.ErrSessionCompleted)
}

func TestAnswerSession_BatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.AnswerSession(ctx, sess.ID, []types.QuestionAnswer{
		{QuestionID: assessment.QCareerDirection, Answer: types.TextAnswer(assessment.DirectionHandsOn)},
		{QuestionID: assessment.QApprenticeshipInterest, Answer: types.RatingAnswer(9)},
	})
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	stored, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Answers)
	assert.Equal(t, types.PathUndetermined, stored.Path)
}

func TestAnswerSession_PathLocked(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.AnswerSession(ctx, sess.ID, []types.QuestionAnswer{
		{QuestionID: assessment.QCareerDirection, Answer: types.TextAnswer(assessment.DirectionHandsOn)},
	})
	require.NoError(t, err)

	_, err = svc.AnswerSession(ctx, sess.ID, []types.QuestionAnswer{
		{QuestionID: assessment.QCareerDirection, Answer: types.TextAnswer(assessment.DirectionUndecided)},
	})
	assert.ErrorIs(t, err, assessment.ErrPathLocked)

	_, err = svc.AnswerSession(ctx, sess.ID, nil)
	assert.True(t, IsInvalidInput(err))
}

func TestCompleteSession_Incomplete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.AnswerSession(ctx, sess.ID, []types.QuestionAnswer{
		{QuestionID: assessment.QCareerDirection, Answer: types.TextAnswer(assessment.DirectionFocused)},
	})
	require.NoError(t, err)

	_, err = svc.CompleteSession(ctx, sess.ID, 0)
	var ie *InvalidInputError
	require.True(t, errors.As(err, &ie))
	require.NotNil(t, ie.Validation)
	assert.NotEmpty(t, ie.Validation.Errors)

	stored, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, stored.Status)
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.GetSession(ctx, "missing")
	assert.True(t, IsNotFound(err))
	_, err = svc.SessionProgress(ctx, "missing")
	assert.True(t, IsNotFound(err))
	_, err = svc.AnswerSession(ctx, "missing", []types.QuestionAnswer{
		{QuestionID: assessment.QGrade, Answer: types.TextAnswer("9")},
	})
	assert.True(t, IsNotFound(err))
	_, err = svc.CompleteSession(ctx, "missing", 0)
	assert.True(t, IsNotFound(err))
}
