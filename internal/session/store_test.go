package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/assessment"
	"github.com/jonathan/career-compass/internal/types"
)

var epoch = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	rs, _ := newRedisStore(t, time.Hour)
	return map[string]Store{
		"redis":  rs,
		"memory": NewMemoryStore(time.Hour),
	}
}

func startedSession(t *testing.T) *types.Session {
	t.Helper()
	s := assessment.NewSession(epoch)
	require.NoError(t, assessment.Start(s, epoch))
	return s
}

func TestStore_CreateAndGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := startedSession(t)
			require.NoError(t, store.Create(ctx, s))

			got, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, s.ID, got.ID)
			assert.Equal(t, types.PhaseBranchingPending, got.Phase)
			assert.NotNil(t, got.Answers)

			assert.Error(t, store.Create(ctx, s), "duplicate ids are rejected")

			_, err = store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_UpdateAnswers(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := startedSession(t)
			require.NoError(t, store.Create(ctx, s))

			got, err := store.UpdateAnswers(ctx, s.ID, func(s *types.Session) error {
				return assessment.ApplyAnswer(s, types.QuestionAnswer{
					QuestionID: assessment.QCareerDirection,
					Answer:     types.TextAnswer("hands_on"),
				}, epoch)
			})
			require.NoError(t, err)
			assert.Equal(t, types.PathHandsOn, got.Path)

			stored, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, types.PhasePathActive, stored.Phase)
			assert.Equal(t, "hands_on", stored.Answers[assessment.QCareerDirection].Text)

			_, err = store.UpdateAnswers(ctx, "missing", func(*types.Session) error { return nil })
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_FailedMutationLeavesSessionUntouched(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := startedSession(t)
			require.NoError(t, store.Create(ctx, s))

			boom := errors.New("boom")
			_, err := store.UpdateAnswers(ctx, s.ID, func(s *types.Session) error {
				s.Answers["grade"] = types.TextAnswer("9")
				return boom
			})
			assert.ErrorIs(t, err, boom)

			stored, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Empty(t, stored.Answers)
		})
	}
}

func TestStore_MarkCompleteRequiresCompletedStatus(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := startedSession(t)
			require.NoError(t, store.Create(ctx, s))

			_, err := store.MarkComplete(ctx, s.ID, func(*types.Session) error { return nil })
			require.Error(t, err)

			got, err := store.MarkComplete(ctx, s.ID, func(s *types.Session) error {
				s.Status = types.StatusCompleted
				s.Phase = types.PhaseCompleted
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, types.StatusCompleted, got.Status)
		})
	}
}

func TestStore_ConcurrentUpdatesSerialize(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := startedSession(t)
			require.NoError(t, store.Create(ctx, s))

			ids := []string{"interests_narrative", "experience_narrative", "inspiration_narrative", "zip_code"}
			var wg sync.WaitGroup
			for _, id := range ids {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := store.UpdateAnswers(ctx, s.ID, func(s *types.Session) error {
						s.Answers[id] = types.TextAnswer(id)
						s.AnswerOrder = append(s.AnswerOrder, id)
						return nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			stored, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Len(t, stored.Answers, len(ids), "no update is lost")
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()
	s := startedSession(t)
	require.NoError(t, store.Create(ctx, s))

	assert.Equal(t, time.Minute, mr.TTL(sessionKey(s.ID)))

	mr.FastForward(45 * time.Second)
	_, err := store.UpdateAnswers(ctx, s.ID, func(*types.Session) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(sessionKey(s.ID)), "writes refresh the TTL")

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set(sessionKey("bad"), "{not json"))

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := epoch
	store.now = func() time.Time { return now }

	s := startedSession(t)
	require.NoError(t, store.Create(context.Background(), s))

	now = now.Add(59 * time.Second)
	_, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore(0)
	s := startedSession(t)
	require.NoError(t, store.Create(context.Background(), s))

	got, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	got.Answers["grade"] = types.TextAnswer("9")

	again, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Answers)
}
