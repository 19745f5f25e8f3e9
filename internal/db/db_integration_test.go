//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/types"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestIntegration_CareerRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	suffix := uuid.New().String()[:8]
	careers := []types.Career{
		{
			ID: "it-" + suffix + "-a", Title: "Alpha", Sector: types.SectorBusiness,
			RequiredEducation: types.EducationBachelor, AverageSalary: 60000,
			GrowthOutlook: "moderate", Keywords: []string{"business"}, MonthsToEntry: 48,
		},
		{
			ID: "it-" + suffix + "-b", Title: "Beta", Sector: types.SectorCreative,
			RequiredEducation: types.EducationHighSchool, AverageSalary: 30000,
			GrowthOutlook: "low", Keywords: []string{"creative"}, Aliases: []string{"b"},
		},
	}
	require.NoError(t, db.UpsertCareers(ctx, careers))
	defer func() {
		_, _ = db.pool.Exec(ctx, `DELETE FROM careers WHERE id LIKE $1`, "it-"+suffix+"%")
	}()

	loaded, err := db.LoadCareers(ctx)
	require.NoError(t, err)

	byID := map[string]types.Career{}
	for _, c := range loaded {
		byID[c.ID] = c
	}
	got, ok := byID[careers[1].ID]
	require.True(t, ok)
	assert.Equal(t, careers[1].Title, got.Title)
	assert.Equal(t, careers[1].Sector, got.Sector)
	assert.Equal(t, []string{"b"}, got.Aliases)
}

func TestIntegration_SaveSubmission(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	sessionID := "it-" + uuid.New().String()
	id, err := db.SaveSubmission(ctx, sessionID, "path_c", map[string]any{"matches": []string{"nurse"}})
	require.NoError(t, err)
	defer func() {
		_, _ = db.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	}()

	s, err := db.GetSubmission(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, sessionID, s.SessionID)
	assert.Equal(t, "path_c", s.Path)
	assert.JSONEq(t, `{"matches":["nurse"]}`, string(s.Result))

	list, err := db.ListSessionSubmissions(ctx, sessionID, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	missing, err := db.GetSubmission(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
