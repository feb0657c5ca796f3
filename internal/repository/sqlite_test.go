package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func record(id string, mag float64, directivity bool) *Record {
	return &Record{
		ID:              id,
		EventSourceCode: id,
		Description:     domain.DescriptionMedian,
		LocString:       "Test fault",
		Magnitude:       mag,
		Lat:             34.0,
		Lon:             -118.0,
		Depth:           7.5,
		Mechanism:       domain.MechanismAll,
		Directivity:     directivity,
		Dialect:         "trace",
		RunID:           "run-1",
		CreatedAt:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewSQLiteDB_UnopenablePath(t *testing.T) {
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "missing", "scenarios.db"))
	require.Error(t, err)
	assert.Nil(t, db)
}

func TestSQLiteDB_AddAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rake := -90.0
	r := record("test_m7_se", 7.0, false)
	r.Rake = &rake
	r.Reference = "UCERF3"
	require.NoError(t, db.Add(ctx, r))

	got, err := db.GetByID(ctx, "test_m7_se")
	require.NoError(t, err)
	assert.Equal(t, r, got)

	_, err = db.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteDB_AddReplaces(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Add(ctx, record("a", 6.0, false)))
	updated := record("a", 6.5, true)
	updated.RunID = "run-2"
	require.NoError(t, db.Add(ctx, updated))

	got, err := db.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
	assert.True(t, got.Directivity)
	assert.Nil(t, got.Rake)
}

func TestSQLiteDB_Exists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	exists, err := db.Exists(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.Add(ctx, record("exists_test", 6.0, false)))
	exists, err = db.Exists(ctx, "exists_test")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSQLiteDB_List(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, r := range []*Record{
		record("eq1", 6.0, false),
		record("eq2", 4.0, false),
		record("eq3", 7.2, true),
	} {
		require.NoError(t, db.Add(ctx, r))
	}

	minMag := 5.0
	dirOn := true
	tests := []struct {
		name string
		opts Filter
		want []string
	}{
		{name: "all", opts: Filter{}, want: []string{"eq3", "eq1", "eq2"}},
		{name: "min magnitude", opts: Filter{MinMagnitude: &minMag}, want: []string{"eq3", "eq1"}},
		{name: "directivity", opts: Filter{Directivity: &dirOn}, want: []string{"eq3"}},
		{name: "limit", opts: Filter{Limit: 2}, want: []string{"eq3", "eq1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.List(ctx, tt.opts)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestLoader_LoadBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	loader := NewLoader(db)
	_, err := uuid.Parse(loader.RunID())
	require.NoError(t, err)

	rake := 180.0
	batch := []domain.Scenario{
		{
			Event: domain.EventRecord{
				ID:              "a_m7_se~dir1",
				EventSourceCode: "a_m7_se",
				Description:     domain.DescriptionBilateral,
				LocString:       "Fault A",
				Magnitude:       7.0,
				Rake:            &rake,
				Mechanism:       domain.MechanismStrikeSlip,
				Hypocenter:      domain.Point{Lon: -118, Lat: 34.2, Depth: 7.5},
				Created:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
				Directivity:     true,
			},
			Dialect: "ucerf3",
		},
		{
			Event: domain.EventRecord{
				ID:         "b_m6_se",
				Magnitude:  6.0,
				Mechanism:  domain.MechanismAll,
				Hypocenter: domain.Point{Lon: -117, Lat: 35},
				Created:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			},
			Dialect: "point",
		},
	}
	require.NoError(t, loader.LoadBatch(ctx, batch))

	got, err := db.GetByID(ctx, "a_m7_se~dir1")
	require.NoError(t, err)
	assert.Equal(t, "a_m7_se", got.EventSourceCode)
	assert.Equal(t, loader.RunID(), got.RunID)
	assert.Equal(t, "ucerf3", got.Dialect)
	require.NotNil(t, got.Rake)
	assert.InDelta(t, 180.0, *got.Rake, 0)
	assert.InDelta(t, 34.2, got.Lat, 1e-12)

	all, err := db.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
