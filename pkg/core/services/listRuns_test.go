package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/db"
)

func TestListRuns_Filters(t *testing.T) {
	store := &mockStore{runs: []db.GenerationRun{
		{ID: "c", Year: 2025, Month: 5},
		{ID: "b", Year: 2025, Month: 4},
		{ID: "a", Year: 2024, Month: 4},
	}}

	runs, err := ListRuns(context.Background(), store, zap.NewNop(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = ListRuns(context.Background(), store, zap.NewNop(), 2025, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, []string{runs[0].ID, runs[1].ID})

	runs, err = ListRuns(context.Background(), store, zap.NewNop(), 0, 4)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
}

func TestListRuns_Error(t *testing.T) {
	_, err := ListRuns(context.Background(), &mockStore{runsErr: errors.New("timeout")}, zap.NewNop(), 0, 0)
	assert.ErrorContains(t, err, "failed to get generation runs")
}
