package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_IsLocked(t *testing.T) {
	kickoff := time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)
	match, err := NewMatch(1, "México", "Polonia", kickoff)
	require.NoError(t, err)

	offset := 10 * time.Minute

	assert.False(t, match.IsLocked(kickoff.Add(-time.Hour), offset))
	assert.False(t, match.IsLocked(kickoff.Add(-11*time.Minute), offset))
	assert.True(t, match.IsLocked(kickoff.Add(-10*time.Minute), offset), "lock boundary is inclusive")
	assert.True(t, match.IsLocked(kickoff, offset))

	assert.False(t, match.IsLocked(kickoff.Add(-time.Second), 0), "zero offset locks at kickoff")
	assert.True(t, match.IsLocked(kickoff, 0))
}

func TestMatch_IsLockedAfterFinish(t *testing.T) {
	kickoff := time.Now().UTC().Add(48 * time.Hour)
	match, err := NewMatch(1, "México", "Polonia", kickoff)
	require.NoError(t, err)

	require.NoError(t, match.RecordResult(2, 0))
	assert.True(t, match.IsLocked(time.Now().UTC(), time.Hour), "finished matches never reopen")
}

func TestNewMatch_Validation(t *testing.T) {
	kickoff := time.Now().UTC()

	_, err := NewMatch(1, "", "Polonia", kickoff)
	assert.Error(t, err)

	_, err = NewMatch(1, "México", "México", kickoff)
	assert.Error(t, err)
}

func TestPrediction_Score(t *testing.T) {
	tests := []struct {
		name       string
		pickHome   int
		pickAway   int
		finalHome  int
		finalAway  int
		wantPoints int
	}{
		{"exact score", 2, 1, 2, 1, 3},
		{"correct outcome home win", 3, 0, 2, 1, 1},
		{"correct outcome draw", 0, 0, 2, 2, 1},
		{"correct outcome away win", 0, 1, 1, 3, 1},
		{"wrong outcome", 2, 0, 0, 2, 0},
		{"draw picked but home won", 1, 1, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := NewPrediction(1, 1, tt.pickHome, tt.pickAway)
			require.NoError(t, err)

			got := pred.Score(tt.finalHome, tt.finalAway)
			assert.Equal(t, tt.wantPoints, got)
			require.NotNil(t, pred.Points())
			assert.Equal(t, tt.wantPoints, *pred.Points())
		})
	}
}

func TestPrediction_UpdatePick(t *testing.T) {
	pred, err := NewPrediction(1, 1, 0, 0)
	require.NoError(t, err)

	require.NoError(t, pred.UpdatePick(2, 1))
	assert.Equal(t, 2, pred.HomeGoals())
	assert.Equal(t, 1, pred.AwayGoals())

	assert.Error(t, pred.UpdatePick(-1, 0))
}
