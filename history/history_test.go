package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonecap/tonecap/config"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateRunAndRecord(t *testing.T) {
	s := openTemp(t)

	run, err := s.CreateRun(config.Default())
	require.NoError(t, err)
	require.NotEmpty(t, run)

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.RecordEpoch(run, Epoch{
			Epoch:     i,
			TrainLoss: 1.0 / float64(i),
			ValidESR:  0.5 / float64(i),
			Spectral:  0.3,
			LearnRate: 0.005,
		}))
	}

	epochs, err := s.Epochs(run)
	require.NoError(t, err)
	require.Len(t, epochs, 3)
	assert.Equal(t, 1, epochs[0].Epoch)
	assert.Equal(t, 3, epochs[2].Epoch)
	assert.InDelta(t, 0.5, epochs[0].ValidESR, 1e-9)
}

func TestBest(t *testing.T) {
	s := openTemp(t)
	run, err := s.CreateRun(nil)
	require.NoError(t, err)

	require.NoError(t, s.RecordEpoch(run, Epoch{Epoch: 1, ValidESR: 0.9}))
	require.NoError(t, s.RecordEpoch(run, Epoch{Epoch: 2, ValidESR: 0.2}))
	require.NoError(t, s.RecordEpoch(run, Epoch{Epoch: 3, ValidESR: 0.4}))

	best, err := s.Best(run)
	require.NoError(t, err)
	assert.Equal(t, 2, best.Epoch)
}

func TestRunsAreIsolated(t *testing.T) {
	s := openTemp(t)
	a, err := s.CreateRun(nil)
	require.NoError(t, err)
	b, err := s.CreateRun(nil)
	require.NoError(t, err)

	require.NoError(t, s.RecordEpoch(a, Epoch{Epoch: 1}))
	epochs, err := s.Epochs(b)
	require.NoError(t, err)
	assert.Empty(t, epochs)
}

func TestDuplicateEpochRejected(t *testing.T) {
	s := openTemp(t)
	run, err := s.CreateRun(nil)
	require.NoError(t, err)
	require.NoError(t, s.RecordEpoch(run, Epoch{Epoch: 1}))
	assert.Error(t, s.RecordEpoch(run, Epoch{Epoch: 1}))
}
