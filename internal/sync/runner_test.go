package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger records the refresh log transitions a job run produced.
type fakeLedger struct {
	startErr    error
	completeErr error

	started   []string
	completed map[int]int
	failures  map[int]string
	nextLogID int
	lastLogID int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		completed: map[int]int{},
		failures:  map[int]string{},
		nextLogID: 41,
	}
}

func (f *fakeLedger) Start(ctx context.Context, jobName string) (int, error) {
	if f.startErr != nil {
		return 0, f.startErr
	}
	f.nextLogID++
	f.lastLogID = f.nextLogID
	f.started = append(f.started, jobName)
	return f.nextLogID, nil
}

func (f *fakeLedger) Complete(ctx context.Context, id, playersUpdated int) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completed[id] = playersUpdated
	return nil
}

func (f *fakeLedger) Fail(ctx context.Context, id int, errMsg string) error {
	f.failures[id] = errMsg
	return nil
}

func TestRunJob_Success(t *testing.T) {
	l := newFakeLedger()

	err := runJob(context.Background(), l, "fetch_players", func(ctx context.Context) (int, error) {
		return 517, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"fetch_players"}, l.started)
	assert.Equal(t, 517, l.completed[l.lastLogID])
	assert.Empty(t, l.failures)
}

func TestRunJob_BodyErrorRecordsFailure(t *testing.T) {
	l := newFakeLedger()

	err := runJob(context.Background(), l, "fetch_game_logs", func(ctx context.Context) (int, error) {
		return 0, errors.New("upstream returned no rows")
	})
	require.Error(t, err)

	assert.Empty(t, l.completed)
	assert.Equal(t, "upstream returned no rows", l.failures[l.lastLogID])
}

func TestRunJob_PanicRecordsFailure(t *testing.T) {
	l := newFakeLedger()

	err := runJob(context.Background(), l, "calculate_percentiles", func(ctx context.Context) (int, error) {
		panic("nil table")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calculate_percentiles panicked")

	assert.Empty(t, l.completed)
	assert.Contains(t, l.failures[l.lastLogID], "nil table")
}

func TestRunJob_StartFailureAbortsBody(t *testing.T) {
	l := newFakeLedger()
	l.startErr = errors.New("connection refused")

	ran := false
	err := runJob(context.Background(), l, "fetch_players", func(ctx context.Context) (int, error) {
		ran = true
		return 0, nil
	})
	require.Error(t, err)
	assert.False(t, ran)
	assert.Empty(t, l.failures)
}

func TestRunJob_CompleteFailureRecordsFailure(t *testing.T) {
	l := newFakeLedger()
	l.completeErr = errors.New("write timeout")

	err := runJob(context.Background(), l, "fetch_season_stats", func(ctx context.Context) (int, error) {
		return 12, nil
	})
	require.Error(t, err)
	assert.Contains(t, l.failures[l.lastLogID], "write timeout")
}
