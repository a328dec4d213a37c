package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/jobs"
	"orders/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxRelayHandler struct {
	mock.Mock
}

func (m *MockOutboxRelayHandler) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxRelayJob_Run(t *testing.T) {
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	t.Run("counts relayed messages", func(t *testing.T) {
		handler := new(MockOutboxRelayHandler)
		handler.On("Handle", mock.Anything, cmd).Return(3, nil).Once()
		m := metrics.Nop()

		jobs.NewOutboxRelayJob(handler, "* * * * * *", 10, m, discardLogger()).Run(t.Context(), cmd)

		handler.AssertExpectations(t)
		assert.InDelta(t, 3, testutil.ToFloat64(m.OutboxRelayed), 0)
	})

	t.Run("partial relay is counted before the error is logged", func(t *testing.T) {
		handler := new(MockOutboxRelayHandler)
		handler.On("Handle", mock.Anything, cmd).Return(1, errors.New("broker down")).Once()
		m := metrics.Nop()

		jobs.NewOutboxRelayJob(handler, "* * * * * *", 10, m, discardLogger()).Run(t.Context(), cmd)

		assert.InDelta(t, 1, testutil.ToFloat64(m.OutboxRelayed), 0)
	})
}

func TestOutboxRelayJob_Start(t *testing.T) {
	t.Run("invalid batch size", func(t *testing.T) {
		job := jobs.NewOutboxRelayJob(new(MockOutboxRelayHandler), "* * * * * *", 0, metrics.Nop(), discardLogger())
		require.Error(t, job.Start())
	})

	t.Run("invalid schedule", func(t *testing.T) {
		job := jobs.NewOutboxRelayJob(new(MockOutboxRelayHandler), "every so often", 10, metrics.Nop(), discardLogger())
		require.Error(t, job.Start())
	})

	t.Run("runs on schedule", func(t *testing.T) {
		var calls atomic.Int32
		handler := new(MockOutboxRelayHandler)
		handler.On("Handle", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { calls.Add(1) }).
			Return(0, nil)

		job := jobs.NewOutboxRelayJob(handler, "* * * * * *", 10, metrics.Nop(), discardLogger())
		require.NoError(t, job.Start())
		defer job.Stop()

		assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	})
}

type fakeJob struct {
	name    string
	failing bool
	events  *[]string
}

func (j *fakeJob) Start() error {
	if j.failing {
		return errors.New("cannot start " + j.name)
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j *fakeJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var events []string
		jm := jobs.NewJobManager(&fakeJob{name: "a", events: &events}, &fakeJob{name: "b", events: &events})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
	})

	t.Run("failed start stops started jobs", func(t *testing.T) {
		var events []string
		jm := jobs.NewJobManager(
			&fakeJob{name: "a", events: &events},
			&fakeJob{name: "b", failing: true, events: &events},
			&fakeJob{name: "c", events: &events},
		)

		require.Error(t, jm.StartAll())
		assert.Equal(t, []string{"start a", "stop a"}, events)
	})
}
