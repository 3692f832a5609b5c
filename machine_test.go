package asyncstate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/asyncstate"
)

func TestMachineSuccessLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := asyncstate.New[string](asyncstate.WithBuffer[string](8))
	defer m.Close()

	updates := m.Watch(ctx)
	require.True(t, m.Snapshot().Idle())

	release := make(chan struct{})
	m.Run(func() *asyncstate.Future[string] {
		return asyncstate.Go(ctx, func(context.Context) (string, error) {
			<-release
			return "pikachu", nil
		})
	})

	snap := <-updates
	require.Equal(t, asyncstate.StatusPending, snap.Status)
	require.NoError(t, snap.Err)

	close(release)

	snap = <-updates
	require.Equal(t, asyncstate.StatusResolved, snap.Status)
	require.Equal(t, "pikachu", snap.Data)
	require.NoError(t, snap.Err)
	require.True(t, m.Snapshot().Resolved())
}

func TestMachineFailureLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := asyncstate.New[string](asyncstate.WithBuffer[string](8))
	defer m.Close()

	updates := m.Watch(ctx)
	errNotFound := errors.New("not found")

	m.Run(func() *asyncstate.Future[string] {
		return asyncstate.Go(ctx, func(context.Context) (string, error) {
			return "", errNotFound
		})
	})

	snap := <-updates
	require.Equal(t, asyncstate.StatusPending, snap.Status)

	snap = <-updates
	require.Equal(t, asyncstate.StatusRejected, snap.Status)
	require.ErrorIs(t, snap.Err, errNotFound)
	require.Empty(t, snap.Data)
}

func TestMachineNilFactoryIsNoop(t *testing.T) {
	t.Parallel()

	m := asyncstate.New[int]()
	defer m.Close()

	m.Run(nil)
	require.True(t, m.Snapshot().Idle())

	m.Run(func() *asyncstate.Future[int] { return nil })
	require.True(t, m.Snapshot().Idle())
}

func TestMachineCloseWhilePending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := asyncstate.New[string]()

	release := make(chan struct{})
	fut := asyncstate.Go(ctx, func(context.Context) (string, error) {
		<-release
		return "too late", nil
	})

	m.Run(func() *asyncstate.Future[string] { return fut })
	require.True(t, m.Snapshot().Pending())

	require.NoError(t, m.Close())

	// The in-flight work keeps running; only the dispatch of its result is
	// suppressed.
	close(release)
	data, err := fut.Await()
	require.NoError(t, err)
	require.Equal(t, "too late", data)

	require.Never(t, func() bool {
		return m.Snapshot().Status != asyncstate.StatusPending
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestMachineRunAfterCloseIsDropped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := asyncstate.New[string]()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // idempotent

	m.Run(func() *asyncstate.Future[string] {
		return asyncstate.Go(ctx, func(context.Context) (string, error) {
			return "ignored", nil
		})
	})

	require.Never(t, func() bool {
		return m.Snapshot().Status != asyncstate.StatusIdle
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestMachineOverlappingRunsLastWriteWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := asyncstate.New[string](asyncstate.WithBuffer[string](8))
	defer m.Close()

	releaseFirst := make(chan struct{})
	releaseSecond := make(chan struct{})

	m.Run(func() *asyncstate.Future[string] {
		return asyncstate.Go(ctx, func(context.Context) (string, error) {
			<-releaseFirst
			return "first", nil
		})
	})
	m.Run(func() *asyncstate.Future[string] {
		return asyncstate.Go(ctx, func(context.Context) (string, error) {
			<-releaseSecond
			return "second", nil
		})
	})

	close(releaseSecond)
	require.Eventually(t, func() bool {
		snap := m.Snapshot()
		return snap.Resolved() && snap.Data == "second"
	}, time.Second, 10*time.Millisecond)

	// The first future settles later and overwrites: no de-duplication.
	close(releaseFirst)
	require.Eventually(t, func() bool {
		snap := m.Snapshot()
		return snap.Resolved() && snap.Data == "first"
	}, time.Second, 10*time.Millisecond)
}

func TestMachineReset(t *testing.T) {
	t.Parallel()

	m := asyncstate.New[int]()
	defer m.Close()

	m.Run(func() *asyncstate.Future[int] { return asyncstate.Resolve(42) })
	require.Eventually(t, func() bool {
		return m.Snapshot().Resolved()
	}, time.Second, 10*time.Millisecond)

	m.Reset()
	snap := m.Snapshot()
	require.True(t, snap.Idle())
	require.Zero(t, snap.Data)
	require.NoError(t, snap.Err)
}

func TestMachineWithInitial(t *testing.T) {
	t.Parallel()

	m := asyncstate.New[string](asyncstate.WithInitial[string]("cached"))
	defer m.Close()

	snap := m.Snapshot()
	require.True(t, snap.Resolved())
	require.Equal(t, "cached", snap.Data)
}

func TestMachineStatusAlwaysOneVariant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	valid := map[asyncstate.Status]bool{
		asyncstate.StatusIdle:     true,
		asyncstate.StatusPending:  true,
		asyncstate.StatusResolved: true,
		asyncstate.StatusRejected: true,
	}

	m := asyncstate.New[int]()
	defer m.Close()

	for i := range 20 {
		m.Run(func() *asyncstate.Future[int] {
			if i%5 == 0 {
				return nil
			}
			return asyncstate.Go(ctx, func(context.Context) (int, error) {
				if i%3 == 0 {
					return 0, errors.New("boom")
				}
				return i, nil
			})
		})

		snap := m.Snapshot()
		require.True(t, valid[snap.Status], "unexpected status %q", snap.Status)
		if snap.Rejected() {
			require.Error(t, snap.Err)
		} else {
			require.NoError(t, snap.Err)
		}
	}
}

func TestMachineWatchClosedOnContextCancel(t *testing.T) {
	t.Parallel()

	m := asyncstate.New[int]()
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	updates := m.Watch(ctx)

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-updates:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestMachineWatchAfterClose(t *testing.T) {
	t.Parallel()

	m := asyncstate.New[int]()
	require.NoError(t, m.Close())

	updates := m.Watch(context.Background())
	_, ok := <-updates
	require.False(t, ok)
}

func TestMachineWatchFanOut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := asyncstate.New[int](asyncstate.WithBuffer[int](8))
	defer m.Close()

	first := m.Watch(ctx)
	second := m.Watch(ctx)

	m.Run(func() *asyncstate.Future[int] { return asyncstate.Resolve(7) })

	for _, updates := range []<-chan asyncstate.Snapshot[int]{first, second} {
		snap := <-updates
		require.Equal(t, asyncstate.StatusPending, snap.Status)
		snap = <-updates
		require.Equal(t, asyncstate.StatusResolved, snap.Status)
		require.Equal(t, 7, snap.Data)
	}
}
