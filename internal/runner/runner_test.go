package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAll(t *testing.T) {
	r := NewRegistry("generator")
	r.Add("pokemon", func() error { return nil })
	r.Add("moves", func() error { return nil })

	jobs, err := r.Select([]string{"all"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "pokemon", jobs[0].Name)
	assert.Equal(t, "moves", jobs[1].Name)
}

func TestSelectRejectsUnknownNamesBeforeRunning(t *testing.T) {
	ran := false
	r := NewRegistry("parser")
	r.Add("locations", func() error { ran = true; return nil })

	_, err := r.Select([]string{"locations", "typo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo")
	assert.Contains(t, err.Error(), "locations")
	assert.False(t, ran)
}

func TestNamesReturnsRegistrationOrder(t *testing.T) {
	r := NewRegistry("generator")
	r.Add("zeta", func() error { return nil })
	r.Add("alpha", func() error { return nil })
	assert.Equal(t, []string{"zeta", "alpha"}, r.Names())
}

func TestExecuteCollectsFailuresWithoutStopping(t *testing.T) {
	boom := errors.New("boom")
	var mu sync.Mutex
	var ran []string

	mark := func(name string, err error) func() error {
		return func() error {
			mu.Lock()
			ran = append(ran, name)
			mu.Unlock()
			return err
		}
	}

	jobs := []Job{
		{Name: "ok-1", Run: mark("ok-1", nil)},
		{Name: "bad", Run: mark("bad", boom)},
		{Name: "ok-2", Run: mark("ok-2", nil)},
	}

	failures := Execute(context.Background(), 2, jobs)
	require.Len(t, failures, 1)
	assert.Equal(t, "bad", failures[0].Name)
	assert.ErrorIs(t, failures[0].Err, boom)
	assert.Len(t, ran, 3, "a failed component does not block the others")
}

func TestExecuteSingleWorkerRunsInOrder(t *testing.T) {
	var ran []string
	add := func(name string) Job {
		return Job{Name: name, Run: func() error {
			ran = append(ran, name)
			return nil
		}}
	}

	failures := Execute(context.Background(), 1, []Job{add("a"), add("b"), add("c")})
	assert.Empty(t, failures)
	assert.Equal(t, []string{"a", "b", "c"}, ran)
}

func TestExecuteClampsWorkerCount(t *testing.T) {
	failures := Execute(context.Background(), 0, []Job{{Name: "job", Run: func() error { return nil }}})
	assert.Empty(t, failures)
}
