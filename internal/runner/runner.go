// Package runner executes registered parsers and generators. Components
// are independent batch jobs over disjoint inputs and outputs, so the
// runner may run several at once; all state shared within one component
// stays confined to that component's run.
package runner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Job is one runnable component.
type Job struct {
	Name string
	Run  func() error
}

// Failure pairs a component name with the error that stopped it.
type Failure struct {
	Name string
	Err  error
}

// Registry holds the components available to the CLI, keyed by name.
type Registry struct {
	kind  string
	order []string
	jobs  map[string]Job
}

// NewRegistry creates a registry for one component kind ("parser",
// "generator"); the kind only shows up in logs and error text.
func NewRegistry(kind string) *Registry {
	return &Registry{kind: kind, jobs: make(map[string]Job)}
}

// Add registers a component under a unique name.
func (r *Registry) Add(name string, run func() error) {
	if _, exists := r.jobs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.jobs[name] = Job{Name: name, Run: run}
}

// Names returns the registered component names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Select resolves requested names to jobs. The single name "all" selects
// everything; unknown names are rejected before anything runs.
func (r *Registry) Select(names []string) ([]Job, error) {
	if len(names) == 1 && names[0] == "all" {
		names = r.order
	}

	var unknown []string
	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		job, ok := r.jobs[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		jobs = append(jobs, job)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown %ss: %s (available: %s)",
			r.kind, strings.Join(unknown, ", "), strings.Join(r.order, ", "))
	}
	return jobs, nil
}

// Execute runs jobs with at most workers running at a time and returns
// the failures. A failed component never blocks the others; ctx
// cancellation stops handing out new jobs.
func Execute(ctx context.Context, workers int, jobs []Job) []Failure {
	if workers < 1 {
		workers = 1
	}

	results := make([]error, len(jobs))
	jobCh := make(chan int, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-jobCh:
					if !ok {
						return
					}
					job := jobs[idx]
					log.Info().Str("component", job.Name).Msg("Running")
					if err := job.Run(); err != nil {
						results[idx] = err
						log.Error().Err(err).Str("component", job.Name).Msg("Component failed")
					} else {
						log.Info().Str("component", job.Name).Msg("Completed")
					}
				}
			}
		}()
	}

	for i := range jobs {
		select {
		case <-ctx.Done():
		case jobCh <- i:
		}
	}
	close(jobCh)
	wg.Wait()

	var failures []Failure
	for i, err := range results {
		if err != nil {
			failures = append(failures, Failure{Name: jobs[i].Name, Err: err})
		}
	}
	return failures
}
