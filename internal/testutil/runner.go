// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/petabyte-project/pointings/internal/exec"
)

// Call records one invocation made through a FakeRunner.
type Call struct {
	Name string
	Args []string
	Dir  string
}

// FakeRunner is a scripted CommandRunner. Results are looked up first by
// "name arg1 arg2 ...", then by bare name, so tests can script per-file
// outputs or a single catch-all per tool.
type FakeRunner struct {
	mu      sync.Mutex
	Results map[string]exec.Result
	Errs    map[string]error
	Calls   []Call
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Results: map[string]exec.Result{},
		Errs:    map[string]error{},
	}
}

// Script registers a result for the exact invocation "name args...".
func (f *FakeRunner) Script(key string, result exec.Result) {
	f.Results[key] = result
}

// ScriptErr registers a launch error for the invocation key.
func (f *FakeRunner) ScriptErr(key string, err error) {
	f.Errs[key] = err
}

// Run implements exec.CommandRunner.
func (f *FakeRunner) Run(_ context.Context, name string, args []string, opts exec.RunOpts) (exec.Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, Call{Name: name, Args: append([]string{}, args...), Dir: opts.Dir})
	f.mu.Unlock()

	full := name
	if len(args) > 0 {
		full = name + " " + strings.Join(args, " ")
	}
	for _, key := range []string{full, name} {
		if err, ok := f.Errs[key]; ok {
			return exec.Result{}, err
		}
		if result, ok := f.Results[key]; ok {
			return result, nil
		}
	}
	return exec.Result{}, fmt.Errorf("fake runner: no script for %q", full)
}

// CallsFor returns the recorded calls for the given tool name.
func (f *FakeRunner) CallsFor(name string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var calls []Call
	for _, c := range f.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}
