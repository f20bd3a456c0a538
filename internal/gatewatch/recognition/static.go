package recognition

import (
	"context"
	"sync"
)

// StaticEngine returns scripted results in order, repeating the last one once
// the script runs out. Intended for tests and dev environments.
type StaticEngine struct {
	mu     sync.Mutex
	script []Scripted
	next   int
	calls  int
}

// Scripted is one pre-recorded engine answer.
type Scripted struct {
	Result Result
	Err    error
}

func NewStaticEngine(script ...Scripted) *StaticEngine {
	return &StaticEngine{script: script}
}

func (e *StaticEngine) Detect(_ context.Context, _ []byte) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if len(e.script) == 0 {
		return Result{Matched: false}, nil
	}

	s := e.script[e.next]
	if e.next < len(e.script)-1 {
		e.next++
	}
	return s.Result, s.Err
}

// Calls returns how many detections have been requested. Test-only helper.
func (e *StaticEngine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}
