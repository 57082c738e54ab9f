package session

import (
	"context"

	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/questions"
)

// Job is slow work handed to the caller. Run may execute on any goroutine
// and must not touch the orchestrator; its Completion is applied back on the
// owning goroutine with Complete.
type Job struct {
	Name string
	Run  func(ctx context.Context) Completion
}

// Completion is the result of a Job.
type Completion interface {
	apply(o *Orchestrator) error
}

type questionsLoaded struct {
	topic player.Topic
	need  int
	batch questions.Batch
}

type lightningLoaded struct {
	level int
	batch questions.Batch
}

type riddleLoaded struct {
	level    int
	question player.Question
	err      error
}

type hintLoaded struct {
	text string
	err  error
}

type explanationLoaded struct {
	text string
	err  error
}

type creativeLoaded struct {
	idea     string
	question player.Question
	err      error
}

type analysisLoaded struct {
	text string
	err  error
}

// start registers an outstanding job.
func (o *Orchestrator) start(name string, run func(ctx context.Context) Completion) *Job {
	o.pending++
	o.logger.Debug("job started", "job", name)
	return &Job{Name: name, Run: run}
}

// Complete applies a finished job. It returns a user-presentable error when
// the job's outcome needs one; see Message.
func (o *Orchestrator) Complete(c Completion) error {
	if c == nil {
		return nil
	}
	if o.pending > 0 {
		o.pending--
	}
	return c.apply(o)
}
