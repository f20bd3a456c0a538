package db

import (
	"context"
	"database/sql"
)

type TxFn func(ctx context.Context, tx *sql.Tx) error

type task struct {
	ctx context.Context
	fn  TxFn
	ch  chan error
}

// Worker serializes all write transactions onto a single goroutine. With
// SQLite limited to one open connection, funneling writes through one place
// keeps readers from ever queueing behind a half-built transaction.
type Worker struct {
	db    *sql.DB
	tasks chan task
	done  chan struct{}
}

func NewWorker(db *sql.DB) *Worker {
	w := &Worker{
		db:    db,
		tasks: make(chan task, 256),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) Close() {
	close(w.tasks)
	<-w.done
}

// Do runs fn inside a transaction on the writer goroutine and returns its
// result. If the caller's context expires while the task is queued or
// executing, Do returns early; the transaction itself still runs to
// completion and its result lands in the buffered channel, discarded.
func (w *Worker) Do(ctx context.Context, fn TxFn) error {
	ch := make(chan error, 1)
	t := task{ctx: ctx, fn: fn, ch: ch}

	select {
	case w.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer close(w.done)

	for t := range w.tasks {
		tx, err := w.db.BeginTx(t.ctx, nil)
		if err != nil {
			t.ch <- err
			continue
		}

		if err := t.fn(t.ctx, tx); err != nil {
			_ = tx.Rollback()
			t.ch <- err
			continue
		}

		t.ch <- tx.Commit()
	}
}
