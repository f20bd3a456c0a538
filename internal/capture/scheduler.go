package capture

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gatewatch/server/internal/gatewatch/types"
)

// State is the scheduler's capture mode. Transitions happen only inside the
// scheduler's run loop, so reads through State() always see a consistent
// value.
type State string

const (
	// StateIdle means the frame source is closed and nothing is captured.
	StateIdle State = "IDLE"

	// StateStreaming means the source is open but no submission policy is
	// armed.
	StateStreaming State = "STREAMING"

	// StateArmedAuto means a ticker drives periodic capture-and-submit.
	StateArmedAuto State = "ARMED_AUTO"

	// StateArmedManual means frames are submitted only on explicit capture
	// and analyze actions.
	StateArmedManual State = "ARMED_MANUAL"

	// StateFrozen means one captured frame is held for operator review
	// until Analyze or Discard.
	StateFrozen State = "FROZEN"
)

var (
	ErrNotRunning     = errors.New("scheduler is not running")
	ErrAlreadyRunning = errors.New("scheduler is already running")
	ErrBusy           = errors.New("a submission is already in flight")
	ErrNotManual      = errors.New("capture requires manual arm mode")
	ErrNotFrozen      = errors.New("no frozen frame to act on")
	ErrFrozen         = errors.New("a frozen frame is pending review")
)

// FrameSource produces camera frames. Open is called once per scheduler run
// and Close once on stop; Grab is only called between the two.
type FrameSource interface {
	Open(ctx context.Context) error
	Grab(ctx context.Context) (types.Frame, error)
	Close() error
}

// Submitter sends one frame to the detection boundary and returns the
// server's verdict.
type Submitter interface {
	Submit(ctx context.Context, frame types.Frame) (types.DetectResponse, error)
}

// Config tunes a Scheduler. Zero values pick the defaults.
type Config struct {
	// Interval between automatic captures. Defaults to 3s.
	Interval time.Duration

	// OnDecision is invoked from the run loop for every completed
	// submission. Optional; keep it fast.
	OnDecision func(types.DetectResponse)

	// OnError is invoked from the run loop when a grab or submission
	// fails. Optional.
	OnError func(error)
}

// Scheduler drives a FrameSource through capture states and feeds frames to
// a Submitter. All state lives in a single run-loop goroutine; the exported
// methods send commands to it and wait for the reply, so callers never race
// the loop. At most one submission is in flight at a time: automatic ticks
// that land while one is outstanding are skipped, and a manual Analyze
// while busy is rejected with ErrBusy.
//
// Start, Stop, and State track the run with an unguarded flag, so a single
// controlling goroutine must own the scheduler's lifecycle. The command
// methods themselves are serialized by the loop.
type Scheduler struct {
	source    FrameSource
	submitter Submitter
	logger    *log.Logger
	interval  time.Duration

	onDecision func(types.DetectResponse)
	onError    func(error)

	commands chan command
	done     chan struct{}
	running  bool
}

type cmdKind int

const (
	cmdArmAuto cmdKind = iota
	cmdArmManual
	cmdDisarm
	cmdCapture
	cmdAnalyze
	cmdDiscard
	cmdState
	cmdStop
)

type command struct {
	kind  cmdKind
	reply chan cmdReply
}

type cmdReply struct {
	state State
	err   error
}

// submission carries one completed engine round trip back into the loop.
// gen tags the scheduler generation that started it; results from a
// previous generation are dropped unseen.
type submission struct {
	gen  uint64
	id   string
	resp types.DetectResponse
	err  error
}

func NewScheduler(source FrameSource, submitter Submitter, cfg Config, logger *log.Logger) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 3 * time.Second
	}

	return &Scheduler{
		source:     source,
		submitter:  submitter,
		logger:     logger,
		interval:   interval,
		onDecision: cfg.OnDecision,
		onError:    cfg.OnError,
	}
}

// Start opens the frame source and launches the run loop in streaming
// state. A source failure stays idle and is returned to the caller. The ctx
// governs the whole run: when it is cancelled the loop shuts down as if
// Stop had been called.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.running {
		return ErrAlreadyRunning
	}
	if err := s.source.Open(ctx); err != nil {
		return err
	}

	s.commands = make(chan command)
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx)
	return nil
}

// Stop shuts the run loop down and closes the source. Valid from every
// state and idempotent. An in-flight submission may still complete but its
// verdict is never reported.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.send(cmdStop)
	<-s.done
	s.running = false
}

// ArmAuto arms periodic capture. Rejected while a frozen frame is pending
// review.
func (s *Scheduler) ArmAuto() error { return s.send(cmdArmAuto).err }

// ArmManual switches to explicit-trigger mode. The next auto tick simply
// never fires; a capture already in flight still completes and reports.
func (s *Scheduler) ArmManual() error { return s.send(cmdArmManual).err }

// Disarm returns to plain streaming.
func (s *Scheduler) Disarm() error { return s.send(cmdDisarm).err }

// Capture snapshots one frame and holds it for review without submitting.
// Only valid in manual arm mode.
func (s *Scheduler) Capture() error { return s.send(cmdCapture).err }

// Analyze submits the frozen frame. When its verdict lands the scheduler
// returns to manual arm mode.
func (s *Scheduler) Analyze() error { return s.send(cmdAnalyze).err }

// Discard drops the frozen frame without submitting and returns to manual
// arm mode. A verdict still in flight for that frame is dropped when it
// arrives.
func (s *Scheduler) Discard() error { return s.send(cmdDiscard).err }

// State reports the current capture state. StateIdle when not running.
func (s *Scheduler) State() State {
	if !s.running {
		return StateIdle
	}
	return s.send(cmdState).state
}

func (s *Scheduler) send(kind cmdKind) cmdReply {
	if !s.running {
		return cmdReply{state: StateIdle, err: ErrNotRunning}
	}
	cmd := command{kind: kind, reply: make(chan cmdReply, 1)}
	select {
	case s.commands <- cmd:
		return <-cmd.reply
	case <-s.done:
		return cmdReply{state: StateIdle, err: ErrNotRunning}
	}
}

type loopState struct {
	state    State
	frozen   types.Frame
	inFlight bool

	// analyzing marks an in-flight submission of the frozen frame; when its
	// result lands the loop transitions Frozen -> ArmedManual.
	analyzing bool

	gen uint64
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)
	defer func() {
		if err := s.source.Close(); err != nil {
			s.logger.Printf("capture: close source: %v", err)
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	results := make(chan submission, 1)
	ls := loopState{state: StateStreaming}

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if ls.state != StateArmedAuto || ls.inFlight {
				continue
			}
			s.autoCapture(ctx, &ls, results)

		case res := <-results:
			// Exactly one request is ever outstanding, so any arriving
			// result means the wire is clear again.
			ls.inFlight = false
			if res.gen != ls.gen {
				continue // stale result from before a discard
			}
			if ls.analyzing {
				ls.analyzing = false
				ls.frozen = types.Frame{}
				ls.state = StateArmedManual
			}
			s.report(res)

		case cmd := <-s.commands:
			if stop := s.handle(ctx, cmd, &ls, results); stop {
				return
			}
		}
	}
}

func (s *Scheduler) handle(ctx context.Context, cmd command, ls *loopState, results chan submission) (stop bool) {
	var err error

	switch cmd.kind {
	case cmdArmAuto:
		if ls.state == StateFrozen {
			err = ErrFrozen
		} else {
			ls.state = StateArmedAuto
		}

	case cmdArmManual:
		if ls.state == StateFrozen {
			err = ErrFrozen
		} else {
			ls.state = StateArmedManual
		}

	case cmdDisarm:
		if ls.state == StateFrozen {
			err = ErrFrozen
		} else {
			ls.state = StateStreaming
		}

	case cmdCapture:
		switch {
		case ls.state == StateFrozen:
			err = ErrFrozen
		case ls.state != StateArmedManual:
			err = ErrNotManual
		case ls.inFlight:
			err = ErrBusy
		default:
			var frame types.Frame
			frame, err = s.source.Grab(ctx)
			if err == nil {
				ls.frozen = frame
				ls.state = StateFrozen
			}
		}

	case cmdAnalyze:
		switch {
		case ls.state != StateFrozen:
			err = ErrNotFrozen
		case ls.inFlight:
			err = ErrBusy
		default:
			ls.analyzing = true
			s.submit(ctx, ls, ls.frozen, results)
		}

	case cmdDiscard:
		if ls.state != StateFrozen {
			err = ErrNotFrozen
		} else {
			if ls.inFlight {
				// Invalidate the pending analyze; its result arrives
				// tagged with the old generation and is dropped. inFlight
				// stays set until that result drains, so the one-request
				// load bound on the gateway holds across the discard.
				ls.gen++
				ls.analyzing = false
			}
			ls.frozen = types.Frame{}
			ls.state = StateArmedManual
		}

	case cmdState:
		// reply below carries the state

	case cmdStop:
		stop = true
	}

	cmd.reply <- cmdReply{state: ls.state, err: err}
	return stop
}

// autoCapture grabs a frame and submits it; grab failures are reported and
// do not mark the loop busy.
func (s *Scheduler) autoCapture(ctx context.Context, ls *loopState, results chan submission) {
	frame, err := s.source.Grab(ctx)
	if err != nil {
		s.logger.Printf("capture: grab: %v", err)
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	s.submit(ctx, ls, frame, results)
}

// submit launches one submission goroutine. The loop stays responsive while
// the request runs; inFlight blocks a second submission until the result
// lands.
func (s *Scheduler) submit(ctx context.Context, ls *loopState, frame types.Frame, results chan submission) {
	ls.inFlight = true
	gen := ls.gen
	id := uuid.NewString()

	go func() {
		resp, err := s.submitter.Submit(ctx, frame)
		select {
		case results <- submission{gen: gen, id: id, resp: resp, err: err}:
		case <-s.done:
			// Loop already gone; nobody wants this verdict.
		}
	}()
}

func (s *Scheduler) report(res submission) {
	if res.err != nil {
		s.logger.Printf("capture: submit id=%s: %v", res.id, res.err)
		if s.onError != nil {
			s.onError(res.err)
		}
		return
	}

	s.logger.Printf("capture: submit id=%s matched=%t plate=%s status=%s",
		res.id, res.resp.Matched, res.resp.Plate, res.resp.Status)
	if s.onDecision != nil {
		s.onDecision(res.resp)
	}
}
