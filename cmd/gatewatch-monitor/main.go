// Command gatewatch-monitor is the gate-side capture client. It replays
// frames from a directory (standing in for a camera feed), submits them to a
// gatewatch server, and takes capture commands on stdin:
//
//	auto                 arm periodic capture
//	manual               arm explicit-trigger mode
//	disarm               return to plain streaming
//	capture              hold one frame for review (manual mode)
//	analyze              submit the frozen frame
//	discard              drop the frozen frame
//	state                print the current capture state
//	quit                 stop and exit
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatewatch/server/internal/capture"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "base URL of the gatewatch server")
		framesDir = flag.String("frames", "./frames", "directory of image files to replay as camera frames")
		interval  = flag.Duration("interval", 3*time.Second, "delay between automatic captures")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "gatewatch-monitor ", log.LstdFlags|log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := capture.NewDirSource(*framesDir)
	submitter := capture.NewHTTPSubmitter(*serverURL, nil)

	sched := capture.NewScheduler(source, submitter, capture.Config{
		Interval:   *interval,
		OnDecision: printVerdict,
		OnError: func(err error) {
			fmt.Printf("! %v\n", err)
		},
	}, logger)

	if err := sched.Start(ctx); err != nil {
		logger.Fatalf("start capture: %v", err)
	}
	defer sched.Stop()

	fmt.Printf("streaming from %s to %s; type 'auto' to arm capture\n", *framesDir, *serverURL)

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if quit := dispatch(sched, line); quit {
				return
			}
		}
	}
}

func dispatch(sched *capture.Scheduler, line string) (quit bool) {
	var err error

	switch line {
	case "":
	case "auto":
		err = sched.ArmAuto()
	case "manual":
		err = sched.ArmManual()
	case "disarm":
		err = sched.Disarm()
	case "capture":
		err = sched.Capture()
	case "analyze":
		err = sched.Analyze()
	case "discard":
		err = sched.Discard()
	case "state":
		fmt.Printf("state: %s\n", sched.State())
	case "quit", "exit":
		return true
	default:
		fmt.Printf("unknown command %q\n", line)
	}

	if err != nil {
		fmt.Printf("! %v\n", err)
	}
	return false
}

func printVerdict(d types.DetectResponse) {
	if !d.Matched {
		fmt.Printf("no plate detected (%s)\n", d.FailureReason)
		return
	}
	fmt.Printf("%s  %s  confidence=%.2f  record=%d\n", d.Plate, d.Status, d.Confidence, d.RecordID)
}
