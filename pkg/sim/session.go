package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getregsim/regsim/pkg/lifecycle"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// streamSession drives one registration simulation over one server
// stream. It is owned exclusively by the handling call and discarded
// when the call returns; no state is shared between sessions.
type streamSession struct {
	kind    lifecycle.Kind
	script  lifecycle.Script
	entity  string
	event   protoreflect.MessageDescriptor
	stream  grpc.ServerStream
	scale   float64
	closing <-chan struct{}
	log     *slog.Logger
}

// run emits the script's events in order, waiting the configured delay
// between phases, then completes the stream. A client cancellation ends
// emission silently; a server shutdown mid-delay terminates the stream
// with an Internal status so the caller never sees an unexplained
// truncation.
func (ss *streamSession) run(ctx context.Context) error {
	last := ss.script.Len() - 1

	for i, step := range ss.script.Steps {
		event, err := ss.newEvent(step)
		if err != nil {
			return status.Errorf(codes.Internal, "failed to build event: %v", err)
		}

		if err := ss.stream.SendMsg(event); err != nil {
			// The client is gone; there is nobody left to report to.
			ss.log.Debug("stream send failed", "phase", string(step.Phase), "error", err)
			return err
		}

		if i == last {
			break
		}

		if err := ss.wait(ctx, scaleDelay(step.Delay, ss.scale)); err != nil {
			return err
		}
	}

	ss.log.Debug("registration simulation completed", "events", ss.script.Len())
	return nil
}

// wait suspends between phases. It returns early when the client
// cancels or the server begins shutting down.
func (ss *streamSession) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		// Still observe cancellation between back-to-back emissions.
		select {
		case <-ctx.Done():
			ss.log.Debug("client cancelled registration stream")
			return ctx.Err()
		case <-ss.closing:
			return errInterrupted()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		ss.log.Debug("client cancelled registration stream")
		return ctx.Err()
	case <-ss.closing:
		ss.log.Debug("registration stream interrupted by shutdown")
		return errInterrupted()
	}
}

// newEvent builds the lifecycle event for one step. The timestamp is
// taken at emission time, not at script definition time.
func (ss *streamSession) newEvent(step lifecycle.Step) (interface{}, error) {
	return buildMessage(ss.event, map[string]interface{}{
		"phase":      string(step.Phase),
		"message":    fmt.Sprintf("%s: %s", step.Message, ss.entity),
		"occurredAt": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// errInterrupted is the status surfaced when emission is cut off by the
// server, as opposed to the caller hanging up. A half-delivered script
// must look like a failed registration, never like a quiet success.
func errInterrupted() error {
	return status.Error(codes.Internal, "registration interrupted: server shutting down")
}

// scaleDelay applies the configured delay compression.
func scaleDelay(d time.Duration, scale float64) time.Duration {
	if scale == 1.0 || d <= 0 {
		return d
	}
	return time.Duration(float64(d) * scale)
}
