// Package sim implements the streaming registration lifecycle simulator.
//
// The simulator stands in for the platform registry during integration
// tests. Declarative request/response mocking cannot express a call
// that delivers multiple time-spaced messages, so the registration RPCs
// are implemented by hand here: each server-streaming call runs a fixed
// phase script for its operation kind, emitting one timestamped event
// per phase with an artificial delay in between, then completes the
// stream.
//
//	cfg := sim.DefaultConfig()
//	cfg.Port = 0 // OS-assigned
//
//	srv, err := sim.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Stop(ctx, 5*time.Second)
//
// The wire surface is compiled at startup from the embedded
// registry.proto and served through dynamic messages; no generated
// code is involved. Two discovery calls (ListServices, ListModules)
// answer immediately from a fixed in-memory snapshot.
//
// # Termination semantics
//
// An uninterrupted call always receives the full script in order,
// followed by normal stream completion. A caller that cancels stops
// receiving events promptly and no error is surfaced. If the server
// shuts down mid-emission, the in-flight stream is terminated with an
// Internal status, so a truncated sequence is always accompanied by an
// explicit failure signal. Concurrent calls are fully isolated; each
// runs its own session with no shared mutable state.
package sim
