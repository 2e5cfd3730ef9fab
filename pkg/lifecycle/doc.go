// Package lifecycle defines the phase scripts driving the registration
// simulator.
//
// A Script is an ordered list of Steps, one per lifecycle phase. Each
// step carries the phase tag, the message emitted with it, and the
// delay before the following phase. Scripts are grouped in a Registry
// keyed by operation Kind:
//
//	reg := lifecycle.DefaultRegistry()
//	script, err := reg.ScriptFor(lifecycle.KindServiceRegistration)
//	if err != nil {
//	    // unsupported kind
//	}
//	for _, step := range script.Steps {
//	    fmt.Println(step.Phase, step.Message)
//	}
//
// The registry is immutable after construction and safe for unbounded
// concurrent reads. Scripts of arbitrary length are supported; the two
// reference scripts cover plain service registration (6 phases) and
// module registration (10 phases).
package lifecycle
