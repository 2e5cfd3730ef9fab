package lifecycle

import "time"

// Kind identifies which registration lifecycle is being simulated.
// It selects the phase script to run and is fixed for the duration
// of a call.
type Kind string

// Supported operation kinds.
const (
	// KindServiceRegistration simulates a plain service registering
	// itself into Consul.
	KindServiceRegistration Kind = "service_registration"

	// KindModuleRegistration simulates a processing module registering,
	// including schema publication to Apicurio.
	KindModuleRegistration Kind = "module_registration"
)

// Phase is one lifecycle stage of a simulated registration. The set of
// phases is closed and mirrors the RegistrationPhase enum in the proto
// schema; values are the enum value names.
type Phase string

// Lifecycle phases.
const (
	PhaseStarted               Phase = "STARTED"
	PhaseValidated             Phase = "VALIDATED"
	PhaseMetadataRetrieved     Phase = "METADATA_RETRIEVED"
	PhaseSchemaValidated       Phase = "SCHEMA_VALIDATED"
	PhaseIOFormatsVerified     Phase = "IO_FORMATS_VERIFIED"
	PhaseApicurioRegistered    Phase = "APICURIO_REGISTERED"
	PhaseConsulRegistered      Phase = "CONSUL_REGISTERED"
	PhaseHealthCheckConfigured Phase = "HEALTH_CHECK_CONFIGURED"
	PhaseConsulHealthy         Phase = "CONSUL_HEALTHY"
	PhaseCompleted             Phase = "COMPLETED"
)

// Step describes one phase of a script: the phase tag, the
// human-readable message emitted with it, and the delay applied after
// this phase is emitted, before the next one. The delay of the final
// step is never waited on.
type Step struct {
	Phase   Phase
	Message string
	Delay   time.Duration
}

// Script is the ordered, finite sequence of steps for one operation
// kind. Scripts are defined at startup and never mutated; they are safe
// for unbounded concurrent reads.
type Script struct {
	Kind  Kind
	Steps []Step
}

// Len returns the number of steps in the script.
func (s Script) Len() int {
	return len(s.Steps)
}

// Duration returns the nominal wall-clock duration of an uninterrupted
// run: the sum of all inter-phase delays. The last step's delay is
// excluded because emission completes immediately after it.
func (s Script) Duration() time.Duration {
	var total time.Duration
	for i, step := range s.Steps {
		if i == len(s.Steps)-1 {
			break
		}
		total += step.Delay
	}
	return total
}

// serviceScript is the 6-phase script for plain service registration.
func serviceScript() Script {
	return Script{
		Kind: KindServiceRegistration,
		Steps: []Step{
			{PhaseStarted, "Registration started", 300 * time.Millisecond},
			{PhaseValidated, "Registration request validated", 400 * time.Millisecond},
			{PhaseConsulRegistered, "Service registered in Consul", 500 * time.Millisecond},
			{PhaseHealthCheckConfigured, "Consul health check configured", 700 * time.Millisecond},
			{PhaseConsulHealthy, "Consul reports service healthy", 400 * time.Millisecond},
			{PhaseCompleted, "Registration completed", 0},
		},
	}
}

// moduleScript is the 10-phase script for module registration, which
// adds metadata retrieval, schema validation and Apicurio publication
// between the common registration phases.
func moduleScript() Script {
	return Script{
		Kind: KindModuleRegistration,
		Steps: []Step{
			{PhaseStarted, "Registration started", 300 * time.Millisecond},
			{PhaseValidated, "Registration request validated", 300 * time.Millisecond},
			{PhaseMetadataRetrieved, "Module metadata retrieved", 400 * time.Millisecond},
			{PhaseSchemaValidated, "Module schema validated", 400 * time.Millisecond},
			{PhaseIOFormatsVerified, "Input and output formats verified", 300 * time.Millisecond},
			{PhaseApicurioRegistered, "Schema published to Apicurio", 500 * time.Millisecond},
			{PhaseConsulRegistered, "Module registered in Consul", 500 * time.Millisecond},
			{PhaseHealthCheckConfigured, "Consul health check configured", 600 * time.Millisecond},
			{PhaseConsulHealthy, "Consul reports module healthy", 400 * time.Millisecond},
			{PhaseCompleted, "Registration completed", 0},
		},
	}
}
