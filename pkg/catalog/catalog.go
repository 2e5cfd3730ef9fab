// Package catalog holds the static discovery snapshot served by the
// simulator's listing endpoints. The snapshot is built once at startup,
// never mutated, and shared across calls without locking.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// HealthPassing is the health value reported for every entry in the
// default snapshot. The value mirrors Consul's check status strings.
const HealthPassing = "passing"

// ServiceEntry describes one registered service in the snapshot.
type ServiceEntry struct {
	Name    string
	ID      string
	Host    string
	Port    int
	Version string
	Health  string
}

// ModuleEntry describes one registered processing module in the
// snapshot, including its input and output data formats.
type ModuleEntry struct {
	Name         string
	ID           string
	Host         string
	Port         int
	Version      string
	InputFormat  string
	OutputFormat string
	Health       string
}

// Snapshot is the fixed in-memory data set returned by the listing
// calls, with the time it was taken.
type Snapshot struct {
	Services []ServiceEntry
	Modules  []ModuleEntry
	TakenAt  time.Time
}

// Default builds the reference snapshot. Entry IDs are minted fresh on
// every process start; nothing is persisted.
func Default() *Snapshot {
	return &Snapshot{
		Services: []ServiceEntry{
			{
				Name:    "ingest-gateway",
				ID:      uuid.NewString(),
				Host:    "ingest-gateway.platform.svc",
				Port:    8080,
				Version: "1.4.2",
				Health:  HealthPassing,
			},
			{
				Name:    "metadata-store",
				ID:      uuid.NewString(),
				Host:    "metadata-store.platform.svc",
				Port:    8081,
				Version: "2.0.0",
				Health:  HealthPassing,
			},
			{
				Name:    "notification-hub",
				ID:      uuid.NewString(),
				Host:    "notification-hub.platform.svc",
				Port:    8082,
				Version: "0.9.7",
				Health:  HealthPassing,
			},
		},
		Modules: []ModuleEntry{
			{
				Name:         "avro-normalizer",
				ID:           uuid.NewString(),
				Host:         "avro-normalizer.modules.svc",
				Port:         9090,
				Version:      "1.1.0",
				InputFormat:  "avro",
				OutputFormat: "avro",
				Health:       HealthPassing,
			},
			{
				Name:         "json-enricher",
				ID:           uuid.NewString(),
				Host:         "json-enricher.modules.svc",
				Port:         9091,
				Version:      "3.2.1",
				InputFormat:  "json",
				OutputFormat: "avro",
				Health:       HealthPassing,
			},
		},
		TakenAt: time.Now().UTC(),
	}
}
