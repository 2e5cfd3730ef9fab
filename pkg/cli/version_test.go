package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "regsim") {
		t.Errorf("expected output to name the binary, got %q", output)
	}
	if !strings.Contains(output, Version) {
		t.Errorf("expected output to contain version %q, got %q", Version, output)
	}
}

func TestServeFlagsRegistered(t *testing.T) {
	for _, name := range []string{"config", "port", "reflection", "delay-scale", "log-level", "log-format"} {
		if serveCmd.Flags().Lookup(name) == nil {
			t.Errorf("serve command missing flag --%s", name)
		}
	}
}
