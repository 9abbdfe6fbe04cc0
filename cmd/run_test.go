package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mergington/testrun/lib"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "version"} {
		if !names[want] {
			t.Errorf("Expected a %q command to be registered", want)
		}
	}
}

func TestRunFlagDefaults(t *testing.T) {
	flags := runCmd.PersistentFlags()

	tests := []struct {
		name     string
		expected string
	}{
		{"config", lib.DefaultConfigPath},
		{"timeout", "5m0s"},
		{"verbose", "true"},
		{"json", "false"},
		{"debug", "false"},
	}

	for _, tt := range tests {
		flag := flags.Lookup(tt.name)
		if flag == nil {
			t.Errorf("Expected a --%s flag", tt.name)
			continue
		}
		if flag.DefValue != tt.expected {
			t.Errorf("--%s default = %q, expected %q", tt.name, flag.DefValue, tt.expected)
		}
	}
}

func TestEffectiveTimeout(t *testing.T) {
	tests := []struct {
		name          string
		flagChanged   bool
		flagTimeout   time.Duration
		configTimeout time.Duration
		expected      time.Duration
	}{
		{"flag wins when set", true, 10 * time.Second, 90 * time.Second, 10 * time.Second},
		{"config wins over default", false, lib.DefaultTimeout, 90 * time.Second, 90 * time.Second},
		{"default when nothing set", false, lib.DefaultTimeout, 0, lib.DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := effectiveTimeout(tt.flagChanged, tt.flagTimeout, tt.configTimeout)
			if got != tt.expected {
				t.Errorf("\nExpected: %v\nHave: %v\n", tt.expected, got)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	version = "1.2.3"
	out := &bytes.Buffer{}
	versionCmd.SetOut(out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	if got := out.String(); !strings.Contains(got, "1.2.3") {
		t.Errorf("\nExpected version output to contain %q, have:\n%q\n", "1.2.3", got)
	}
}
