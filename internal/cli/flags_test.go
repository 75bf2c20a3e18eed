package cli

import (
	"testing"
	"time"

	"github.com/optikforge/zmxlink/internal/config"
)

func TestParseRootFlagsDefaults(t *testing.T) {
	opts, rest, err := parseRootFlags([]string{"version"})
	if err != nil {
		t.Fatalf("parseRootFlags: %v", err)
	}
	if opts.network != config.DefaultNetwork {
		t.Errorf("network = %q, want %q", opts.network, config.DefaultNetwork)
	}
	if opts.address != config.DefaultAddress {
		t.Errorf("address = %q, want %q", opts.address, config.DefaultAddress)
	}
	if len(rest) != 1 || rest[0] != "version" {
		t.Errorf("rest = %v, want [version]", rest)
	}
}

func TestParseRootFlagsStopAtCommand(t *testing.T) {
	opts, rest, err := parseRootFlags([]string{"--debug", "report", "--address=ignored"})
	if err != nil {
		t.Fatalf("parseRootFlags: %v", err)
	}
	if !opts.debug {
		t.Error("debug not set")
	}
	if opts.addrSet {
		t.Error("flags after the command must stay with the command")
	}
	if len(rest) != 2 || rest[0] != "report" {
		t.Errorf("rest = %v", rest)
	}
}

func TestParseRootFlagsValues(t *testing.T) {
	opts, _, err := parseRootFlags([]string{
		"--network=unix", "--address=/tmp/zmx.sock", "--timeout=30s", "info",
	})
	if err != nil {
		t.Fatalf("parseRootFlags: %v", err)
	}
	if opts.network != "unix" {
		t.Errorf("network = %q", opts.network)
	}
	if opts.address != "/tmp/zmx.sock" {
		t.Errorf("address = %q", opts.address)
	}
	if opts.timeout != 30*time.Second {
		t.Errorf("timeout = %v", opts.timeout)
	}
}

func TestParseRootFlagsRejectsUnknown(t *testing.T) {
	if _, _, err := parseRootFlags([]string{"--verbose", "info"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if _, _, err := parseRootFlags([]string{"--timeout=soon", "info"}); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestApplyConfigFillsUnsetOptions(t *testing.T) {
	opts, _, err := parseRootFlags([]string{"--address=10.0.0.1:4000", "info"})
	if err != nil {
		t.Fatalf("parseRootFlags: %v", err)
	}
	cfg := &config.Config{
		Host:  config.HostConfig{Network: "unix", Address: "/run/zmx.sock", Timeout: "10s"},
		Debug: true,
	}
	opts.applyConfig(cfg)

	if opts.address != "10.0.0.1:4000" {
		t.Errorf("flag address overridden: %q", opts.address)
	}
	if opts.network != "unix" {
		t.Errorf("network = %q, want config value", opts.network)
	}
	if opts.timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", opts.timeout)
	}
	if !opts.debug {
		t.Error("debug should come from config")
	}
}

func TestHelpRequested(t *testing.T) {
	opts, _, err := parseRootFlags([]string{"-h", "surfaces"})
	if err != nil {
		t.Fatalf("parseRootFlags: %v", err)
	}
	if !opts.help {
		t.Error("help not set")
	}
}
