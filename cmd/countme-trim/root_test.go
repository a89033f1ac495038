package main

import (
	"strconv"
	"testing"

	"mirrorwatch/countme/pkg/trim"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"trim":     false,
		"schedule": false,
		"version":  false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestTrimFlagDefaults(t *testing.T) {
	flags := trimCmd.Flags()

	if f := flags.Lookup("read-write"); f == nil || f.DefValue != "false" {
		t.Errorf("--read-write default = %v, want false", f)
	}
	if f := flags.Lookup("oldest-week"); f == nil || f.DefValue != "false" {
		t.Errorf("--oldest-week default = %v, want false", f)
	}
	if f := flags.Lookup("keep"); f == nil || f.DefValue != strconv.Itoa(trim.DefaultKeepWeeks) {
		t.Errorf("--keep default = %v, want %d", f, trim.DefaultKeepWeeks)
	}
	if f := flags.Lookup("safety-week"); f == nil || f.DefValue != "false" {
		t.Errorf("--safety-week default = %v, want false", f)
	}
}

func TestRootVersionSet(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command has no version, --version would print nothing")
	}
}
