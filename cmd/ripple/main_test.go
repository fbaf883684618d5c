package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionFlag(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Fatalf("output = %q, want version %q", out.String(), version)
	}
}

func TestRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Execute accepted a positional argument")
	}
}

func TestClipsFlagParses(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--clips", "200,150.5", "--debug"}); err != nil {
		t.Fatalf("ParseFlags error: %v", err)
	}
	widths, err := cmd.Flags().GetFloat64Slice("clips")
	if err != nil {
		t.Fatalf("GetFloat64Slice error: %v", err)
	}
	if len(widths) != 2 || widths[1] != 150.5 {
		t.Fatalf("widths = %v, want [200 150.5]", widths)
	}
}
