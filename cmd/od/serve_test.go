package main

import (
	"testing"
)

func TestServe_MissingConfig(t *testing.T) {
	_, err := runCmd(t, "serve", "-c", "/does/not/exist.yaml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := newServeCmd()
	if cmd.Flags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
	if cmd.Flags().Lookup("port") == nil {
		t.Error("missing --port flag")
	}
}
