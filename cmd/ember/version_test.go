package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPrettyDefaultOmitsMetadata(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, versionInfo{Version: "0.1.0-dev"}, versionOptions{})
	out := buf.String()
	if !strings.Contains(out, "0.1.0-dev") {
		t.Fatalf("output %q missing version", out)
	}
	if strings.Contains(out, "commit:") {
		t.Fatalf("output %q should not include commit without --hash", out)
	}
}

func TestRenderVersionPrettyFull(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "0.1.0-dev", GitCommit: "deadbeef", GitMessage: "initial", BuildDate: "2026-08-06"}
	renderVersionPretty(&buf, info, versionOptions{showHash: true, showMessage: true, showDate: true})
	out := buf.String()
	for _, want := range []string{"deadbeef", "initial", "2026-08-06"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "0.1.0-dev", GitCommit: "deadbeef"}
	if err := renderVersionJSON(&buf, info, versionOptions{showHash: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "ember" || payload.Version != "0.1.0-dev" || payload.GitCommit != "deadbeef" {
		t.Fatalf("payload = %+v, want tool=ember version=0.1.0-dev commit=deadbeef", payload)
	}
}

func TestValueOrUnknown(t *testing.T) {
	if got := valueOrUnknown(""); got != "unknown" {
		t.Fatalf("valueOrUnknown(\"\") = %q, want %q", got, "unknown")
	}
	if got := valueOrUnknown("x"); got != "x" {
		t.Fatalf("valueOrUnknown(\"x\") = %q, want %q", got, "x")
	}
}
