package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestForServiceMemoizes(t *testing.T) {
	a := ForService("memo")
	b := ForService("memo")
	if a != b {
		t.Fatal("expected the same logger instance for the same name")
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	l := ForService("quiet")
	l.Debugf("should not appear")
	if strings.Contains(buf.String(), "should not appear") {
		t.Fatalf("debug output emitted while disabled: %q", buf.String())
	}
}

func TestEnableDebugFor(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	EnableDebugFor("chatty")
	l := ForService("chatty")
	l.Debugf("now visible")

	out := buf.String()
	if !strings.Contains(out, "DEBUG [chatty>] now visible") {
		t.Fatalf("expected debug line, got %q", out)
	}
}

func TestLevelsAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	l := ForService("api")
	l.Infof("count=%d", 3)
	l.Warnf("slow query")
	l.Errorf("boom")

	out := buf.String()
	for _, want := range []string{
		"INFO [api>] count=3",
		"WARN [api>] slow query",
		"ERROR [api>] boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output %q", want, out)
		}
	}
}
