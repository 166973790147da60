package agent

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// A blank up-front prompt must not become a REPL turn: the user sees exactly
// one prompt before their first read.
func TestRunDropsBlankPrompts(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader(""))

	if err := a.Run(context.Background(), nil, "", "  ", "bye"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.String(), prompt); got != 1 {
		t.Errorf("prompt printed %d times, want 1:\n%s", got, out.String())
	}
}

func TestRunExitsOnBye(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader(""))

	// No chat session is needed before the first real question, so exiting
	// works without a client.
	if err := a.Run(context.Background(), nil, "bye"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "bye") {
		t.Errorf("consumed prompt should be echoed, got:\n%s", out.String())
	}
}

func TestRunExitsOnEOF(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader(""))

	if err := a.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "Welcome to ft assist.") {
		t.Errorf("missing greeting, got:\n%s", out.String())
	}
}

func TestSystemInstructionIncludesReports(t *testing.T) {
	a := New(&bytes.Buffer{}, strings.NewReader(""), "# Transactions", "# Holdings")
	got := a.systemInstruction()
	for _, report := range []string{"# Transactions", "# Holdings"} {
		if !strings.Contains(got, report) {
			t.Errorf("system instruction missing %q", report)
		}
	}
}
