package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestInteractivePrompter_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase YES", "YES\n", true},
		{"with spaces", "  y  \n", true},
		{"no trailing newline", "yes", true},
		{"lowercase n", "n\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &bytes.Buffer{}
			prompter := NewInteractivePrompterWithIO(strings.NewReader(tt.input), writer)

			got, err := prompter.Confirm(context.Background(), "'cmds' not found. Did you mean 'commands'?")
			if err != nil {
				t.Fatalf("Confirm() unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Confirm() = %v, want %v", got, tt.expected)
			}
			if !strings.Contains(writer.String(), "Did you mean 'commands'? [y/N]") {
				t.Errorf("prompt not displayed in output: %q", writer.String())
			}
		})
	}
}

func TestInteractivePrompter_Confirm_ContextCancelled(t *testing.T) {
	prompter := NewInteractivePrompterWithIO(strings.NewReader("y\n"), &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prompter.Confirm(ctx, "Continue?")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Confirm() error = %v, want context.Canceled", err)
	}
}

func TestNonInteractivePrompter(t *testing.T) {
	out := &bytes.Buffer{}

	got, err := NewAutoApprovePrompter(out).Confirm(context.Background(), "Continue?")
	if err != nil || !got {
		t.Errorf("auto approve: got %v, %v", got, err)
	}
	if !strings.Contains(out.String(), "(auto)") {
		t.Errorf("expected auto answer to be echoed, got %q", out.String())
	}

	got, err = NewNonInteractivePrompter(nil).Confirm(context.Background(), "Continue?")
	if err != nil || got {
		t.Errorf("non-interactive: got %v, %v", got, err)
	}
}

func TestNew_AssumeYes(t *testing.T) {
	p, ok := New(true, true).(*NonInteractivePrompter)
	if !ok || !p.answer {
		t.Errorf("assumeYes should produce an approving prompter, got %#v", p)
	}
	p, ok = New(false, true).(*NonInteractivePrompter)
	if !ok || p.answer {
		t.Errorf("nonInteractive should produce a declining prompter, got %#v", p)
	}
}
