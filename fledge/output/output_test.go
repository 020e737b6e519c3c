package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureOutput captures everything printed while f runs
func captureOutput(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })

	f()
	return buf.String()
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name  string
		print func(string)
		mark  string
	}{
		{"success", Success, "🐣"},
		{"error", Error, "❌"},
		{"warn", Warn, "⚠️"},
		{"info", Info, "ℹ️"},
		{"header", Header, ""},
		{"step", Step, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t, func() { tt.print("a message") })

			assert.Contains(t, out, tt.mark)
			assert.Contains(t, out, "a message")
			assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")))
		})
	}
}

func TestVerbose(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	out := captureOutput(t, func() { Verbose("Debug message") })
	assert.Empty(t, out, "Verbose output should be empty when verbose mode is off")

	SetVerbose(true)
	out = captureOutput(t, func() { Verbose("Debug message") })
	assert.Contains(t, out, "🔍")
	assert.Contains(t, out, "Debug message")
}

func TestSetOutput_NilRestoresStdout(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })

	assert.Same(t, &buf, SetOutput(nil))
	Step("not captured")
	assert.Empty(t, buf.String())
}
