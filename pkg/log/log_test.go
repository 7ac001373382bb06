package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Level(t *testing.T) {
	var b bytes.Buffer
	l := NewWithWriter(&b, "warn")

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)

	out := b.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info message to be discarded, got %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("expected warn message to be written, got %q", out)
	}
}
