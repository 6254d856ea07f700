//go:build feedebug

package hexdump

import (
	"strings"
	"testing"
)

func TestDumpZeroRowCollapse(t *testing.T) {
	data := make([]byte, 64)
	data[0] = 0xAB

	out := Dump(data, 0)
	if !strings.Contains(out, "*\n") {
		t.Errorf("expected a collapsed zero-row marker, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "00000000") {
		t.Errorf("first row should start with the base address, got:\n%s", out)
	}
}

func TestDumpAlwaysPrintsLastRow(t *testing.T) {
	data := make([]byte, 32)
	out := Dump(data, 0)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) == 0 || lines[len(lines)-1] == "*" {
		t.Errorf("final row must always print, got:\n%s", out)
	}
}
