package feeprom

import (
	"testing"

	"github.com/rcornwell/feeprom/internal/feedriver"
)

// Compaction must reproduce the pre-compaction logical image exactly,
// and must reset the log back to empty.
func TestCompactPreservesImage(t *testing.T) {
	e, _ := newTestEngine(t)

	e.WriteByte(0x10, 0x5A)
	e.WriteWord(0x200, 0xBEEF)
	e.WriteByte(0x10, 0x77) // forces a log append before compaction

	before := make([]byte, testDensity)
	for i := range before {
		before[i] = e.ReadByte(uint32(i))
	}

	e.Compact()

	if e.EmptySlot() != e.logBase {
		t.Errorf("EmptySlot() after Compact = %#x, want logBase %#x", e.EmptySlot(), e.logBase)
	}
	for i, want := range before {
		if got := e.ReadByte(uint32(i)); got != want {
			t.Fatalf("byte %#x after compaction = %#02x, want %#02x", i, got, want)
		}
	}
}

// Compaction is triggered automatically once an append would overflow
// the log, and the triggering write's value survives the compaction.
func TestCompactionTriggeredOnOverflow(t *testing.T) {
	drv := feedriver.NewMemDriver(testPageSize, testPageCount)
	e, err := New(Config{Driver: drv, DensityBytes: testDensity, WriteLogBytes: 6})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// A six-byte log region is 4 bytes of magic plus exactly one
	// Byte-Entry slot: the first write takes the direct snapshot path,
	// the second fills the only log slot, and the third has nowhere to
	// go but compaction.
	e.WriteByte(0x10, 0x01)
	e.WriteByte(0x10, 0x02)
	res := e.WriteByte(0x10, 0x03)
	if res.Kind != Compacted {
		t.Fatalf("triggering write = %v, want Compacted", res.Kind)
	}
	if got := e.ReadByte(0x10); got != 0x03 {
		t.Errorf("ReadByte(0x10) after compaction = %#02x, want 0x03", got)
	}
	if e.EmptySlot() != e.logBase {
		t.Errorf("EmptySlot() after auto-compaction = %#x, want logBase %#x", e.EmptySlot(), e.logBase)
	}
}

// Erase must zero every logical byte and leave the store in the same
// state a never-written device would be in.
func TestErase(t *testing.T) {
	e, _ := newTestEngine(t)
	e.WriteByte(0x10, 0x5A)
	e.WriteWord(0x200, 0xBEEF)

	e.Erase()

	for _, addr := range []uint32{0x10, 0x200, 0x300} {
		if got := e.ReadByte(addr); got != 0 {
			t.Errorf("ReadByte(%#x) after Erase = %#02x, want 0", addr, got)
		}
	}
	if e.EmptySlot() != e.logBase {
		t.Errorf("EmptySlot() after Erase = %#x, want logBase %#x", e.EmptySlot(), e.logBase)
	}

	// A fresh write after Erase must behave like the very first write
	// on a new store: direct snapshot path.
	res := e.WriteByte(0x10, 0x5A)
	if res.Kind != SnapshotWritten {
		t.Errorf("first write after Erase = %v, want SnapshotWritten", res.Kind)
	}
}

// Magic mismatch on a blank driver must not panic and must leave the
// engine in the empty state.
func TestInitOnBlankDriverWritesMagic(t *testing.T) {
	drv := feedriver.NewMemDriver(testPageSize, testPageCount)
	e, err := New(Config{Driver: drv, DensityBytes: testDensity, WriteLogBytes: testLogBytes})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !e.checkMagic() {
		t.Error("magic not written on a blank driver during New")
	}
	if e.EmptySlot() != e.logBase {
		t.Errorf("EmptySlot() on fresh store = %#x, want logBase %#x", e.EmptySlot(), e.logBase)
	}
}

// A corrupted magic forces a full clear rather than a panic or a
// garbage replay. The RAM image keeps what the snapshot load produced;
// only the log replay is skipped.
func TestInitWithBadMagicClears(t *testing.T) {
	drv := feedriver.NewMemDriver(testPageSize, testPageCount)
	e, err := New(Config{Driver: drv, DensityBytes: testDensity, WriteLogBytes: testLogBytes})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.WriteByte(0x10, 0x5A)

	// Corrupt the magic in place.
	drv.Bytes()[testDensity] = 0x00

	reloaded, err := New(Config{Driver: drv, DensityBytes: testDensity, WriteLogBytes: testLogBytes})
	if err != nil {
		t.Fatalf("New (reload): %v", err)
	}
	if got := reloaded.ReadByte(0x10); got != 0x5A {
		t.Errorf("ReadByte(0x10) after bad-magic clear = %#02x, want 0x5A (as loaded from the snapshot)", got)
	}
	if !reloaded.checkMagic() {
		t.Error("magic not rewritten after a bad-magic clear")
	}
}
