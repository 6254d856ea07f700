package feeprom

import (
	"testing"

	"github.com/rcornwell/feeprom/internal/feedriver"
)

const (
	testPageSize  = 256
	testPageCount = 8 // 2048 bytes total
	testDensity   = 1024
	testLogBytes  = testPageSize*testPageCount - testDensity
)

func newTestEngine(t *testing.T) (*Engine, *feedriver.MemDriver) {
	t.Helper()
	drv := feedriver.NewMemDriver(testPageSize, testPageCount)
	e, err := New(Config{
		Driver:        drv,
		DensityBytes:  testDensity,
		WriteLogBytes: testLogBytes,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, drv
}

// S1 from spec.md: first write to a freshly erased store takes the
// direct snapshot path.
func TestS1FirstWriteDirect(t *testing.T) {
	e, drv := newTestEngine(t)

	res := e.WriteByte(0x10, 0x5A)
	if res.Kind != SnapshotWritten {
		t.Fatalf("WriteByte result = %v, want SnapshotWritten", res.Kind)
	}
	if got := e.ReadByte(0x10); got != 0x5A {
		t.Errorf("ReadByte(0x10) = %#02x, want 0x5A", got)
	}
	if got := drv.ReadHalf(0x10); got != 0xFFA5 {
		t.Errorf("snapshot half at 0x10 = %#04x, want 0xFFA5", got)
	}
	if e.EmptySlot() != e.logBase {
		t.Errorf("log should still be empty after a direct write")
	}
}

// S2 from spec.md: a second write to the same half-word falls to the log.
func TestS2OverwriteViaLog(t *testing.T) {
	e, _ := newTestEngine(t)
	e.WriteByte(0x10, 0x5A)

	before := e.EmptySlot()
	res := e.WriteByte(0x10, 0x77)
	if res.Kind != LogAppended {
		t.Fatalf("WriteByte result = %v, want LogAppended", res.Kind)
	}
	if e.EmptySlot() != before+2 {
		t.Errorf("empty slot advanced by %d, want 2", e.EmptySlot()-before)
	}
	if got := e.ReadByte(0x10); got != 0x77 {
		t.Errorf("ReadByte(0x10) = %#02x, want 0x77", got)
	}
}

// S3 from spec.md: Word-Encoded-1 then Word-Encoded-0.
func TestS3WordEncoded(t *testing.T) {
	e, _ := newTestEngine(t)

	res := e.WriteWord(0x200, 0x0001)
	if res.Kind != SnapshotWritten {
		t.Fatalf("first write = %v, want SnapshotWritten", res.Kind)
	}

	res = e.WriteWord(0x200, 0x0000)
	if res.Kind != LogAppended {
		t.Fatalf("second write = %v, want LogAppended", res.Kind)
	}
	if got := e.ReadWord(0x200); got != 0 {
		t.Errorf("ReadWord(0x200) = %#04x, want 0", got)
	}
}

// S4 from spec.md: Word-Next entry for an arbitrary half-word value.
func TestS4WordNext(t *testing.T) {
	e, _ := newTestEngine(t)

	res := e.WriteWord(0x300, 0xBEEF)
	if res.Kind != SnapshotWritten {
		t.Fatalf("first write = %v, want SnapshotWritten", res.Kind)
	}

	res = e.WriteWord(0x300, 0xCAFE)
	if res.Kind != LogAppended {
		t.Fatalf("second write = %v, want LogAppended", res.Kind)
	}
	if got := e.ReadWord(0x300); got != 0xCAFE {
		t.Errorf("ReadWord(0x300) = %#04x, want 0xCAFE", got)
	}
}

// S5 from spec.md: a torn Word-Next write, reboot, replay must recover
// the pre-write value.
func TestS5TornWriteRecovery(t *testing.T) {
	drv := feedriver.NewMemDriver(testPageSize, testPageCount)
	e, err := New(Config{Driver: drv, DensityBytes: testDensity, WriteLogBytes: testLogBytes})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e.WriteWord(0x300, 0xBEEF)
	entrySlot := e.EmptySlot()
	e.WriteWord(0x300, 0xCAFE)

	// Simulate power loss between the primary and value words: blank
	// the value word back out to the erased state.
	valueWordOffset := entrySlot + 2
	drv.Bytes()[valueWordOffset] = 0xFF
	drv.Bytes()[valueWordOffset+1] = 0xFF

	reloaded, err := New(Config{Driver: drv, DensityBytes: testDensity, WriteLogBytes: testLogBytes})
	if err != nil {
		t.Fatalf("New (reload): %v", err)
	}
	if got := reloaded.ReadWord(0x300); got != 0xBEEF {
		t.Errorf("ReadWord(0x300) after torn-write replay = %#04x, want 0xBEEF", got)
	}
}

// S6 from spec.md: filling the log triggers compaction, and a reload
// after compaction reproduces the same image.
func TestS6Compaction(t *testing.T) {
	e, drv := newTestEngine(t)

	// Drive many small writes at distinct addresses so the log fills
	// with real entries rather than elidable no-ops.
	for i := uint32(0); i < 600; i++ {
		addr := 0x200 + (i % 400)
		e.WriteByte(addr, byte(i))
	}

	before := make(map[uint32]byte)
	for addr := uint32(0); addr < testDensity; addr++ {
		before[addr] = e.ReadByte(addr)
	}

	reloaded, err := New(Config{Driver: drv, DensityBytes: testDensity, WriteLogBytes: testLogBytes})
	if err != nil {
		t.Fatalf("New (reload): %v", err)
	}
	for addr, want := range before {
		if got := reloaded.ReadByte(addr); got != want {
			t.Fatalf("addr %#x: got %#02x, want %#02x", addr, got, want)
		}
	}
}

// Idempotence: writing the same value twice must not advance the log.
func TestIdempotentWrite(t *testing.T) {
	e, _ := newTestEngine(t)
	e.WriteByte(0x10, 0x5A)
	e.WriteByte(0x10, 0x77)
	before := e.EmptySlot()

	res := e.WriteByte(0x10, 0x77)
	if res.Kind != Ok {
		t.Fatalf("repeat write result = %v, want Ok", res.Kind)
	}
	if e.EmptySlot() != before {
		t.Errorf("empty slot moved on a no-op write")
	}
}

// Bounds: out-of-range writes return BadAddress and change nothing.
func TestBoundsBadAddress(t *testing.T) {
	e, drv := newTestEngine(t)
	before := append([]byte(nil), drv.Bytes()...)

	res := e.WriteByte(testDensity, 0x42)
	if res.Kind != BadAddress {
		t.Fatalf("WriteByte(density) = %v, want BadAddress", res.Kind)
	}
	for i, b := range drv.Bytes() {
		if b != before[i] {
			t.Fatalf("flash byte %d changed on a rejected out-of-range write", i)
		}
	}
}

func TestReadOutOfRangeCanonical(t *testing.T) {
	e, _ := newTestEngine(t)
	if got := e.ReadByte(testDensity + 10); got != 0xFF {
		t.Errorf("ReadByte(out of range) = %#02x, want 0xFF", got)
	}
	if got := e.ReadWord(testDensity + 10); got != 0xFFFF {
		t.Errorf("ReadWord(out of range) = %#04x, want 0xFFFF", got)
	}
}

// Direct-write elision: writing 0x0000 to a never-touched half-word
// must not program the snapshot at all.
func TestDirectWriteZeroElided(t *testing.T) {
	e, drv := newTestEngine(t)

	res := e.WriteWord(0x3FE, 0x0000)
	if res.Kind != Ok {
		t.Fatalf("writing 0 to an untouched half-word = %v, want Ok", res.Kind)
	}
	if got := drv.ReadHalf(0x3FE); got != 0xFFFF {
		t.Errorf("snapshot half at 0x3FE = %#04x, want 0xFFFF (still erased)", got)
	}
}

// Flash failure propagation: the RAM image is updated even when the
// driver reports a program failure.
func TestFlashFailurePropagates(t *testing.T) {
	drv := feedriver.NewMemDriver(testPageSize, testPageCount)
	drv.FailAt = 0x10
	drv.FailStatus = feedriver.ErrVerify

	e, err := New(Config{Driver: drv, DensityBytes: testDensity, WriteLogBytes: testLogBytes})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res := e.WriteByte(0x10, 0x5A)
	if res.Kind != FlashFailure || res.Status != feedriver.ErrVerify {
		t.Fatalf("WriteByte result = %+v, want FlashFailure/ErrVerify", res)
	}
	if got := e.ReadByte(0x10); got != 0x5A {
		t.Errorf("RAM image not updated despite flash failure: got %#02x, want 0x5A", got)
	}
}

func TestReentrancyPanics(t *testing.T) {
	e, _ := newTestEngine(t)
	e.busy.Store(true)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on re-entrant call")
		}
	}()
	e.WriteByte(0, 0x01)
}
