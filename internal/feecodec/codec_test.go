package feecodec

import "testing"

// Pin the scenarios from the specification's testable-properties section.
func TestDecodeByteEntry(t *testing.T) {
	e := Decode(EncodeByte(0x10, 0x77), 0)
	if e.Kind != KindByte || e.Addr != 0x10 || e.Value != 0x77 || !e.IsByte {
		t.Fatalf("decode byte entry: got %+v", e)
	}
}

func TestDecodeWordEncodedOne(t *testing.T) {
	e := Decode(EncodeWordOne(0x200), 0)
	if e.Kind != KindWordOne || e.Addr != 0x200 || e.Value != 1 {
		t.Fatalf("decode word-encoded-1: got %+v", e)
	}
}

func TestDecodeWordEncodedZero(t *testing.T) {
	e := Decode(EncodeWordZero(0x200), 0)
	if e.Kind != KindWordZero || e.Addr != 0x200 || e.Value != 0 {
		t.Fatalf("decode word-encoded-0: got %+v", e)
	}
}

// S4 from spec.md: write_word(0x300, 0xCAFE) after a direct write of
// 0xBEEF produces Word-Next primary 0xE140, value word 0x3501.
func TestEncodeWordNextScenario(t *testing.T) {
	primary, value := EncodeWordNext(0x300, 0xCAFE)
	if primary != 0xE140 {
		t.Errorf("primary = %#04x, want 0xE140", primary)
	}
	if value != 0x3501 {
		t.Errorf("value = %#04x, want 0x3501", value)
	}

	e := Decode(primary, value)
	if e.Kind != KindWordNext || e.Addr != 0x300 || e.Value != 0xCAFE {
		t.Fatalf("decode word-next: got %+v", e)
	}
}

// S5 from spec.md: torn Word-Next (value word never programmed, reads
// back as 0xFFFF) must decode as a torn write, not as value 0x0000.
func TestDecodeTornWordNext(t *testing.T) {
	primary, _ := EncodeWordNext(0x300, 0xCAFE)
	e := Decode(primary, 0xFFFF)
	if e.Kind != KindTornWordNext {
		t.Fatalf("expected torn write, got %+v", e)
	}
}

func TestDecodeTerminator(t *testing.T) {
	e := Decode(Terminator, 0)
	if e.Kind != KindTerminator {
		t.Fatalf("expected terminator, got %+v", e)
	}
}

func TestDecodeReserved(t *testing.T) {
	for _, primary := range []uint16{0xC000, 0xDFFF, 0xFFC0, 0xFFFE} {
		e := Decode(primary, 0)
		if e.Kind != KindReserved {
			t.Errorf("primary %#04x: expected reserved, got %+v", primary, e)
		}
	}
}

func TestMagicByteOrder(t *testing.T) {
	if Magic[0] != 0x0FEE || Magic[1] != 0x2040 {
		t.Fatalf("magic halves = %04x %04x, want 0FEE 2040", Magic[0], Magic[1])
	}
}
