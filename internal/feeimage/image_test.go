package feeimage

import "testing"

func TestByteRoundTrip(t *testing.T) {
	img := New(1024)
	img.SetByte(0x10, 0x5A)
	if got := img.GetByte(0x10); got != 0x5A {
		t.Errorf("GetByte(0x10) = %#02x, want 0x5A", got)
	}
	if got := img.GetByte(0x11); got != 0x00 {
		t.Errorf("GetByte(0x11) = %#02x, want 0x00", got)
	}
	if got := img.GetHalf(0x10); got != 0x005A {
		t.Errorf("GetHalf(0x10) = %#04x, want 0x005A", got)
	}
}

func TestHalfRoundTrip(t *testing.T) {
	img := New(1024)
	img.SetHalf(0x200, 0xBEEF)
	if got := img.GetHalf(0x200); got != 0xBEEF {
		t.Errorf("GetHalf(0x200) = %#04x, want 0xBEEF", got)
	}
	if got := img.GetByte(0x200); got != 0xEF {
		t.Errorf("GetByte(0x200) = %#02x, want 0xEF", got)
	}
	if got := img.GetByte(0x201); got != 0xBE {
		t.Errorf("GetByte(0x201) = %#02x, want 0xBE", got)
	}
}

func TestOutOfRangeReadsCanonical(t *testing.T) {
	img := New(16)
	if got := img.GetByte(100); got != 0xFF {
		t.Errorf("GetByte(out of range) = %#02x, want 0xFF", got)
	}
	if got := img.GetHalf(100); got != 0xFFFF {
		t.Errorf("GetHalf(out of range) = %#04x, want 0xFFFF", got)
	}
}

func TestOutOfRangeWritesIgnored(t *testing.T) {
	img := New(16)
	img.SetByte(100, 0x42) // must not panic
	img.SetHalf(100, 0x4242)
}

func TestInRange(t *testing.T) {
	img := New(16)
	if !img.InRange(15) {
		t.Error("15 should be in range for a 16-byte image")
	}
	if img.InRange(16) {
		t.Error("16 should be out of range for a 16-byte image")
	}
}
