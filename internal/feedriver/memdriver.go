/*
 * feeprom - In-memory flash driver for tests
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package feedriver

// MemDriver is a flash simulator backed by a plain byte slice. It does
// not persist across process restarts; it exists for unit and property
// tests that want an erased-or-programmed NOR model without touching
// the filesystem.
type MemDriver struct {
	mem       []byte
	pageSize  uint32
	pageCount uint32
	locked    bool

	// FailAt, when non-negative, makes the next ProgramHalfWord at this
	// byte offset return FailStatus instead of Complete, to exercise
	// the FlashFailure path. Reset to -1 after firing once.
	FailAt     int64
	FailStatus Status
}

// NewMemDriver allocates an erased (all-ones) flash region of
// pageCount pages of pageSize bytes each.
func NewMemDriver(pageSize, pageCount uint32) *MemDriver {
	d := &MemDriver{
		mem:       make([]byte, uint64(pageSize)*uint64(pageCount)),
		pageSize:  pageSize,
		pageCount: pageCount,
		FailAt:    -1,
	}
	for i := range d.mem {
		d.mem[i] = 0xFF
	}
	return d
}

func (d *MemDriver) Unlock() error { d.locked = false; return nil }
func (d *MemDriver) Lock() error   { d.locked = true; return nil }

func (d *MemDriver) PageSize() uint32  { return d.pageSize }
func (d *MemDriver) PageCount() uint32 { return d.pageCount }

func (d *MemDriver) ErasePage(addr uint32) error {
	base := (addr / d.pageSize) * d.pageSize
	for i := uint32(0); i < d.pageSize; i++ {
		d.mem[base+i] = 0xFF
	}
	return nil
}

func (d *MemDriver) ProgramHalfWord(addr uint32, value uint16) Status {
	if d.FailAt >= 0 && int64(addr) == d.FailAt {
		d.FailAt = -1
		return d.FailStatus
	}
	// NOR semantics: programming can only clear bits, never set them.
	d.mem[addr] &= byte(value)
	d.mem[addr+1] &= byte(value >> 8)
	return Complete
}

func (d *MemDriver) ReadHalf(addr uint32) uint16 {
	return uint16(d.mem[addr]) | uint16(d.mem[addr+1])<<8
}

// Bytes exposes the raw backing store, for tests that want to inspect
// or corrupt flash contents directly (e.g. simulating a torn write by
// truncating the log before reboot).
func (d *MemDriver) Bytes() []byte {
	return d.mem
}
