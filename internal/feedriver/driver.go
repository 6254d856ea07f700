/*
 * feeprom - Flash driver collaborator interface
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

// Package feedriver names the external collaborator the persistence
// engine drives: the NOR flash unlock/erase/program primitives. Reads
// are plain loads from the flash window, so the interface only needs
// to expose a half-word read alongside the three mutating primitives.
package feedriver

// Status is the driver's report of a program/erase attempt.
type Status int

const (
	// Complete indicates the operation finished and is durable.
	Complete Status = iota
	// ErrBusy indicates the controller was already busy.
	ErrBusy
	// ErrProtected indicates the target page is write-protected.
	ErrProtected
	// ErrVerify indicates the programmed value did not read back.
	ErrVerify
)

func (s Status) String() string {
	switch s {
	case Complete:
		return "complete"
	case ErrBusy:
		return "busy"
	case ErrProtected:
		return "protected"
	case ErrVerify:
		return "verify failed"
	default:
		return "unknown status"
	}
}

// Driver is the NOR flash collaborator. addr is always relative to the
// start of the persistent region (offset 0 == PageBaseAddress).
type Driver interface {
	// Unlock enables flash programming. Must be paired with Lock.
	Unlock() error
	// Lock disables flash programming.
	Lock() error
	// ErasePage clears the PageSize-aligned page containing addr to
	// all-ones (0xFFFF half-words).
	ErasePage(addr uint32) error
	// ProgramHalfWord writes value to the half-word-aligned addr.
	// value must have every 0-bit corresponding to a 1-bit already in
	// flash (NOR semantics); callers only ever program over erased or
	// all-ones cells.
	ProgramHalfWord(addr uint32, value uint16) Status
	// ReadHalf returns the current contents of the half-word-aligned
	// addr, a plain memory-mapped load.
	ReadHalf(addr uint32) uint16
	// PageSize and PageCount describe the geometry the driver backs.
	PageSize() uint32
	PageCount() uint32
}
