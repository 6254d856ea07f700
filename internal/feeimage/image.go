/*
 * feeprom - RAM image of the logical EEPROM
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

// Package feeimage holds the in-memory mirror of the logical EEPROM.
// It is one owned buffer of half-words with explicit byte accessors,
// rather than a pointer-cast alias of a byte array and a half-word
// array over the same storage.
package feeimage

// Image is DENSITY bytes of RAM, addressable as bytes or half-words.
type Image struct {
	words []uint16 // len(words) == density/2
}

// New allocates a zeroed image of density bytes. density must be even.
func New(density uint32) *Image {
	return &Image{words: make([]uint16, density/2)}
}

// Density returns the image size in bytes.
func (img *Image) Density() uint32 {
	return uint32(len(img.words)) * 2
}

// GetByte returns the logical byte at addr, little-endian within its
// half-word, or 0xFF if addr is out of range.
func (img *Image) GetByte(addr uint32) byte {
	idx := addr >> 1
	if idx >= uint32(len(img.words)) {
		return 0xFF
	}
	word := img.words[idx]
	if addr&1 == 0 {
		return byte(word & 0xFF)
	}
	return byte(word >> 8)
}

// SetByte stores value at addr. Caller must have already bounds-checked
// addr; out-of-range addresses are silently ignored.
func (img *Image) SetByte(addr uint32, value byte) {
	idx := addr >> 1
	if idx >= uint32(len(img.words)) {
		return
	}
	word := img.words[idx]
	if addr&1 == 0 {
		word = (word & 0xFF00) | uint16(value)
	} else {
		word = (word & 0x00FF) | (uint16(value) << 8)
	}
	img.words[idx] = word
}

// GetHalf returns the logical half-word at the even address addr, or
// 0xFFFF if out of range. addr is truncated to even.
func (img *Image) GetHalf(addr uint32) uint16 {
	idx := (addr &^ 1) >> 1
	if idx >= uint32(len(img.words)) {
		return 0xFFFF
	}
	return img.words[idx]
}

// SetHalf stores value at the even address addr. Out-of-range addresses
// are silently ignored; addr is truncated to even.
func (img *Image) SetHalf(addr uint32, value uint16) {
	idx := (addr &^ 1) >> 1
	if idx >= uint32(len(img.words)) {
		return
	}
	img.words[idx] = value
}

// InRange reports whether addr is a valid byte address for this image.
func (img *Image) InRange(addr uint32) bool {
	return addr < img.Density()
}

// Words exposes the backing half-word slice for bulk load from the
// snapshot region and for compaction. Callers must not retain
// the slice across a call to New.
func (img *Image) Words() []uint16 {
	return img.words
}

// Clear zeroes the entire image in place.
func (img *Image) Clear() {
	for i := range img.words {
		img.words[i] = 0
	}
}
