/*
 * feeprom - Write-log codec
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

// Package feecodec translates between logical byte/half-word mutations
// and the 16-bit log-entry encoding that is appended to the write log.
// It performs no I/O; every function here is a pure translation so the
// encoding can be pinned down with table-driven tests independent of
// the flash driver or the RAM image.
package feecodec

// Kind identifies what a decoded log entry means.
type Kind int

const (
	KindTerminator  Kind = iota // 0xFFFF, end of log.
	KindByte                    // Byte-Entry: one word, byte at addr < 0x80.
	KindWordZero                // Word-Encoded 0: one word, half-word value 0x0000.
	KindWordOne                 // Word-Encoded 1: one word, half-word value 0x0001.
	KindReserved                // Reserved encoding, skipped on replay.
	KindWordNext                // Word-Next: two words, arbitrary half-word value.
	KindTornWordNext            // Word-Next whose value word never landed.
)

const (
	// FeeByteRange is the span of addresses addressable at byte
	// granularity by a single-word Byte-Entry.
	FeeByteRange = 0x80

	// Terminator marks the first free log slot.
	Terminator uint16 = 0xFFFF

	byteEntryMax  uint16 = 0x7FFF
	wordZeroMin   uint16 = 0x8000
	wordZeroMax   uint16 = 0x9FFF
	wordOneMin    uint16 = 0xA000
	wordOneMax    uint16 = 0xBFFF
	reservedMin   uint16 = 0xC000
	reservedMax   uint16 = 0xDFFF
	wordNextMin   uint16 = 0xE000
	wordNextMax   uint16 = 0xFFBF
	reservedTailM uint16 = 0xFFC0

	wordNextBias uint32 = 0x80
)

// Magic is the 32-bit log-region header, as two little-endian half-words.
// Fixed at 0x20400FEE; reimplementations that target a big-endian flash
// interface must still emit these two half-words in this order - the
// on-disk byte order is not configurable here.
var Magic = [2]uint16{0x0FEE, 0x2040}

// Entry is a decoded log entry: how many 16-bit words it occupies, its
// logical address, logical value, and classification.
type Entry struct {
	Kind    Kind
	Words   int    // 1 or 2, words consumed from the log stream (0 for terminator).
	Addr    uint32 // logical address.
	Value   uint16 // logical value: byte in low 8 bits for KindByte, half-word otherwise.
	IsByte  bool   // true for KindByte.
}

// Decode interprets a primary log word and, for Word-Next entries, the
// half-word that follows it. next is ignored unless the primary word
// falls in the Word-Next range.
func Decode(primary, next uint16) Entry {
	switch {
	case primary == Terminator:
		return Entry{Kind: KindTerminator}

	case primary <= byteEntryMax:
		return Entry{
			Kind:   KindByte,
			Words:  1,
			Addr:   uint32(primary>>8) & 0x7F,
			Value:  primary & 0xFF,
			IsByte: true,
		}

	case primary >= wordZeroMin && primary <= wordZeroMax:
		return Entry{
			Kind:  KindWordZero,
			Words: 1,
			Addr:  (uint32(primary) & 0x1FFF) << 1,
			Value: 0x0000,
		}

	case primary >= wordOneMin && primary <= wordOneMax:
		return Entry{
			Kind:  KindWordOne,
			Words: 1,
			Addr:  (uint32(primary) & 0x1FFF) << 1,
			Value: 0x0001,
		}

	case primary >= reservedMin && primary <= reservedMax:
		return Entry{Kind: KindReserved, Words: 1}

	case primary >= wordNextMin && primary <= wordNextMax:
		addr := ((uint32(primary) & 0x1FFF) << 1) + wordNextBias
		value := ^next
		if value == 0x0000 {
			// Power loss between the address word and the value word:
			// complemented value reads back as all-ones, decoded value
			// as zero. Caller must not apply this entry.
			return Entry{Kind: KindTornWordNext, Words: 2, Addr: addr}
		}
		return Entry{Kind: KindWordNext, Words: 2, Addr: addr, Value: value}

	default: // 0xFFC0-0xFFFE: reserved tail.
		return Entry{Kind: KindReserved, Words: 1}
	}
}

// EncodeByte builds a one-word Byte-Entry for addr < FeeByteRange.
func EncodeByte(addr uint32, value byte) uint16 {
	return (uint16(addr&0x7F) << 8) | uint16(value)
}

// EncodeWordZero builds a one-word Word-Encoded-0 entry for an even addr.
func EncodeWordZero(addr uint32) uint16 {
	return wordZeroMin | uint16((addr>>1)&0x1FFF)
}

// EncodeWordOne builds a one-word Word-Encoded-1 entry for an even addr.
func EncodeWordOne(addr uint32) uint16 {
	return wordOneMin | uint16((addr>>1)&0x1FFF)
}

// EncodeWordNext builds the two words of a Word-Next entry for an even
// addr >= FeeByteRange and an arbitrary half-word value.
func EncodeWordNext(addr uint32, value uint16) (primary, next uint16) {
	biased := (addr - wordNextBias) >> 1
	primary = wordNextMin | uint16(biased&0x1FFF)
	next = ^value
	return primary, next
}
