/*
 * feeprom - Block and dword public API
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

package feeprom

// ReadBlock fills dst with len(dst) logical bytes starting at addr,
// honouring addr's alignment independently of dst's: an initial
// misaligned byte, then as many half-words as possible, then a
// trailing byte. Out-of-range bytes read back as 0xFF, same as a
// single ReadByte.
func (e *Engine) ReadBlock(dst []byte, addr uint32) {
	n := uint32(len(dst))
	i := uint32(0)

	if addr&1 != 0 && i < n {
		dst[i] = e.ReadByte(addr)
		addr++
		i++
	}
	for i+1 < n {
		w := e.ReadWord(addr)
		dst[i] = byte(w)
		dst[i+1] = byte(w >> 8)
		addr += 2
		i += 2
	}
	if i < n {
		dst[i] = e.ReadByte(addr)
	}
}

// WriteBlock writes src into the store starting at addr, using the
// same leading-byte / half-words / trailing-byte phasing as ReadBlock.
// The whole range is bounds-checked up front: an out-of-range request
// returns BadAddress without writing anything, rather than leaving a
// partially-applied block behind.
func (e *Engine) WriteBlock(addr uint32, src []byte) Result {
	n := uint32(len(src))
	if n == 0 {
		return ok()
	}
	if addr >= e.density || uint64(addr)+uint64(n) > uint64(e.density) {
		return badAddress()
	}

	result := ok()
	i := uint32(0)

	if addr&1 != 0 {
		result = combine(result, e.WriteByte(addr, src[i]))
		addr++
		i++
	}
	for i+1 < n {
		w := uint16(src[i]) | uint16(src[i+1])<<8
		result = combine(result, e.WriteWord(addr, w))
		addr += 2
		i += 2
	}
	if i < n {
		result = combine(result, e.WriteByte(addr, src[i]))
	}
	return result
}

// UpdateBlock is WriteBlock for the AVR-style update_block naming; the
// underlying WriteByte/WriteWord calls already elide any byte or
// half-word that is unchanged.
func (e *Engine) UpdateBlock(addr uint32, src []byte) Result {
	return e.WriteBlock(addr, src)
}

// ReadDword returns the 32-bit little-endian value at addr, composing
// two word reads when addr is even or byte+word+byte when it is odd.
func (e *Engine) ReadDword(addr uint32) uint32 {
	var buf [4]byte
	e.ReadBlock(buf[:], addr)
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

// WriteDword writes the 32-bit little-endian value at addr.
func (e *Engine) WriteDword(addr uint32, value uint32) Result {
	buf := [4]byte{byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)}
	return e.WriteBlock(addr, buf[:])
}

// UpdateDword is WriteDword for the AVR-style update_dword naming.
func (e *Engine) UpdateDword(addr uint32, value uint32) Result {
	return e.WriteDword(addr, value)
}
