/*
 * feeprom - Hex dump of the RAM image
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

//go:build feedebug

// Package hexdump renders the RAM image as a 16-byte-per-row hex/ASCII
// dump, the way a debug build would print flash contents to a console.
// It is only compiled into feedebug builds; the non-debug stub in
// hexdump_stub.go keeps the call sites unconditional.
package hexdump

import "strings"

var hexMap = "0123456789abcdef"

// Dump renders data as a classic hex/ASCII dump starting at baseAddr.
// Runs of 16 consecutive all-zero bytes collapse to a single "*" line,
// except the final row, which always prints so the reader sees where
// the dump actually ends.
func Dump(data []byte, baseAddr uint32) string {
	var out strings.Builder
	skipped := false

	for offset := 0; offset < len(data); offset += 16 {
		end := offset + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[offset:end]
		last := end == len(data)

		if !last && isZeroRow(row) && len(row) == 16 {
			if !skipped {
				out.WriteByte('*')
				out.WriteByte('\n')
				skipped = true
			}
			continue
		}
		skipped = false

		writeAddr(&out, baseAddr+uint32(offset))
		out.WriteString("  ")
		writeHexRow(&out, row)
		out.WriteString(" |")
		writeASCIIRow(&out, row)
		out.WriteByte('|')
		out.WriteByte('\n')
	}
	return out.String()
}

func isZeroRow(row []byte) bool {
	for _, b := range row {
		if b != 0 {
			return false
		}
	}
	return true
}

func writeAddr(out *strings.Builder, addr uint32) {
	shift := 28
	for range 8 {
		out.WriteByte(hexMap[(addr>>shift)&0xf])
		shift -= 4
	}
}

func writeHexRow(out *strings.Builder, row []byte) {
	for i := 0; i < 16; i++ {
		if i > 0 && i%8 == 0 {
			out.WriteByte(' ')
		}
		if i < len(row) {
			out.WriteByte(hexMap[row[i]>>4])
			out.WriteByte(hexMap[row[i]&0xf])
		} else {
			out.WriteByte(' ')
			out.WriteByte(' ')
		}
		out.WriteByte(' ')
	}
}

func writeASCIIRow(out *strings.Builder, row []byte) {
	for _, b := range row {
		if b >= 0x20 && b < 0x7F {
			out.WriteByte(b)
		} else {
			out.WriteByte('.')
		}
	}
}
