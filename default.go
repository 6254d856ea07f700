/*
 * feeprom - Package-level default instance
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

// default_ fronts a single process-wide Engine for callers that want
// the source's original module-level-singleton surface instead of
// carrying an *Engine reference around. New code should prefer New and
// hold its own *Engine; this exists for parity with the teacher's own
// coexistence of a singleton style (emu/memory) next to an
// instance-owning style (internal/cpu.CPU) for the same kind of state.
var default_ *Engine

// Init builds the package-level default Engine from cfg and returns
// its logical density, the Go analogue of the source's init() ->
// density entry point.
func Init(cfg Config) (uint32, error) {
	e, err := New(cfg)
	if err != nil {
		return 0, err
	}
	default_ = e
	return e.Density(), nil
}

// Default returns the package-level Engine built by Init, or nil if
// Init has not been called yet.
func Default() *Engine { return default_ }

func ReadByte(addr uint32) byte                    { return default_.ReadByte(addr) }
func ReadWord(addr uint32) uint16                  { return default_.ReadWord(addr) }
func WriteByte(addr uint32, value byte) Result     { return default_.WriteByte(addr, value) }
func WriteWord(addr uint32, value uint16) Result   { return default_.WriteWord(addr, value) }
func UpdateByte(addr uint32, value byte) Result    { return default_.UpdateByte(addr, value) }
func UpdateWord(addr uint32, value uint16) Result  { return default_.UpdateWord(addr, value) }
func ReadBlock(dst []byte, addr uint32)            { default_.ReadBlock(dst, addr) }
func WriteBlock(addr uint32, src []byte) Result    { return default_.WriteBlock(addr, src) }
func UpdateBlock(addr uint32, src []byte) Result   { return default_.UpdateBlock(addr, src) }
func ReadDword(addr uint32) uint32                 { return default_.ReadDword(addr) }
func WriteDword(addr uint32, value uint32) Result  { return default_.WriteDword(addr, value) }
func UpdateDword(addr uint32, value uint32) Result { return default_.UpdateDword(addr, value) }
func Erase()                                       { default_.Erase() }
func Compact()                                     { default_.Compact() }
