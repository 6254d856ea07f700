/*
 * feeprom - Interactive hex viewer
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

//go:build feetui

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rcornwell/feeprom"
)

const rowsPerPage = 16

var (
	addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	curStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	headStyle = lipgloss.NewStyle().Bold(true)
)

type viewerModel struct {
	engine *feeprom.Engine
	offset uint32
	err    error
}

func (m viewerModel) Init() tea.Cmd { return nil }

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.offset = clampOffset(m.engine, m.offset+16)
	case "k", "up":
		m.offset = clampOffset(m.engine, m.offset-16)
	case "pgdown":
		m.offset = clampOffset(m.engine, m.offset+16*rowsPerPage)
	case "pgup":
		m.offset = clampOffset(m.engine, m.offset-16*rowsPerPage)
	case "c":
		m.engine.Compact()
	}
	return m, nil
}

func clampOffset(engine *feeprom.Engine, offset uint32) uint32 {
	density := engine.Density()
	if offset > density {
		return 0
	}
	return offset
}

func (m viewerModel) View() string {
	var rows []string
	rows = append(rows, headStyle.Render("addr     00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f"))

	density := m.engine.Density()
	for row := 0; row < rowsPerPage; row++ {
		addr := m.offset + uint32(row*16)
		if addr >= density {
			break
		}
		var line string
		for col := uint32(0); col < 16 && addr+col < density; col++ {
			line += fmt.Sprintf("%02x ", m.engine.ReadByte(addr+col))
		}
		rows = append(rows, fmt.Sprintf("%s  %s", addrStyle.Render(fmt.Sprintf("%08x", addr)), line))
	}
	rows = append(rows, "", curStyle.Render("j/k scroll, pgup/pgdn page, c compact, q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RunViewer starts the full-screen hex viewer over engine.
func RunViewer(engine *feeprom.Engine) error {
	_, err := tea.NewProgram(viewerModel{engine: engine}).Run()
	return err
}
