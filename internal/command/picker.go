// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sheetctl/sheetctl/internal/backup"
)

// SelectBackups runs a small picker over the backup copies and returns the
// two selections, or nil when the user bails out.
func SelectBackups(items []*backup.File) []*backup.File {
	p := tea.NewProgram(pickerModel{items: items})
	m, _ := p.Run()
	return m.(pickerModel).selected
}

type pickerModel struct {
	items    []*backup.File
	cursor   int
	selected []*backup.File
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "w":
			return m, tea.WindowSize()
		case "q", "esc":
			m.selected = nil
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if contains(m.selected, m.items[m.cursor]) {
				// Remove item from selected
				for i, f := range m.selected {
					if f.ID == m.items[m.cursor].ID {
						m.selected = append(m.selected[:i], m.selected[i+1:]...)
						break
					}
				}
			} else if len(m.selected) < 2 {
				m.selected = append(m.selected, m.items[m.cursor])
			}
		case "enter":
			if len(m.selected) == 2 {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := "Select two backups:\n\n"
	for i, f := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if contains(m.selected, f) {
			mark = "x"
		}

		s += fmt.Sprintf("%s [%s] %s %s\n", cursor, mark, f.Created.Format("2006-01-02T15:04:05Z"), f.Name)
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}

func contains(files []*backup.File, file *backup.File) bool {
	for _, f := range files {
		if f.ID == file.ID {
			return true
		}
	}
	return false
}
