package main

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) startCommand(cmd Command) {
	m.ui.command = CommandInput{cmd: cmd}
	m.ui.mode = modeCommand
}

func (m *model) runCommand() tea.Cmd {
	switch m.ui.command.cmd {
	case CmdJump:
		if arg, ok := strings.CutPrefix(strings.TrimSpace(m.ui.command.buf), "fit"); ok && (arg == "" || arg[0] == ' ') {
			return m.runFitCommand(arg)
		}
		if n, err := strconv.Atoi(m.ui.command.buf); err == nil {
			return m.jumpToLine(n)
		}
		return m.startNotice("Invalid line number", noticeWarn, noticeDuration)

	case CmdSearch:
		return m.searchOnce(m.ui.command.buf)

	case CmdFilter:
		if err := m.setFilterPattern(m.ui.command.buf); err != nil {
			return m.startNotice("Invalid filter: "+err.Error(), noticeError, noticeDuration)
		}
		return nil

	case CmdHideColumn:
		return m.setColumnVisibleByLabel(m.ui.command.buf, false)

	case CmdShowColumn:
		return m.setColumnVisibleByLabel(m.ui.command.buf, true)
	}
	return nil
}

func (m *model) exitCommandMode() {
	m.ui.command = CommandInput{}
	m.ui.mode = modeView
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// universal cancel
	if msg.Type == tea.KeyEsc {
		m.exitCommandMode()
		return m, nil
	}

	// commit
	if msg.Type == tea.KeyEnter {
		cmd := m.runCommand() // returns tea.Cmd or nil
		m.exitCommandMode()
		m.refreshView("command", false)
		return m, cmd
	}

	// editing
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(m.ui.command.buf); len(r) > 0 {
			m.ui.command.buf = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.ui.command.buf += " "
		return m, nil
	}

	// append printable rune
	if len(msg.Runes) == 1 {
		m.ui.command.buf += string(msg.Runes[0])
	}
	return m, nil
}
