package main

type Command int

const (
	CmdNone Command = iota
	CmdJump
	CmdSearch
	CmdFilter
	CmdHideColumn
	CmdShowColumn
	CmdDateRange
)

type CommandInput struct {
	cmd Command
	buf string
}

func CommandFromPrefix(r rune) Command {
	switch r {
	case ':':
		return CmdJump
	case '/':
		return CmdSearch
	case '-':
		return CmdHideColumn
	case '+':
		return CmdShowColumn
	default:
		return CmdNone
	}
}

func (m *model) commandBadge(cmd Command) string {
	switch cmd {
	case CmdSearch:
		return "[SEARCH]"
	case CmdFilter:
		return "[FILTER]"
	case CmdJump:
		return "[JUMP]"
	case CmdHideColumn:
		return "[HIDE]"
	case CmdShowColumn:
		return "[SHOW]"
	default:
		return "[NORMAL]"
	}
}

func (m *model) commandPrompt(cmd Command) string {
	switch cmd {
	case CmdSearch:
		return "search: "
	case CmdFilter:
		return "filter: "
	case CmdJump:
		return "line: "
	case CmdHideColumn, CmdShowColumn:
		return "column: "
	default:
		return ""
	}
}

func (m *model) commandHintsLine(cmd Command) string {
	switch cmd {
	case CmdHideColumn, CmdShowColumn:
		return "enter: apply (column label)   esc: cancel"
	case CmdJump:
		return "enter: jump (line number, or fit [column|off])   esc: cancel"
	default:
		return "enter: apply   esc: cancel"
	}
}

// activeCommandLine returns the command prompt text for the footer status line.
func (m *model) activeCommandLine() string {
	badge := m.commandBadge(m.ui.command.cmd)
	prompt := m.commandPrompt(m.ui.command.cmd)
	return badge + " " + prompt + m.ui.command.buf
}
