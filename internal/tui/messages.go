package tui

import tea "github.com/charmbracelet/bubbletea"

// NavigateTo switches the RootModel to another page. Payload, when set, is
// re-delivered to the target page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult is produced by the async login command.
type LoginResult struct {
	Err      error
	Username string
	UserID   int64
}

// RegisterResult is produced by the async registration command. A successful
// registration also signs the client in.
type RegisterResult struct {
	Err      error
	Username string
	UserID   int64
}
