package messages

import "kban/internal/kanban/transfer"

// ImportResultMsg carries a parsed import document, or the reason it could
// not be read.
type ImportResultMsg struct {
	Path    string
	Payload transfer.Payload
	Err     error
}

// ImportResetMsg clears the import indicator
type ImportResetMsg struct{}

// SettingsChangedMsg is sent after a display setting has been saved
type SettingsChangedMsg struct{}
