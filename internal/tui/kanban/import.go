package kanban

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kban/internal/kanban/transfer"
	"kban/internal/logs"
	"kban/internal/settings"
	"kban/internal/tui/messages"
)

// startImport reads the import file once the "importing" indicator has been
// shown for transfer.DoneDelay
func (m BoardModel) startImport() (BoardModel, tea.Cmd) {
	wait, ok := m.pacer.Begin()
	if !ok {
		return m, nil
	}

	path, now := m.importPath, m.now()
	return m, tea.Tick(wait, func(time.Time) tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return messages.ImportResultMsg{Path: path, Err: err}
		}
		p, err := transfer.Import(data, now)
		return messages.ImportResultMsg{Path: path, Payload: p, Err: err}
	})
}

func (m BoardModel) applyImport(msg messages.ImportResultMsg) (BoardModel, tea.Cmd) {
	log := logs.Logger.WithField("path", msg.Path)
	err := msg.Err

	if err == nil && msg.Payload.HasBoard {
		m.board.SetColumns(msg.Payload.Columns)
		if saveErr := m.board.LastError(); saveErr != nil {
			err = fmt.Errorf("board not saved: %w", saveErr)
		}
		m.reloadBoardState()
	}
	var cmds []tea.Cmd
	if err == nil && msg.Payload.HasSettings {
		if saveErr := settings.Save(m.store, msg.Payload.Settings); saveErr != nil {
			err = fmt.Errorf("save settings: %w", saveErr)
		}
		cmds = append(cmds, func() tea.Msg { return messages.SettingsChangedMsg{} })
	}

	if err != nil {
		log.WithError(err).Warn("import failed")
	} else {
		log.WithField("version", msg.Payload.Version).Info("import applied")
	}

	reset := m.pacer.Finish(err)
	cmds = append(cmds, tea.Tick(reset, func(time.Time) tea.Msg {
		return messages.ImportResetMsg{}
	}))
	return m, tea.Batch(cmds...)
}
