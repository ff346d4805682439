package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/sound"
	"github.com/palemoky/skull-king/internal/ui/view"
)

// Update handles tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ConnectedMsg:
		m.err = ""
		m.enterLobby()
		m.conn.StartHeartbeat()
		_ = m.conn.GetTableList()
		cmds = append(cmds, m.listen())

	case ConnectionErrorMsg:
		m.screen = view.ScreenConnecting
		m.err = fmt.Sprintf("与服务器的连接已断开: %v\n\n按 ESC 退出", msg.Err)

	case ServerMessage:
		cmds = append(cmds, m.handleServerMessage(msg.Msg), m.listen())

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}

	case spinner.TickMsg:
		if m.screen == view.ScreenConnecting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		handled, cmd := m.handleKey(msg)
		cmds = append(cmds, cmd)
		if handled {
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleServerMessage(msg *protocol.Message) tea.Cmd {
	if err := m.state.Apply(msg); err != nil {
		log.Warn("无法处理服务端消息", "type", msg.Type, "err", err)
		return nil
	}

	m.playCue(msg)

	switch msg.Type {
	case protocol.MsgTableJoined:
		m.err = ""
		m.enterTable()
	case protocol.MsgTableClosed:
		m.enterLobby()
		_ = m.conn.GetTableList()
		return m.setNotice("%s", m.lastEvent())
	case protocol.MsgState:
		m.err = ""
	case protocol.MsgStatsResult:
		m.screen = view.ScreenStats
	case protocol.MsgLeaderboardResult:
		m.screen = view.ScreenLeaderboard
	case protocol.MsgTableListResult:
		if m.selected >= len(m.state.Tables) && m.screen == view.ScreenTables {
			m.selected = max(len(m.state.Tables)-1, 0)
		}
	case protocol.MsgMaintenance:
		return m.setNotice("%s", m.lastEvent())
	case protocol.MsgError:
		m.err = m.state.LastError.Message
		if m.err == "" {
			m.err = protocol.ErrorMessages[m.state.LastError.Code]
		}
	}
	return nil
}

func (m *Model) playCue(msg *protocol.Message) {
	kraken := false
	if msg.Type == protocol.MsgTrickResult && m.state.LastTrick != nil {
		kraken = m.state.LastTrick.Kraken
	}
	if cue, ok := sound.CueFor(msg.Type, kraken); ok {
		m.sound.Play(cue)
	}
	// 轮到自己时额外提示
	if msg.Type == protocol.MsgState && (m.state.IsMyTurn() || m.state.NeedsBid()) {
		m.sound.Play(sound.CueYourTurn)
	}
}

func (m *Model) lastEvent() string {
	if n := len(m.state.Events); n > 0 {
		return m.state.Events[n-1]
	}
	return ""
}
