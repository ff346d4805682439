package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/skull-king/internal/client"
	"github.com/palemoky/skull-king/internal/ui/view"
)

// 排行榜类型，与服务端一致
var boards = []string{"total", "daily", "weekly"}

const leaderboardLimit = 20

type commandKind int

const (
	cmdNumber commandKind = iota
	cmdStart
	cmdReset
	cmdLeave
	cmdComputers
	cmdTigres
	cmdState
)

type command struct {
	kind commandKind
	n    int
	as   string
}

var commandWords = map[string]command{
	"s":      {kind: cmdStart},
	"start":  {kind: cmdStart},
	"r":      {kind: cmdReset},
	"reset":  {kind: cmdReset},
	"l":      {kind: cmdLeave},
	"leave":  {kind: cmdLeave},
	"p":      {kind: cmdTigres, as: "pirate"},
	"pirate": {kind: cmdTigres, as: "pirate"},
	"e":      {kind: cmdTigres, as: "escape"},
	"escape": {kind: cmdTigres, as: "escape"},
	"g":      {kind: cmdState},
}

// parseCommand 解析牌桌中输入的指令
func parseCommand(text string) (command, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return command{}, errors.New("请输入指令")
	}

	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		return command{kind: cmdNumber, n: n}, nil
	}
	if fields[0] == "c" || fields[0] == "computers" {
		if len(fields) != 2 {
			return command{}, errors.New("用法: c <电脑数量>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return command{}, fmt.Errorf("无效的数量: %s", fields[1])
		}
		return command{kind: cmdComputers, n: n}, nil
	}
	if cmd, ok := commandWords[fields[0]]; ok && len(fields) == 1 {
		return cmd, nil
	}
	return command{}, fmt.Errorf("未知指令: %s", text)
}

func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quit()
		return true, tea.Quit
	case "esc":
		return true, m.back()
	}

	switch m.screen {
	case view.ScreenLobby:
		return m.lobbyKey(msg)
	case view.ScreenTables:
		return true, m.tablesKey(msg)
	case view.ScreenLeaderboard:
		if msg.String() == "tab" {
			m.board = (m.board + 1) % len(boards)
			_ = m.conn.GetLeaderboard(boards[m.board], 0, leaderboardLimit)
		}
		return true, nil
	case view.ScreenTable:
		return m.tableKey(msg)
	}
	return true, nil
}

func (m *Model) quit() {
	m.conn.Close()
	m.sound.Close()
}

// back ESC 返回上一级，大厅与连接页直接退出
func (m *Model) back() tea.Cmd {
	switch m.screen {
	case view.ScreenConnecting, view.ScreenLobby:
		m.quit()
		return tea.Quit
	case view.ScreenTable:
		_ = m.conn.LeaveTable()
		m.state.LeaveTable()
	}
	m.err = ""
	m.enterLobby()
	_ = m.conn.GetTableList()
	return nil
}

func (m *Model) lobbyKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.selected = (m.selected + len(view.MenuItems) - 1) % len(view.MenuItems)
		return true, nil
	case "down":
		m.selected = (m.selected + 1) % len(view.MenuItems)
		return true, nil
	case "enter":
	default:
		return false, nil
	}

	if id := strings.ToUpper(strings.TrimSpace(m.input.Value())); id != "" {
		m.input.Reset()
		return true, m.send(m.conn.JoinTable(id))
	}

	switch m.selected {
	case 0:
		return true, m.send(m.conn.CreateTable())
	case 1:
		m.screen = view.ScreenTables
		m.selected = 0
		return true, m.send(m.conn.GetTableList())
	case 2:
		m.state.Stats = nil
		return true, m.send(m.conn.GetStats())
	case 3:
		m.state.Leaderboard = nil
		m.board = 0
		return true, m.send(m.conn.GetLeaderboard(boards[m.board], 0, leaderboardLimit))
	default:
		m.quit()
		return true, tea.Quit
	}
}

func (m *Model) tablesKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.state.Tables)
	switch msg.String() {
	case "up":
		if n > 0 {
			m.selected = (m.selected + n - 1) % n
		}
	case "down":
		if n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case "r":
		return m.send(m.conn.GetTableList())
	case "enter":
		if m.selected < n {
			return m.send(m.conn.JoinTable(m.state.Tables[m.selected].TableID))
		}
	}
	return nil
}

func (m *Model) tableKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.showCounter = !m.showCounter
		return true, nil
	case "enter":
		text := m.input.Value()
		m.input.Reset()
		cmd, err := parseCommand(text)
		if err != nil {
			return true, m.setNotice("%v", err)
		}
		return true, m.run(cmd)
	}
	return false, nil
}

// run 根据当前局面执行指令
func (m *Model) run(cmd command) tea.Cmd {
	gs := m.state
	switch cmd.kind {
	case cmdNumber:
		switch {
		case gs.NeedsBid():
			return m.send(m.conn.Bid(cmd.n))
		case gs.Phase == client.PhasePutting:
			if cmd.n < 1 || cmd.n > len(gs.Hand) {
				return m.setNotice("手牌序号应在 1-%d 之间", len(gs.Hand))
			}
			return m.send(m.conn.PlayCard(cmd.n - 1))
		}
		return m.setNotice("现在不需要输入数字")
	case cmdStart:
		return m.send(m.conn.Start())
	case cmdReset:
		return m.send(m.conn.Reset())
	case cmdLeave:
		return m.back()
	case cmdComputers:
		return m.send(m.conn.SetComputers(cmd.n))
	case cmdTigres:
		return m.send(m.conn.Tigres(cmd.as))
	case cmdState:
		return m.send(m.conn.GetState())
	}
	return nil
}

// send 发送失败时提示
func (m *Model) send(err error) tea.Cmd {
	if err != nil {
		return m.setNotice("⚠️ 发送失败: %v", err)
	}
	return nil
}
