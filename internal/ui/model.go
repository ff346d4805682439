// Package ui is the bubbletea terminal client.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/skull-king/internal/client"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/sound"
	"github.com/palemoky/skull-king/internal/transport"
	"github.com/palemoky/skull-king/internal/ui/view"
)

const noticeTTL = 3 * time.Second

// Transport 客户端到服务端的连接，*transport.Client 满足该接口
type Transport interface {
	Connect() error
	Messages() <-chan *protocol.Message
	Done() <-chan struct{}
	StartHeartbeat()
	Latency() int64
	Close()

	CreateTable() error
	JoinTable(tableID string) error
	LeaveTable() error
	SetComputers(count int) error
	Start() error
	Reset() error
	GetTableList() error
	Bid(n int) error
	Tigres(as string) error
	PlayCard(index int) error
	GetState() error
	GetStats() error
	GetLeaderboard(boardType string, offset, limit int) error
}

// CuePlayer 播放提示音
type CuePlayer interface {
	Init() error
	Play(sound.Cue)
	Close()
}

// --- Tea Messages ---

// ServerMessage wraps a protocol message for tea.Msg.
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates a connection error.
type ConnectionErrorMsg struct {
	Err error
}

// clearNoticeMsg 清除 seq 对应的临时通知，新通知会使旧的过期
type clearNoticeMsg struct {
	seq int
}

// Model 终端客户端
type Model struct {
	conn  Transport
	sound CuePlayer
	state *client.GameState

	screen      view.Screen
	selected    int
	board       int // 排行榜类型下标
	showCounter bool

	notice    string
	noticeSeq int
	err       string

	input   textinput.Model
	spinner spinner.Model
	width   int
}

// NewModel 连接 serverURL 的客户端
func NewModel(serverURL string) *Model {
	return newModel(transport.NewClient(serverURL), sound.NewPlayer())
}

func newModel(conn Transport, cues CuePlayer) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入选项或牌桌号"
	ti.CharLimit = 16
	ti.Width = 30
	ti.Focus()

	return &Model{
		conn:    conn,
		sound:   cues,
		state:   client.NewGameState(),
		screen:  view.ScreenConnecting,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *Model) Init() tea.Cmd {
	go func() {
		_ = m.sound.Init()
	}()

	return tea.Batch(m.connect(), textinput.Blink, m.spinner.Tick)
}

func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		if err := m.conn.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.conn.Messages():
			return ServerMessage{Msg: msg}
		case <-m.conn.Done():
			return ConnectionErrorMsg{Err: transport.ErrClosed}
		}
	}
}

// setNotice 显示一条临时通知
func (m *Model) setNotice(format string, args ...any) tea.Cmd {
	m.notice = fmt.Sprintf(format, args...)
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

func (m *Model) enterLobby() {
	m.screen = view.ScreenLobby
	m.selected = 0
	m.input.Reset()
	m.input.Placeholder = "输入选项或牌桌号"
}

func (m *Model) enterTable() {
	m.screen = view.ScreenTable
	m.input.Reset()
	m.input.Placeholder = "输入指令"
}

// View renders the model.
func (m *Model) View() string {
	f := view.Frame{
		Screen:      m.screen,
		Width:       m.width,
		State:       m.state,
		Spinner:     m.spinner.View(),
		Notice:      m.notice,
		Error:       m.err,
		Latency:     m.conn.Latency(),
		Selected:    m.selected,
		ShowCounter: m.showCounter,
	}
	if m.screen == view.ScreenLobby || m.screen == view.ScreenTable {
		f.Input = m.input.View()
	}
	return view.Render(f)
}
