package ui

import (
	"errors"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
	"github.com/palemoky/skull-king/internal/sound"
	"github.com/palemoky/skull-king/internal/ui/view"
)

// fakeTransport 记录发出的请求
type fakeTransport struct {
	msgs    chan *protocol.Message
	done    chan struct{}
	calls   []string
	sendErr error
	closed  bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{msgs: make(chan *protocol.Message, 8), done: make(chan struct{})}
}

func (f *fakeTransport) record(call string) error {
	f.calls = append(f.calls, call)
	return f.sendErr
}

func (f *fakeTransport) Connect() error                     { return nil }
func (f *fakeTransport) Messages() <-chan *protocol.Message { return f.msgs }
func (f *fakeTransport) Done() <-chan struct{}              { return f.done }
func (f *fakeTransport) StartHeartbeat()                    {}
func (f *fakeTransport) Latency() int64                     { return 12 }
func (f *fakeTransport) Close()                             { f.closed = true }
func (f *fakeTransport) CreateTable() error                 { return f.record("create") }
func (f *fakeTransport) JoinTable(id string) error          { return f.record("join " + id) }
func (f *fakeTransport) LeaveTable() error                  { return f.record("leave") }
func (f *fakeTransport) SetComputers(n int) error           { return f.record("computers " + itoa(n)) }
func (f *fakeTransport) Start() error                       { return f.record("start") }
func (f *fakeTransport) Reset() error                       { return f.record("reset") }
func (f *fakeTransport) GetTableList() error                { return f.record("tables") }
func (f *fakeTransport) Bid(n int) error                    { return f.record("bid " + itoa(n)) }
func (f *fakeTransport) Tigres(as string) error             { return f.record("tigres " + as) }
func (f *fakeTransport) PlayCard(i int) error               { return f.record("play " + itoa(i)) }
func (f *fakeTransport) GetState() error                    { return f.record("state") }
func (f *fakeTransport) GetStats() error                    { return f.record("stats") }
func (f *fakeTransport) GetLeaderboard(b string, _, _ int) error {
	return f.record("leaderboard " + b)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

type fakeCues struct{ played []sound.Cue }

func (c *fakeCues) Init() error        { return nil }
func (c *fakeCues) Play(cue sound.Cue) { c.played = append(c.played, cue) }
func (c *fakeCues) Close()             {}

func newTestModel(t *testing.T) (*Model, *fakeTransport, *fakeCues) {
	t.Helper()
	conn, cues := newFakeTransport(), &fakeCues{}
	m := newModel(conn, cues)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(ConnectedMsg{})
	serverMsg(m, protocol.MsgConnected, protocol.ConnectedPayload{PlayerID: "p1", PlayerName: "Anne"})
	conn.calls = nil
	return m, conn, cues
}

func serverMsg(m *Model, t protocol.MessageType, payload any) {
	m.Update(ServerMessage{Msg: codec.MustNewMessage(t, payload)})
}

func key(m *Model, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func typeLine(m *Model, text string) {
	m.input.SetValue(text)
	key(m, "enter")
}

func joinTable(m *Model) {
	serverMsg(m, protocol.MsgTableJoined, protocol.TableJoinedPayload{
		TableID: "ABC123", HostID: "p1", MaxSeats: 6,
		Players: []protocol.PlayerInfo{{ID: "p1", Name: "Anne", Host: true, Bid: -1}},
	})
}

func TestParseCommand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    command
		wantErr bool
	}{
		{"3", command{kind: cmdNumber, n: 3}, false},
		{" S ", command{kind: cmdStart}, false},
		{"reset", command{kind: cmdReset}, false},
		{"c 2", command{kind: cmdComputers, n: 2}, false},
		{"p", command{kind: cmdTigres, as: "pirate"}, false},
		{"escape", command{kind: cmdTigres, as: "escape"}, false},
		{"l", command{kind: cmdLeave}, false},
		{"c", command{}, true},
		{"c two", command{}, true},
		{"", command{}, true},
		{"fly away", command{}, true},
	}
	for _, tt := range tests {
		got, err := parseCommand(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestModel_ConnectAndLobbyMenu(t *testing.T) {
	t.Parallel()
	m, conn, _ := newTestModel(t)

	assert.Equal(t, view.ScreenLobby, m.screen)
	assert.Equal(t, "p1", m.state.MyID)
	assert.Contains(t, m.View(), "Anne")

	key(m, "enter")
	assert.Equal(t, []string{"create"}, conn.calls)

	key(m, "down")
	key(m, "enter")
	assert.Equal(t, view.ScreenTables, m.screen)
	assert.Equal(t, "tables", conn.calls[len(conn.calls)-1])

	key(m, "esc")
	assert.Equal(t, view.ScreenLobby, m.screen)

	// 直接输入牌桌号加入
	typeLine(m, "abc123")
	assert.Equal(t, "join ABC123", conn.calls[len(conn.calls)-1])

	key(m, "up")
	assert.Equal(t, len(view.MenuItems)-1, m.selected)
}

func TestModel_TablesScreen(t *testing.T) {
	t.Parallel()
	m, conn, _ := newTestModel(t)
	m.selected = 1
	key(m, "enter")

	serverMsg(m, protocol.MsgTableListResult, protocol.TableListResultPayload{Tables: []protocol.TableListItem{
		{TableID: "AAAAAA", HostName: "Mary", Phase: "ready", Players: 1, MaxSeats: 6},
		{TableID: "BBBBBB", HostName: "Jack", Phase: "putting", Round: 3, Players: 2, MaxSeats: 6},
	}})
	assert.Contains(t, m.View(), "BBBBBB")

	key(m, "down")
	key(m, "enter")
	assert.Equal(t, "join BBBBBB", conn.calls[len(conn.calls)-1])

	key(m, "r")
	assert.Equal(t, "tables", conn.calls[len(conn.calls)-1])
}

func TestModel_TableCommands(t *testing.T) {
	t.Parallel()
	m, conn, cues := newTestModel(t)
	joinTable(m)
	assert.Equal(t, view.ScreenTable, m.screen)
	assert.Contains(t, m.View(), "ABC123")

	typeLine(m, "c 2")
	typeLine(m, "s")
	assert.Equal(t, []string{"computers 2", "start"}, conn.calls)

	// 预测阶段数字即预测
	serverMsg(m, protocol.MsgState, protocol.StatePayload{
		TableID: "ABC123", HostID: "p1", Phase: "expecting", Round: 2, MaxRounds: 10,
		Players: []protocol.PlayerInfo{{ID: "p1", Name: "Anne", Host: true, Bid: -1}},
		Hand: []protocol.HandCard{
			{Card: protocol.CardInfo{ID: 59, Kind: "tigres", Label: "蒂格雷丝"}},
			{Card: protocol.CardInfo{ID: 3, Kind: "suit", Color: "green", Number: 4, Label: "绿4"}},
		},
		PendingBidders: []string{"p1"},
	})
	assert.Contains(t, cues.played, sound.CueYourTurn)
	assert.Contains(t, m.View(), "输入预测墩数")

	typeLine(m, "1")
	typeLine(m, "e")
	assert.Equal(t, []string{"bid 1", "tigres escape"}, conn.calls[2:])

	// 出牌阶段数字为手牌序号，从 1 开始
	serverMsg(m, protocol.MsgState, protocol.StatePayload{
		TableID: "ABC123", HostID: "p1", Phase: "putting", Round: 2, CurrentTurn: "p1",
		Players: []protocol.PlayerInfo{{ID: "p1", Name: "Anne", Host: true, Bid: 1}},
		Hand: []protocol.HandCard{
			{Card: protocol.CardInfo{ID: 59, Kind: "tigres", Tigres: "escape", Label: "蒂格雷丝"}, Legal: true},
			{Card: protocol.CardInfo{ID: 3, Kind: "suit", Color: "green", Number: 4, Label: "绿4"}, Legal: true},
		},
	})
	typeLine(m, "2")
	assert.Equal(t, "play 1", conn.calls[len(conn.calls)-1])

	calls := len(conn.calls)
	typeLine(m, "9")
	assert.Len(t, conn.calls, calls)
	assert.Contains(t, m.notice, "1-2")

	key(m, "tab")
	assert.True(t, m.showCounter)
	assert.Contains(t, m.View(), "记牌器")
}

func TestModel_ServerErrorsAndClose(t *testing.T) {
	t.Parallel()
	m, conn, cues := newTestModel(t)
	joinTable(m)

	serverMsg(m, protocol.MsgError, protocol.ErrorPayload{Code: protocol.ErrCodeInvalidBid, Message: "预测无效"})
	assert.Equal(t, "预测无效", m.err)
	assert.Contains(t, cues.played, sound.CueError)
	assert.Contains(t, m.View(), "预测无效")

	serverMsg(m, protocol.MsgTableClosed, protocol.TableClosedPayload{TableID: "ABC123", Reason: "Mary 掉线，对局中止"})
	assert.Equal(t, view.ScreenLobby, m.screen)
	assert.Contains(t, m.notice, "掉线")
	assert.Equal(t, "tables", conn.calls[len(conn.calls)-1])
	assert.False(t, m.state.InTable())
}

func TestModel_LeaveWithEsc(t *testing.T) {
	t.Parallel()
	m, conn, _ := newTestModel(t)
	joinTable(m)

	key(m, "esc")
	assert.Equal(t, []string{"leave", "tables"}, conn.calls)
	assert.Equal(t, view.ScreenLobby, m.screen)
	assert.False(t, m.state.InTable())

	key(m, "esc")
	assert.True(t, conn.closed)
}

func TestModel_StatsAndLeaderboard(t *testing.T) {
	t.Parallel()
	m, conn, _ := newTestModel(t)

	m.selected = 2
	key(m, "enter")
	serverMsg(m, protocol.MsgStatsResult, protocol.StatsResultPayload{PlayerID: "p1", Rank: 4, Rating: 120, AverageRound: 12.5})
	assert.Equal(t, view.ScreenStats, m.screen)
	assert.Contains(t, m.View(), "12.5")

	key(m, "esc")
	m.selected = 3
	key(m, "enter")
	assert.Equal(t, "leaderboard total", conn.calls[len(conn.calls)-1])
	serverMsg(m, protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Type:    "total",
		Entries: []protocol.LeaderboardEntry{{Rank: 1, PlayerID: "p2", PlayerName: "Mary", Rating: 300}},
	})
	assert.Equal(t, view.ScreenLeaderboard, m.screen)
	assert.Contains(t, m.View(), "Mary")

	key(m, "tab")
	assert.Equal(t, "leaderboard daily", conn.calls[len(conn.calls)-1])
}

func TestModel_SendFailure(t *testing.T) {
	t.Parallel()
	m, conn, _ := newTestModel(t)
	conn.sendErr = errors.New("send buffer full")

	key(m, "enter")
	assert.Contains(t, m.notice, "send buffer full")
}

func TestModel_ConnectionLost(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)

	m.Update(ConnectionErrorMsg{Err: errors.New("boom")})
	assert.Equal(t, view.ScreenConnecting, m.screen)
	assert.Contains(t, m.View(), "boom")
}
