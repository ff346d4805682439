package handler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
	"github.com/palemoky/skull-king/internal/session"
	"github.com/palemoky/skull-king/internal/storage"
	"github.com/palemoky/skull-king/internal/testutil"
)

type testEnv struct {
	h       *Handler
	server  *testutil.MockServer
	board   *testutil.MockLeaderboard
	history *testutil.MockHistory
}

func newTestEnv(t *testing.T, cfg match.Config, maintenance bool) *testEnv {
	t.Helper()
	tables := session.NewManager(session.Options{
		Match:     cfg,
		NewSource: func() card.Source { return card.NewSource(3) },
	})
	t.Cleanup(tables.Close)

	srv := new(testutil.MockServer)
	srv.On("IsMaintenanceMode").Return(maintenance).Maybe()
	srv.On("BroadcastToLobby", mock.Anything).Return().Maybe()

	env := &testEnv{
		server:  srv,
		board:   new(testutil.MockLeaderboard),
		history: new(testutil.MockHistory),
	}
	env.h = NewHandler(HandlerDeps{
		Server:      srv,
		Tables:      tables,
		Leaderboard: env.board,
		History:     env.history,
	})
	return env
}

func msgOf(t protocol.MessageType, payload any) *protocol.Message {
	return codec.MustNewMessage(t, payload)
}

func parse[T any](t *testing.T, msg *protocol.Message) *T {
	t.Helper()
	require.NotNil(t, msg)
	p, err := codec.ParsePayload[T](msg)
	require.NoError(t, err)
	return p
}

func lastOfType[T any](t *testing.T, c *testutil.SimpleClient, mt protocol.MessageType) *T {
	t.Helper()
	msgs := c.MessagesOfType(mt)
	require.NotEmpty(t, msgs, "%s 没有收到 %s", c.Name, mt)
	return parse[T](t, msgs[len(msgs)-1])
}

func errorCode(t *testing.T, c *testutil.SimpleClient) int {
	t.Helper()
	last := c.LastMessage()
	require.NotNil(t, last)
	require.Equal(t, protocol.MsgError, last.Type)
	return parse[protocol.ErrorPayload](t, last).Code
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("等待异步写入超时")
	}
	var zero T
	return zero
}

// seat 创建牌桌并让其余玩家加入
func (e *testEnv) seat(t *testing.T, host *testutil.SimpleClient, others ...*testutil.SimpleClient) string {
	t.Helper()
	e.h.Handle(host, msgOf(protocol.MsgCreateTable, nil))
	id := host.GetTable()
	require.NotEmpty(t, id)
	for _, c := range others {
		e.h.Handle(c, msgOf(protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: id}))
		require.Equal(t, id, c.GetTable())
	}
	return id
}

func TestHandle_UnknownType(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	c := testutil.NewSimpleClient("p1", "Anne")

	env.h.Handle(c, &protocol.Message{Type: "hoist_sails"})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c))
}

func TestHandlePing(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	c := testutil.NewSimpleClient("p1", "Anne")

	env.h.Handle(c, msgOf(protocol.MsgPing, protocol.PingPayload{Timestamp: 42}))
	pong := lastOfType[protocol.PongPayload](t, c, protocol.MsgPong)
	assert.Equal(t, int64(42), pong.ClientTimestamp)
	assert.NotZero(t, pong.ServerTimestamp)
}

func TestCreateAndJoinTable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	mary := testutil.NewSimpleClient("p2", "Mary")

	id := env.seat(t, anne, mary)

	joined := lastOfType[protocol.TableJoinedPayload](t, mary, protocol.MsgTableJoined)
	assert.Equal(t, id, joined.TableID)
	assert.Equal(t, "p1", joined.HostID)
	require.Len(t, joined.Players, 2)
	assert.True(t, joined.Players[0].Host)
	assert.Equal(t, 6, joined.MaxSeats)

	other := lastOfType[protocol.PlayerJoinedPayload](t, anne, protocol.MsgPlayerJoined)
	assert.Equal(t, "Mary", other.Player.Name)

	env.server.AssertCalled(t, "BroadcastToLobby", mock.Anything)
}

func TestJoinTable_Errors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	c := testutil.NewSimpleClient("p1", "Anne")

	env.h.Handle(c, &protocol.Message{Type: protocol.MsgJoinTable})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c))

	env.h.Handle(c, msgOf(protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: "NOPE00"}))
	assert.Equal(t, protocol.ErrCodeTableNotFound, errorCode(t, c))
}

func TestCreateTable_Maintenance(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), true)
	c := testutil.NewSimpleClient("p1", "Anne")

	env.h.Handle(c, msgOf(protocol.MsgCreateTable, nil))
	assert.Equal(t, protocol.ErrCodeServerMaintenance, errorCode(t, c))
	assert.Empty(t, c.GetTable())
}

func TestSetComputers(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	mary := testutil.NewSimpleClient("p2", "Mary")
	env.seat(t, anne, mary)

	env.h.Handle(mary, msgOf(protocol.MsgSetComputers, protocol.SetComputersPayload{Count: 2}))
	assert.Equal(t, protocol.ErrCodeNotHost, errorCode(t, mary))

	env.h.Handle(anne, msgOf(protocol.MsgSetComputers, protocol.SetComputersPayload{Count: 5}))
	assert.Equal(t, protocol.ErrCodeTooManySeats, errorCode(t, anne))

	env.h.Handle(anne, msgOf(protocol.MsgSetComputers, protocol.SetComputersPayload{Count: 2}))
	for _, c := range []*testutil.SimpleClient{anne, mary} {
		set := lastOfType[protocol.ComputersSetPayload](t, c, protocol.MsgComputersSet)
		assert.Equal(t, 2, set.Count)
	}
}

func TestStart_Errors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	mary := testutil.NewSimpleClient("p2", "Mary")

	env.h.Handle(anne, msgOf(protocol.MsgStart, nil))
	assert.Equal(t, protocol.ErrCodeNotInTable, errorCode(t, anne))

	env.seat(t, anne)
	env.h.Handle(anne, msgOf(protocol.MsgStart, nil))
	assert.Equal(t, protocol.ErrCodeInsufficientPlayers, errorCode(t, anne))

	env.h.Handle(mary, msgOf(protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: anne.GetTable()}))
	env.h.Handle(mary, msgOf(protocol.MsgStart, nil))
	assert.Equal(t, protocol.ErrCodeNotHost, errorCode(t, mary))
}

func TestBidAndTigres_StateMismatch(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	env.seat(t, anne)

	env.h.Handle(anne, msgOf(protocol.MsgBid, protocol.BidPayload{Bid: 0}))
	assert.Equal(t, protocol.ErrCodeStateMismatch, errorCode(t, anne))

	env.h.Handle(anne, msgOf(protocol.MsgTigres, protocol.TigresPayload{As: "banana"}))
	assert.Equal(t, protocol.ErrCodeStateMismatch, errorCode(t, anne))

	env.h.Handle(anne, msgOf(protocol.MsgPlayCard, protocol.PlayCardPayload{Index: 0}))
	assert.Equal(t, protocol.ErrCodeStateMismatch, errorCode(t, anne))
}

func TestGetState(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")

	env.h.Handle(anne, msgOf(protocol.MsgGetState, nil))
	assert.Equal(t, protocol.ErrCodeNotInTable, errorCode(t, anne))

	id := env.seat(t, anne)
	env.h.Handle(anne, msgOf(protocol.MsgGetState, nil))
	state := lastOfType[protocol.StatePayload](t, anne, protocol.MsgState)
	assert.Equal(t, id, state.TableID)
	assert.Equal(t, "ready", state.Phase)
	assert.Equal(t, "p1", state.HostID)
	assert.Empty(t, state.Hand)
}

func TestInvalidBid_KeepsState(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.Config{MaxRounds: 2, MaxSeats: 6, MinSeats: 2}, false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	mary := testutil.NewSimpleClient("p2", "Mary")
	env.seat(t, anne, mary)

	env.h.Handle(anne, msgOf(protocol.MsgStart, nil))
	state := lastOfType[protocol.StatePayload](t, anne, protocol.MsgState)
	require.Equal(t, "expecting", state.Phase)
	assert.Len(t, state.Hand, 1)
	assert.ElementsMatch(t, []string{"Anne", "Mary"}, state.PendingBidders)

	env.h.Handle(anne, msgOf(protocol.MsgBid, protocol.BidPayload{Bid: 2}))
	assert.Equal(t, protocol.ErrCodeInvalidBid, errorCode(t, anne))

	env.h.Handle(anne, msgOf(protocol.MsgBid, protocol.BidPayload{Bid: 1}))
	after := lastOfType[protocol.StatePayload](t, mary, protocol.MsgState)
	assert.Equal(t, []string{"Mary"}, after.PendingBidders)
}

// hookClient 收到第一条状态消息后执行 onState
type hookClient struct {
	*testutil.SimpleClient
	once    sync.Once
	onState func()
}

func (c *hookClient) SendMessage(msg *protocol.Message) {
	c.SimpleClient.SendMessage(msg)
	if msg.Type == protocol.MsgState && c.onState != nil {
		c.once.Do(c.onState)
	}
}

func TestConcurrentBids_LastStateIsCurrent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.Config{MaxRounds: 2, MaxSeats: 6, MinSeats: 2}, false)
	anne := &hookClient{SimpleClient: testutil.NewSimpleClient("p1", "Anne")}
	mary := testutil.NewSimpleClient("p2", "Mary")

	env.h.Handle(anne, msgOf(protocol.MsgCreateTable, nil))
	id := anne.GetTable()
	require.NotEmpty(t, id)
	env.h.Handle(mary, msgOf(protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: id}))
	env.h.Handle(anne, msgOf(protocol.MsgStart, nil))
	require.Equal(t, "expecting", lastOfType[protocol.StatePayload](t, mary, protocol.MsgState).Phase)

	// Anne 的预测推送状态的同时 Mary 也完成预测
	done := make(chan struct{})
	anne.onState = func() {
		go func() {
			env.h.Handle(mary, msgOf(protocol.MsgBid, protocol.BidPayload{Bid: 0}))
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}
	env.h.Handle(anne, msgOf(protocol.MsgBid, protocol.BidPayload{Bid: 0}))
	receive(t, done)

	for _, c := range []*testutil.SimpleClient{anne.SimpleClient, mary} {
		state := lastOfType[protocol.StatePayload](t, c, protocol.MsgState)
		assert.Equal(t, "putting", state.Phase, c.Name)
		assert.Empty(t, state.PendingBidders, c.Name)
	}
	assert.Len(t, mary.MessagesOfType(protocol.MsgBidsComplete), 1)
}

// playTurn 出第一张可出的牌，未声明的蒂格雷丝先声明为逃跑
func playTurn(t *testing.T, h *Handler, c *testutil.SimpleClient) {
	t.Helper()
	state := lastOfType[protocol.StatePayload](t, c, protocol.MsgState)
	for i, hc := range state.Hand {
		if !hc.Legal {
			continue
		}
		if hc.Card.Kind == "tigres" && hc.Card.Tigres == "" {
			h.Handle(c, msgOf(protocol.MsgTigres, protocol.TigresPayload{As: "escape"}))
			changed := lastOfType[protocol.TigresChangedPayload](t, c, protocol.MsgTigresChanged)
			require.Equal(t, "escape", changed.As)
		}
		h.Handle(c, msgOf(protocol.MsgPlayCard, protocol.PlayCardPayload{Index: i}))
		require.NotEqual(t, protocol.MsgError, c.LastMessage().Type)
		return
	}
	t.Fatalf("%s 没有可出的牌", c.Name)
}

func TestFullMatch(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.Config{MaxRounds: 2, MaxSeats: 6, MinSeats: 2}, false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	mary := testutil.NewSimpleClient("p2", "Mary")
	clients := map[string]*testutil.SimpleClient{"p1": anne, "p2": mary}
	id := env.seat(t, anne, mary)

	rounds := make(chan storage.RoundRecord, 4)
	env.history.On("RecordRound", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		rounds <- args.Get(1).(storage.RoundRecord)
	})
	results := make(chan storage.MatchResult, 4)
	env.board.On("RecordMatchResult", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		results <- args.Get(1).(storage.MatchResult)
	})

	env.h.Handle(anne, msgOf(protocol.MsgSetComputers, protocol.SetComputersPayload{Count: 1}))
	env.h.Handle(anne, msgOf(protocol.MsgStart, nil))

	for round := 1; round <= 2; round++ {
		for _, c := range []*testutil.SimpleClient{anne, mary} {
			env.h.Handle(c, msgOf(protocol.MsgBid, protocol.BidPayload{Bid: 0}))
		}
		bids := lastOfType[protocol.BidsCompletePayload](t, anne, protocol.MsgBidsComplete)
		assert.Equal(t, round, bids.Round)
		assert.Len(t, bids.Bids, 3)

		for range 3 * round {
			state := lastOfType[protocol.StatePayload](t, anne, protocol.MsgState)
			if state.Phase != "putting" {
				break
			}
			c := clients[state.CurrentTurn]
			require.NotNil(t, c, "轮到的应是人类玩家")
			playTurn(t, env.h, c)
		}

		result := lastOfType[protocol.RoundResultPayload](t, mary, protocol.MsgRoundResult)
		assert.Equal(t, round, result.Round)
		assert.Len(t, result.Results, 3)
	}

	final := lastOfType[protocol.StatePayload](t, anne, protocol.MsgState)
	assert.Equal(t, "finished", final.Phase)

	over := lastOfType[protocol.MatchOverPayload](t, mary, protocol.MsgMatchOver)
	require.Len(t, over.Standings, 3)
	assert.Equal(t, 1, over.Standings[0].Rank)
	assert.Len(t, over.Standings[0].History, 2)
	assert.NotEmpty(t, anne.MessagesOfType(protocol.MsgTrickResult))

	var matchID string
	for range 2 {
		rec := receive(t, rounds)
		assert.Equal(t, id, rec.TableID)
		assert.NotEmpty(t, rec.MatchID)
		assert.Len(t, rec.Entries, 3)
		if matchID != "" {
			assert.Equal(t, matchID, rec.MatchID)
		}
		matchID = rec.MatchID
	}

	seen := map[string]storage.MatchResult{}
	for range 2 {
		r := receive(t, results)
		seen[r.PlayerID] = r
	}
	require.Contains(t, seen, "p1")
	require.Contains(t, seen, "p2")
	assert.Equal(t, 3, seen["p1"].Seats)
	assert.Equal(t, 2, seen["p1"].RoundsBid)

	// 结束后桌主可以再开一局
	env.h.Handle(anne, msgOf(protocol.MsgStart, nil))
	again := lastOfType[protocol.StatePayload](t, anne, protocol.MsgState)
	assert.Equal(t, "expecting", again.Phase)
	assert.Equal(t, 1, again.Round)
}

func TestHandleDisconnect(t *testing.T) {
	t.Parallel()

	t.Run("idle table", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, match.DefaultConfig(), false)
		anne := testutil.NewSimpleClient("p1", "Anne")
		mary := testutil.NewSimpleClient("p2", "Mary")
		env.seat(t, anne, mary)

		env.h.HandleDisconnect(mary)
		left := lastOfType[protocol.PlayerLeftPayload](t, anne, protocol.MsgPlayerLeft)
		assert.Equal(t, "p2", left.PlayerID)
		assert.Empty(t, mary.GetTable())
	})

	t.Run("match in progress", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, match.DefaultConfig(), false)
		anne := testutil.NewSimpleClient("p1", "Anne")
		mary := testutil.NewSimpleClient("p2", "Mary")
		id := env.seat(t, anne, mary)
		env.h.Handle(anne, msgOf(protocol.MsgStart, nil))

		env.h.HandleDisconnect(mary)
		closed := lastOfType[protocol.TableClosedPayload](t, anne, protocol.MsgTableClosed)
		assert.Equal(t, id, closed.TableID)
		assert.Contains(t, closed.Reason, "Mary")
		assert.Empty(t, anne.GetTable())
		assert.Nil(t, env.h.tables.Get(id))
	})

	t.Run("not seated", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, match.DefaultConfig(), false)
		c := testutil.NewSimpleClient("p1", "Anne")
		env.h.HandleDisconnect(c)
		assert.Empty(t, c.SentMessages())
	})
}

func TestLeaveAndReset(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	mary := testutil.NewSimpleClient("p2", "Mary")
	kate := testutil.NewSimpleClient("p3", "Kate")
	id := env.seat(t, anne, mary, kate)

	env.h.Handle(kate, msgOf(protocol.MsgLeaveTable, nil))
	assert.Empty(t, kate.GetTable())

	env.h.Handle(mary, msgOf(protocol.MsgReset, nil))
	assert.Equal(t, protocol.ErrCodeNotHost, errorCode(t, mary))

	env.h.Handle(anne, msgOf(protocol.MsgReset, nil))
	closed := lastOfType[protocol.TableClosedPayload](t, mary, protocol.MsgTableClosed)
	assert.Equal(t, id, closed.TableID)
	assert.Empty(t, mary.GetTable())

	env.h.Handle(kate, msgOf(protocol.MsgLeaveTable, nil))
	assert.Equal(t, protocol.ErrCodeNotInTable, errorCode(t, kate))
}

func TestGetTableList(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	bob := testutil.NewSimpleClient("p9", "Bob")
	id := env.seat(t, anne)

	env.h.Handle(bob, msgOf(protocol.MsgGetTableList, nil))
	list := lastOfType[protocol.TableListResultPayload](t, bob, protocol.MsgTableListResult)
	require.Len(t, list.Tables, 1)
	assert.Equal(t, id, list.Tables[0].TableID)
	assert.Equal(t, "Anne", list.Tables[0].HostName)
	assert.Equal(t, 1, list.Tables[0].Players)
	assert.Equal(t, "ready", list.Tables[0].Phase)
}

func TestGetStats(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	mary := testutil.NewSimpleClient("p2", "Mary")

	env.board.On("GetPlayerStats", mock.Anything, "p1").Return(&storage.PlayerStats{
		PlayerID:     "p1",
		PlayerName:   "Anne",
		TotalMatches: 4,
		Wins:         1,
		RoundsBid:    40,
		BidsHit:      10,
		Rating:       55,
	}, nil)
	env.board.On("GetPlayerRank", mock.Anything, "p1").Return(int64(3), nil)
	env.board.On("GetPlayerStats", mock.Anything, "p2").Return(nil, nil)
	env.history.On("PlayerSummary", mock.Anything, "p1").Return(storage.PlayerSummary{Rounds: 40, BidsHit: 10, AverageScore: 12.5}, nil)

	env.h.Handle(anne, msgOf(protocol.MsgGetStats, nil))
	stats := lastOfType[protocol.StatsResultPayload](t, anne, protocol.MsgStatsResult)
	assert.Equal(t, 4, stats.TotalMatches)
	assert.InDelta(t, 25.0, stats.WinRate, 0.001)
	assert.InDelta(t, 25.0, stats.HitRate, 0.001)
	assert.Equal(t, 55, stats.Rating)
	assert.Equal(t, 3, stats.Rank)
	assert.InDelta(t, 12.5, stats.AverageRound, 0.001)

	env.h.Handle(mary, msgOf(protocol.MsgGetStats, nil))
	empty := lastOfType[protocol.StatsResultPayload](t, mary, protocol.MsgStatsResult)
	assert.Equal(t, "Mary", empty.PlayerName)
	assert.Equal(t, -1, empty.Rank)
	assert.Zero(t, empty.TotalMatches)
}

func TestGetStats_StorageError(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, match.DefaultConfig(), false)
	anne := testutil.NewSimpleClient("p1", "Anne")
	env.board.On("GetPlayerStats", mock.Anything, "p1").Return(nil, errors.New("redis down"))

	env.h.Handle(anne, msgOf(protocol.MsgGetStats, nil))
	assert.Equal(t, protocol.ErrCodeUnknown, errorCode(t, anne))
}

func TestGetLeaderboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		msg    *protocol.Message
		board  string
		offset int
		limit  int
	}{
		{"defaults without payload", &protocol.Message{Type: protocol.MsgGetLeaderboard}, storage.BoardTotal, 0, 10},
		{"unknown board falls back", msgOf(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Type: "yearly", Offset: -3, Limit: 500}), storage.BoardTotal, 0, 10},
		{"daily page", msgOf(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Type: "daily", Offset: 20, Limit: 20}), storage.BoardDaily, 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, match.DefaultConfig(), false)
			c := testutil.NewSimpleClient("p1", "Anne")
			env.board.On("GetLeaderboard", mock.Anything, tt.board, tt.offset, tt.limit).Return([]storage.LeaderboardEntry{
				{Rank: tt.offset + 1, PlayerID: "p7", PlayerName: "Grace", Rating: 120, Wins: 6, Matches: 9},
			}, nil)

			env.h.Handle(c, tt.msg)
			result := lastOfType[protocol.LeaderboardResultPayload](t, c, protocol.MsgLeaderboardResult)
			assert.Equal(t, tt.board, result.Type)
			require.Len(t, result.Entries, 1)
			assert.Equal(t, "Grace", result.Entries[0].PlayerName)
			assert.Equal(t, tt.offset+1, result.Entries[0].Rank)
			env.board.AssertExpectations(t)
		})
	}
}
