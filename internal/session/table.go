package session

import (
	"slices"
	"sync"
	"time"

	"github.com/palemoky/skull-king/internal/apperrors"
	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/storage"
	"github.com/palemoky/skull-king/internal/types"
)

// Table 一张牌桌：一场对局、桌主和在座的连接。
// 所有对 Match 的访问都经过 mu，同一张牌桌上的事件依次处理。
type Table struct {
	ID        string
	CreatedAt time.Time

	hostID     string
	matchID    string
	match      *match.Match
	members    map[string]types.ClientInterface
	order      []string // 入座顺序
	lastActive time.Time

	mu sync.Mutex
}

func newTable(id string, m *match.Match, now time.Time) *Table {
	return &Table{
		ID:         id,
		CreatedAt:  now,
		match:      m,
		members:    make(map[string]types.ClientInterface),
		lastActive: now,
	}
}

// Post 持有牌桌锁时的投递口，只在 DoAndPost / DoAsHostAndPost 的回调内有效。
// 消息在锁内发出，各玩家收到的顺序与状态转换的顺序一致。
type Post struct {
	t *Table
}

// Broadcast 发给所有在座玩家
func (p Post) Broadcast(msg *protocol.Message) {
	for _, c := range p.t.membersLocked() {
		c.SendMessage(msg)
	}
}

// Send 发给一名在座玩家，不在座时忽略
func (p Post) Send(playerID string, msg *protocol.Message) {
	if c := p.t.members[playerID]; c != nil {
		c.SendMessage(msg)
	}
}

// Do 在牌桌锁内操作对局
func (t *Table) Do(fn func(m *match.Match) error) error {
	return t.DoAndPost(func(m *match.Match, _ Post) error { return fn(m) })
}

// DoAndPost 在牌桌锁内操作对局并投递结果
func (t *Table) DoAndPost(fn func(m *match.Match, post Post) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastActive = time.Now()
	return fn(t.match, Post{t: t})
}

// DoAsHost 只有桌主可以执行的操作
func (t *Table) DoAsHost(playerID string, fn func(m *match.Match) error) error {
	return t.DoAsHostAndPost(playerID, func(m *match.Match, _ Post) error { return fn(m) })
}

// DoAsHostAndPost 桌主操作，结果在锁内投递
func (t *Table) DoAsHostAndPost(playerID string, fn func(m *match.Match, post Post) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hostID != playerID {
		return apperrors.ErrNotHost
	}
	t.lastActive = time.Now()
	return fn(t.match, Post{t: t})
}

// HostID 桌主 ID
func (t *Table) HostID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hostID
}

// IsHost 是否为桌主
func (t *Table) IsHost(playerID string) bool {
	return t.HostID() == playerID
}

// MatchID 当前（或最近一场）对局的编号
func (t *Table) MatchID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.matchID
}

// SetMatchID 开局时由调用方分配
func (t *Table) SetMatchID(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.matchID = id
}

// Phase 当前阶段
func (t *Table) Phase() match.Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.match.Phase()
}

// Members 在座连接，按入座顺序
func (t *Table) Members() []types.ClientInterface {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.membersLocked()
}

func (t *Table) membersLocked() []types.ClientInterface {
	out := make([]types.ClientInterface, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.members[id])
	}
	return out
}

// Member 按玩家 ID 查找在座连接
func (t *Table) Member(playerID string) types.ClientInterface {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.members[playerID]
}

// Broadcast 广播消息给牌桌上所有玩家
func (t *Table) Broadcast(msg *protocol.Message) {
	for _, c := range t.Members() {
		c.SendMessage(msg)
	}
}

// BroadcastExcept 广播消息给除指定玩家外的所有玩家
func (t *Table) BroadcastExcept(exceptID string, msg *protocol.Message) {
	for _, c := range t.Members() {
		if c.GetID() != exceptID {
			c.SendMessage(msg)
		}
	}
}

// addMember 入座，第一个入座的玩家成为桌主
func (t *Table) addMember(client types.ClientInterface) error {
	if err := t.match.AddPlayer(client.GetID(), client.GetName()); err != nil {
		return err
	}
	t.members[client.GetID()] = client
	t.order = append(t.order, client.GetID())
	if t.hostID == "" {
		t.hostID = client.GetID()
	}
	t.lastActive = time.Now()
	return nil
}

// removeMember 离座，桌主离开时由下一位入座的玩家接任
func (t *Table) removeMember(playerID string) error {
	if _, ok := t.members[playerID]; !ok {
		return apperrors.ErrNotInTable
	}
	if err := t.match.RemovePlayer(playerID); err != nil {
		return err
	}
	delete(t.members, playerID)
	t.order = slices.DeleteFunc(t.order, func(id string) bool { return id == playerID })
	if t.hostID == playerID {
		t.hostID = ""
		if len(t.order) > 0 {
			t.hostID = t.order[0]
		}
	}
	t.lastActive = time.Now()
	return nil
}

// detach 解散时清空在座连接
func (t *Table) detach() []types.ClientInterface {
	members := t.membersLocked()
	for _, c := range members {
		c.SetTable("")
	}
	t.members = make(map[string]types.ClientInterface)
	t.order = nil
	return members
}

// idleSince 空闲中的牌桌最后活跃时间，对局进行中返回 false
func (t *Table) idleSince() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.match.Phase() {
	case match.PhaseReady, match.PhaseFinished:
		return t.lastActive, true
	}
	return time.Time{}, false
}

// Summary 牌桌概要
func (t *Table) Summary() storage.TableData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summaryLocked()
}

func (t *Table) summaryLocked() storage.TableData {
	data := storage.TableData{
		ID:        t.ID,
		HostID:    t.hostID,
		Phase:     t.match.Phase().String(),
		Round:     t.match.Round(),
		Computers: t.match.ComputerCount(),
		MaxSeats:  t.match.MaxSeats(),
		CreatedAt: t.CreatedAt.Unix(),
	}
	for _, id := range t.order {
		name := t.members[id].GetName()
		data.Players = append(data.Players, name)
		if id == t.hostID {
			data.HostName = name
		}
	}
	return data
}
