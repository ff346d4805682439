package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/palemoky/skull-king/internal/apperrors"
	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
	"github.com/palemoky/skull-king/internal/storage"
	"github.com/palemoky/skull-king/internal/types"
)

const tableIDLength = 6

// Directory 牌桌目录，用于大厅列表等跨进程展示
type Directory interface {
	SaveTable(ctx context.Context, data *storage.TableData) error
	DeleteTable(ctx context.Context, id string) error
}

// Options 牌桌管理器参数
type Options struct {
	Match       match.Config
	IdleTimeout time.Duration // 空闲牌桌的保留时长
	Directory   Directory     // 可为 nil
	NewSource   func() card.Source
}

// Manager 牌桌管理器：以牌桌 ID 为键的会话注册表
type Manager struct {
	opts   Options
	tables map[string]*Table
	mu     sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager 创建牌桌管理器并启动清理协程
func NewManager(opts Options) *Manager {
	if opts.NewSource == nil {
		opts.NewSource = card.DefaultSource
	}
	m := &Manager{
		opts:   opts,
		tables: make(map[string]*Table),
		stop:   make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// Close 停止清理协程
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Create 创建牌桌，创建者成为桌主
func (m *Manager) Create(client types.ClientInterface) (*Table, error) {
	if client.GetTable() != "" {
		return nil, apperrors.ErrAlreadyJoined
	}

	m.mu.Lock()
	id := m.generateTableID()
	t := newTable(id, match.New(m.opts.Match, m.opts.NewSource(), nil), time.Now())
	if err := t.addMember(client); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.tables[id] = t
	m.mu.Unlock()

	client.SetTable(id)
	m.save(t)

	log.Info("🏴‍☠️ 牌桌已创建", "table", id, "host", client.GetName())
	return t, nil
}

// Join 加入牌桌，只能在空闲时加入
func (m *Manager) Join(client types.ClientInterface, id string) (*Table, error) {
	if client.GetTable() != "" {
		return nil, apperrors.ErrAlreadyJoined
	}
	t := m.Get(id)
	if t == nil {
		return nil, apperrors.ErrTableNotFound
	}

	t.mu.Lock()
	err := t.addMember(client)
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}
	client.SetTable(id)

	log.Info("👤 玩家入座", "table", id, "player", client.GetName())
	t.BroadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: protocol.PlayerInfo{ID: client.GetID(), Name: client.GetName(), Bid: match.NoBid},
	}))
	m.save(t)
	return t, nil
}

// Leave 离开牌桌，对局进行中不能离开。最后一名玩家离开时牌桌解散。
func (m *Manager) Leave(client types.ClientInterface) error {
	id := client.GetTable()
	if id == "" {
		return apperrors.ErrNotInTable
	}
	t := m.Get(id)
	if t == nil {
		client.SetTable("")
		return apperrors.ErrTableNotFound
	}

	t.mu.Lock()
	err := t.removeMember(client.GetID())
	empty := len(t.order) == 0
	t.mu.Unlock()
	if err != nil {
		return err
	}
	client.SetTable("")

	log.Info("👋 玩家离座", "table", id, "player", client.GetName())
	if empty {
		m.remove(id)
		log.Info("🏴‍☠️ 牌桌已解散", "table", id)
		return nil
	}

	t.Broadcast(codec.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
	}))
	m.save(t)
	return nil
}

// Reset 桌主在空闲时解散牌桌
func (m *Manager) Reset(client types.ClientInterface) error {
	id := client.GetTable()
	t := m.Get(id)
	if t == nil {
		return apperrors.ErrNotInTable
	}
	err := t.DoAsHost(client.GetID(), func(mt *match.Match) error {
		if mt.Phase() != match.PhaseReady && mt.Phase() != match.PhaseFinished {
			return apperrors.ErrStateMismatch
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.Dissolve(t, "桌主解散了牌桌")
	return nil
}

// Abort 无条件解散牌桌，用于对局中有玩家断线
func (m *Manager) Abort(id, reason string) {
	if t := m.Get(id); t != nil {
		m.Dissolve(t, reason)
	}
}

// Dissolve 通知在座玩家并移除牌桌
func (m *Manager) Dissolve(t *Table, reason string) {
	t.mu.Lock()
	members := t.detach()
	t.mu.Unlock()

	msg := codec.MustNewMessage(protocol.MsgTableClosed, protocol.TableClosedPayload{TableID: t.ID, Reason: reason})
	for _, c := range members {
		c.SendMessage(msg)
	}
	m.remove(t.ID)
	log.Info("🏴‍☠️ 牌桌已关闭", "table", t.ID, "reason", reason)
}

// Get 获取牌桌
func (m *Manager) Get(id string) *Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables[id]
}

// List 所有牌桌的概要，按创建时间排序
func (m *Manager) List() []storage.TableData {
	m.mu.RLock()
	tables := make([]*Table, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, t)
	}
	m.mu.RUnlock()

	list := make([]storage.TableData, 0, len(tables))
	for _, t := range tables {
		list = append(list, t.Summary())
	}
	storage.SortTables(list)
	return list
}

// Count 牌桌数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}

// ActiveCount 对局进行中的牌桌数
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	tables := make([]*Table, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, t)
	}
	m.mu.RUnlock()

	count := 0
	for _, t := range tables {
		if _, idle := t.idleSince(); !idle {
			count++
		}
	}
	return count
}

// Save 把牌桌概要写入目录
func (m *Manager) Save(t *Table) {
	m.save(t)
}

func (m *Manager) save(t *Table) {
	if m.opts.Directory == nil {
		return
	}
	data := t.Summary()
	go func() {
		if err := m.opts.Directory.SaveTable(context.Background(), &data); err != nil {
			log.Warn("保存牌桌目录失败", "table", data.ID, "err", err)
		}
	}()
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.tables, id)
	m.mu.Unlock()

	if m.opts.Directory == nil {
		return
	}
	go func() {
		if err := m.opts.Directory.DeleteTable(context.Background(), id); err != nil {
			log.Warn("删除牌桌目录失败", "table", id, "err", err)
		}
	}()
}

// generateTableID 生成牌桌号，调用方持有写锁
func (m *Manager) generateTableID() string {
	for {
		id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:tableIDLength])
		if _, exists := m.tables[id]; !exists {
			return id
		}
	}
}

// cleanupLoop 定期清理空闲超时的牌桌
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(time.Now())
		case <-m.stop:
			return
		}
	}
}

// cleanup 只清理空闲（未开局或已结束）且超时的牌桌
func (m *Manager) cleanup(now time.Time) {
	if m.opts.IdleTimeout <= 0 {
		return
	}

	m.mu.RLock()
	var expired []*Table
	for _, t := range m.tables {
		if since, idle := t.idleSince(); idle && now.Sub(since) > m.opts.IdleTimeout {
			expired = append(expired, t)
		}
	}
	m.mu.RUnlock()

	for _, t := range expired {
		m.Dissolve(t, "牌桌长时间空闲，已关闭")
	}
}
