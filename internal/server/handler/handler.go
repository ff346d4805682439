package handler

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/palemoky/skull-king/internal/apperrors"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
	"github.com/palemoky/skull-king/internal/session"
	"github.com/palemoky/skull-king/internal/storage"
	"github.com/palemoky/skull-king/internal/types"
)

// Leaderboard 排行榜存储
type Leaderboard interface {
	RecordMatchResult(ctx context.Context, result storage.MatchResult) error
	GetPlayerStats(ctx context.Context, playerID string) (*storage.PlayerStats, error)
	GetPlayerRank(ctx context.Context, playerID string) (int64, error)
	GetLeaderboard(ctx context.Context, boardType string, offset, limit int) ([]storage.LeaderboardEntry, error)
}

// History 回合成绩存档
type History interface {
	RecordRound(ctx context.Context, rec storage.RoundRecord) error
	PlayerSummary(ctx context.Context, playerID string) (storage.PlayerSummary, error)
}

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server      types.ServerInterface
	Tables      *session.Manager
	Leaderboard Leaderboard // 可为 nil
	History     History     // 可为 nil
}

// Handler 消息处理器
type Handler struct {
	server      types.ServerInterface
	tables      *session.Manager
	leaderboard Leaderboard
	history     History
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:      deps.Server,
		tables:      deps.Tables,
		leaderboard: deps.Leaderboard,
		history:     deps.History,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 牌桌操作
		protocol.MsgCreateTable:  func(c types.ClientInterface, _ *protocol.Message) { h.handleCreateTable(c) },
		protocol.MsgJoinTable:    h.handleJoinTable,
		protocol.MsgLeaveTable:   func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveTable(c) },
		protocol.MsgSetComputers: h.handleSetComputers,
		protocol.MsgStart:        func(c types.ClientInterface, _ *protocol.Message) { h.handleStart(c) },
		protocol.MsgReset:        func(c types.ClientInterface, _ *protocol.Message) { h.handleReset(c) },
		protocol.MsgGetTableList: func(c types.ClientInterface, _ *protocol.Message) { h.sendTableList(c) },

		// 对局操作
		protocol.MsgBid:      h.handleBid,
		protocol.MsgTigres:   h.handleTigres,
		protocol.MsgPlayCard: h.handlePlayCard,
		protocol.MsgGetState: func(c types.ClientInterface, _ *protocol.Message) { h.handleGetState(c) },

		// 信息查询
		protocol.MsgGetStats:       func(c types.ClientInterface, _ *protocol.Message) { h.handleGetStats(c) },
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Warn("⚠️ 未知消息类型", "type", msg.Type, "player", client.GetName(), "id", client.GetID(), "payload_bytes", len(msg.Payload))
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// HandleDisconnect 连接断开：空闲时离座，对局中则中止整张牌桌
func (h *Handler) HandleDisconnect(client types.ClientInterface) {
	id := client.GetTable()
	if id == "" {
		return
	}
	if err := h.tables.Leave(client); err == nil {
		h.notifyLobby()
		return
	}
	if client.GetTable() != "" {
		h.tables.Abort(id, client.GetName()+" 掉线，对局中止")
		h.notifyLobby()
	}
}

// sendError 把错误转换为错误消息，GameError 保留错误码
func (h *Handler) sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorMessageWithText(gameErr.Code, err.Error()))
		return
	}
	log.Error("处理消息失败", "player", client.GetName(), "err", err)
	client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

// tableOf 玩家所在的牌桌
func (h *Handler) tableOf(client types.ClientInterface) (*session.Table, error) {
	id := client.GetTable()
	if id == "" {
		return nil, apperrors.ErrNotInTable
	}
	t := h.tables.Get(id)
	if t == nil {
		return nil, apperrors.ErrTableNotFound
	}
	return t, nil
}

// rejectDuringMaintenance 维护期间拒绝新的牌桌和对局
func (h *Handler) rejectDuringMaintenance(client types.ClientInterface, text string) bool {
	if h.server == nil || !h.server.IsMaintenanceMode() {
		return false
	}
	client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeServerMaintenance, text))
	return true
}
