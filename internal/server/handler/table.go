package handler

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
	"github.com/palemoky/skull-king/internal/protocol/convert"
	"github.com/palemoky/skull-king/internal/session"
	"github.com/palemoky/skull-king/internal/types"
)

// handleCreateTable 创建牌桌
func (h *Handler) handleCreateTable(client types.ClientInterface) {
	if h.rejectDuringMaintenance(client, "服务器维护中，暂停创建牌桌") {
		return
	}

	t, err := h.tables.Create(client)
	if err != nil {
		h.sendError(client, err)
		return
	}
	h.sendTableJoined(client, t)
	h.notifyLobby()
}

// handleJoinTable 加入牌桌
func (h *Handler) handleJoinTable(client types.ClientInterface, msg *protocol.Message) {
	if h.rejectDuringMaintenance(client, "服务器维护中，暂停加入牌桌") {
		return
	}

	payload, err := codec.ParsePayload[protocol.JoinTablePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	t, err := h.tables.Join(client, payload.TableID)
	if err != nil {
		h.sendError(client, err)
		return
	}
	h.sendTableJoined(client, t)
	h.notifyLobby()
}

// handleLeaveTable 离开牌桌，回到大厅
func (h *Handler) handleLeaveTable(client types.ClientInterface) {
	if err := h.tables.Leave(client); err != nil {
		h.sendError(client, err)
		return
	}
	h.notifyLobby()
}

// handleSetComputers 桌主设置电脑玩家数
func (h *Handler) handleSetComputers(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.SetComputersPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	t, err := h.tableOf(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	err = t.DoAsHostAndPost(client.GetID(), func(m *match.Match, post session.Post) error {
		if err := m.SetComputerCount(payload.Count); err != nil {
			return err
		}
		post.Broadcast(codec.MustNewMessage(protocol.MsgComputersSet, protocol.ComputersSetPayload{Count: payload.Count}))
		return nil
	})
	if err != nil {
		h.sendError(client, err)
		return
	}
	h.tables.Save(t)
}

// handleStart 桌主开局
func (h *Handler) handleStart(client types.ClientInterface) {
	if h.rejectDuringMaintenance(client, "服务器维护中，暂停开局") {
		return
	}
	t, err := h.tableOf(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	v := viewOf(t)
	v.matchID = uuid.NewString()

	var out *outbox
	err = t.DoAsHostAndPost(client.GetID(), func(m *match.Match, post session.Post) error {
		events, err := m.Start()
		if err != nil {
			return err
		}
		out = render(m, v, events)
		out.post(post)
		return nil
	})
	if err != nil {
		h.sendError(client, err)
		return
	}
	t.SetMatchID(v.matchID)

	log.Info("⚓ 对局开始", "table", t.ID, "match", v.matchID)
	h.persist(t, out)
	h.tables.Save(t)
	h.notifyLobby()
}

// handleReset 桌主在空闲时解散牌桌
func (h *Handler) handleReset(client types.ClientInterface) {
	if err := h.tables.Reset(client); err != nil {
		h.sendError(client, err)
		return
	}
	h.notifyLobby()
}

// sendTableJoined 入座成功后发送牌桌信息
func (h *Handler) sendTableJoined(client types.ClientInterface, t *session.Table) {
	hostID := t.HostID()
	var payload protocol.TableJoinedPayload
	_ = t.Do(func(m *match.Match) error {
		payload = protocol.TableJoinedPayload{
			TableID:   t.ID,
			HostID:    hostID,
			Players:   convert.PlayersToInfos(m.Players(), hostID),
			Computers: m.ComputerCount(),
			MaxSeats:  m.MaxSeats(),
		}
		return nil
	})
	client.SendMessage(codec.MustNewMessage(protocol.MsgTableJoined, payload))
}

// tableListMessage 牌桌列表
func (h *Handler) tableListMessage() *protocol.Message {
	list := h.tables.List()
	items := make([]protocol.TableListItem, 0, len(list))
	for _, d := range list {
		items = append(items, protocol.TableListItem{
			TableID:   d.ID,
			HostName:  d.HostName,
			Phase:     d.Phase,
			Round:     d.Round,
			Players:   len(d.Players),
			Computers: d.Computers,
			MaxSeats:  d.MaxSeats,
		})
	}
	return codec.MustNewMessage(protocol.MsgTableListResult, protocol.TableListResultPayload{Tables: items})
}

// sendTableList 获取牌桌列表
func (h *Handler) sendTableList(client types.ClientInterface) {
	client.SendMessage(h.tableListMessage())
}

// notifyLobby 牌桌变化后刷新大厅玩家的列表
func (h *Handler) notifyLobby() {
	if h.server == nil {
		return
	}
	h.server.BroadcastToLobby(h.tableListMessage())
}
