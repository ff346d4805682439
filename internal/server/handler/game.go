package handler

import (
	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
	"github.com/palemoky/skull-king/internal/session"
	"github.com/palemoky/skull-king/internal/types"
)

// handleBid 预测本回合的赢墩数
func (h *Handler) handleBid(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.BidPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.transition(client, func(m *match.Match) ([]match.Event, error) {
		return m.RecordBid(client.GetID(), payload.Bid)
	})
}

// handlePlayCard 出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.transition(client, func(m *match.Match) ([]match.Event, error) {
		return m.PlayCard(client.GetID(), payload.Index)
	})
}

// handleTigres 声明手中蒂格雷丝的身份，只通知本人
func (h *Handler) handleTigres(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.TigresPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	// 无法识别的身份按未声明处理，由对局返回对应的错误码
	as, _ := card.ParseTigresAs(payload.As)
	t, err := h.tableOf(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	v := viewOf(t)
	err = t.DoAndPost(func(m *match.Match, post session.Post) error {
		if err := m.SubmitTigresChoice(client.GetID(), as); err != nil {
			return err
		}
		post.Send(client.GetID(), codec.MustNewMessage(protocol.MsgTigresChanged, protocol.TigresChangedPayload{As: as.String()}))
		post.Send(client.GetID(), codec.MustNewMessage(protocol.MsgState, buildState(m, v, client.GetID())))
		return nil
	})
	if err != nil {
		h.sendError(client, err)
	}
}

// handleGetState 获取自己视角下的牌桌状态
func (h *Handler) handleGetState(client types.ClientInterface) {
	t, err := h.tableOf(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	v := viewOf(t)
	_ = t.Do(func(m *match.Match) error {
		client.SendMessage(codec.MustNewMessage(protocol.MsgState, buildState(m, v, client.GetID())))
		return nil
	})
}

// transition 在牌桌锁内执行一次状态转换并投递渲染结果。
// 没有事件的转换（如一次普通的预测）也会给所有人推送最新状态。
func (h *Handler) transition(client types.ClientInterface, fn func(m *match.Match) ([]match.Event, error)) {
	t, err := h.tableOf(client)
	if err != nil {
		h.sendError(client, err)
		return
	}

	v := viewOf(t)
	var out *outbox
	err = t.DoAndPost(func(m *match.Match, post session.Post) error {
		events, err := fn(m)
		if err == nil || len(events) > 0 {
			out = render(m, v, events)
			out.post(post)
		}
		return err
	})
	if out != nil {
		h.persist(t, out)
	}
	if err != nil {
		h.sendError(client, err)
		return
	}
	h.afterTransition(t)
}

// afterTransition 对局结束后刷新大厅
func (h *Handler) afterTransition(t *session.Table) {
	if t.Phase() == match.PhaseFinished {
		h.notifyLobby()
	}
}
