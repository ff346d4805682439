package transport

import (
	"time"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
)

// --- 便捷方法 ---

func (c *Client) request(t protocol.MessageType, payload any) error {
	msg, err := codec.NewMessage(t, payload)
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// CreateTable 创建牌桌
func (c *Client) CreateTable() error {
	return c.request(protocol.MsgCreateTable, nil)
}

// JoinTable 加入牌桌
func (c *Client) JoinTable(tableID string) error {
	return c.request(protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: tableID})
}

// LeaveTable 离开牌桌
func (c *Client) LeaveTable() error {
	return c.request(protocol.MsgLeaveTable, nil)
}

// SetComputers 设置电脑玩家数（桌主）
func (c *Client) SetComputers(count int) error {
	return c.request(protocol.MsgSetComputers, protocol.SetComputersPayload{Count: count})
}

// Start 开始对局（桌主）
func (c *Client) Start() error {
	return c.request(protocol.MsgStart, nil)
}

// Reset 解散牌桌（桌主）
func (c *Client) Reset() error {
	return c.request(protocol.MsgReset, nil)
}

// GetTableList 获取牌桌列表
func (c *Client) GetTableList() error {
	return c.request(protocol.MsgGetTableList, nil)
}

// Bid 预测本回合墩数
func (c *Client) Bid(n int) error {
	return c.request(protocol.MsgBid, protocol.BidPayload{Bid: n})
}

// Tigres 声明手中蒂格雷丝的身份，pirate 或 escape
func (c *Client) Tigres(as string) error {
	return c.request(protocol.MsgTigres, protocol.TigresPayload{As: as})
}

// PlayCard 打出手牌中第 index 张
func (c *Client) PlayCard(index int) error {
	return c.request(protocol.MsgPlayCard, protocol.PlayCardPayload{Index: index})
}

// GetState 请求当前局面
func (c *Client) GetState() error {
	return c.request(protocol.MsgGetState, nil)
}

// GetStats 获取个人统计
func (c *Client) GetStats() error {
	return c.request(protocol.MsgGetStats, nil)
}

// GetLeaderboard 获取排行榜
func (c *Client) GetLeaderboard(boardType string, offset, limit int) error {
	return c.request(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Type:   boardType,
		Offset: offset,
		Limit:  limit,
	})
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.request(protocol.MsgPing, protocol.PingPayload{Timestamp: time.Now().UnixMilli()})
}
