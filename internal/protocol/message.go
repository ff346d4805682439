package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 牌桌操作
	MsgCreateTable  MessageType = "create_table"   // 创建牌桌
	MsgJoinTable    MessageType = "join_table"     // 加入牌桌
	MsgLeaveTable   MessageType = "leave_table"    // 离开牌桌
	MsgSetComputers MessageType = "set_computers"  // 设置电脑玩家数（桌主）
	MsgStart        MessageType = "start"          // 开始对局（桌主）
	MsgReset        MessageType = "reset"          // 解散牌桌（桌主）
	MsgGetTableList MessageType = "get_table_list" // 获取牌桌列表

	// 游戏操作
	MsgBid      MessageType = "bid"       // 预测墩数
	MsgTigres   MessageType = "tigres"    // 声明蒂格雷丝身份
	MsgPlayCard MessageType = "play_card" // 出牌
	MsgGetState MessageType = "get_state" // 获取当前局面

	// 排行榜
	MsgGetStats       MessageType = "get_stats"       // 获取个人统计
	MsgGetLeaderboard MessageType = "get_leaderboard" // 获取排行榜
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 牌桌相关
	MsgTableJoined     MessageType = "table_joined"      // 加入牌桌成功（含创建）
	MsgPlayerJoined    MessageType = "player_joined"     // 其他玩家加入
	MsgPlayerLeft      MessageType = "player_left"       // 玩家离开
	MsgComputersSet    MessageType = "computers_set"     // 电脑玩家数变更
	MsgTableClosed     MessageType = "table_closed"      // 牌桌解散
	MsgTableListResult MessageType = "table_list_result" // 牌桌列表结果

	// 游戏流程
	MsgState         MessageType = "state"          // 当前局面（按座位投影）
	MsgDealt         MessageType = "dealt"          // 发牌
	MsgBidsComplete  MessageType = "bids_complete"  // 所有人预测完毕
	MsgCardPlayed    MessageType = "card_played"    // 有人出牌
	MsgTrickResult   MessageType = "trick_result"   // 一墩结算
	MsgRoundResult   MessageType = "round_result"   // 回合结算
	MsgMatchOver     MessageType = "match_over"     // 整场结束
	MsgTigresChanged MessageType = "tigres_changed" // 蒂格雷丝身份已声明

	// 排行榜
	MsgStatsResult       MessageType = "stats_result"       // 个人统计结果
	MsgLeaderboardResult MessageType = "leaderboard_result" // 排行榜结果

	// 系统通知
	MsgMaintenance MessageType = "maintenance" // 维护通知

	// 错误
	MsgError MessageType = "error" // 错误消息
)
