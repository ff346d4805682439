package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinTablePayload 加入牌桌请求
type JoinTablePayload struct {
	TableID string `json:"table_id"`
}

// SetComputersPayload 设置电脑玩家数
type SetComputersPayload struct {
	Count int `json:"count"`
}

// BidPayload 预测请求
type BidPayload struct {
	Bid int `json:"bid"`
}

// TigresPayload 声明蒂格雷丝身份，pirate 或 escape
type TigresPayload struct {
	As string `json:"as"`
}

// PlayCardPayload 出牌请求，Index 为手牌下标（从 0 开始）
type PlayCardPayload struct {
	Index int `json:"index"`
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Type   string `json:"type"`   // total/daily/weekly
	Offset int    `json:"offset"` // 偏移量
	Limit  int    `json:"limit"`  // 数量
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// PlayerInfo 座位信息
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Computer  bool   `json:"computer"`
	Host      bool   `json:"host"`
	Score     int    `json:"score"`
	Bid       int    `json:"bid"` // -1 表示尚未预测
	Won       int    `json:"won"`
	HandCount int    `json:"hand_count"`
}

// TableJoinedPayload 加入牌桌成功
type TableJoinedPayload struct {
	TableID   string       `json:"table_id"`
	HostID    string       `json:"host_id"`
	Players   []PlayerInfo `json:"players"`
	Computers int          `json:"computers"`
	MaxSeats  int          `json:"max_seats"`
}

// PlayerJoinedPayload 其他玩家加入
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// ComputersSetPayload 电脑玩家数变更
type ComputersSetPayload struct {
	Count int `json:"count"`
}

// TableClosedPayload 牌桌解散
type TableClosedPayload struct {
	TableID string `json:"table_id"`
	Reason  string `json:"reason"`
}

// TableListItem 牌桌列表项
type TableListItem struct {
	TableID   string `json:"table_id"`
	HostName  string `json:"host_name"`
	Phase     string `json:"phase"`
	Round     int    `json:"round"`
	Players   int    `json:"players"`
	Computers int    `json:"computers"`
	MaxSeats  int    `json:"max_seats"`
}

// TableListResultPayload 牌桌列表结果
type TableListResultPayload struct {
	Tables []TableListItem `json:"tables"`
}

// CardInfo 牌面信息
type CardInfo struct {
	ID     int    `json:"id"`
	Kind   string `json:"kind"`
	Color  string `json:"color,omitempty"`
	Number int    `json:"number,omitempty"`
	Escape string `json:"escape,omitempty"`
	Tigres string `json:"tigres,omitempty"`
	Label  string `json:"label"`
}

// HandCard 手牌中的一张
type HandCard struct {
	Card  CardInfo `json:"card"`
	Legal bool     `json:"legal"`
}

// TrickCard 本墩已出的一张
type TrickCard struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Card       CardInfo `json:"card"`
}

// StatePayload 按座位投影的局面
type StatePayload struct {
	TableID        string       `json:"table_id"`
	HostID         string       `json:"host_id"`
	Phase          string       `json:"phase"`
	Round          int          `json:"round"`
	MaxRounds      int          `json:"max_rounds"`
	Players        []PlayerInfo `json:"players"` // 对局中按出牌顺序
	CurrentTurn    string       `json:"current_turn,omitempty"`
	LeadColor      string       `json:"lead_color,omitempty"`
	Hand           []HandCard   `json:"hand"`
	Trick          []TrickCard  `json:"trick"`
	PendingBidders []string     `json:"pending_bidders,omitempty"`
	Computers      int          `json:"computers"`
}

// DealtPayload 发牌通知
type DealtPayload struct {
	Round    int  `json:"round"`
	Recycled bool `json:"recycled"` // 弃牌堆已洗回牌堆
}

// BidInfo 一名玩家的预测
type BidInfo struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Bid        int    `json:"bid"`
}

// BidsCompletePayload 所有人预测完毕
type BidsCompletePayload struct {
	Round int       `json:"round"`
	Bids  []BidInfo `json:"bids"`
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Card       CardInfo `json:"card"`
}

// TigresChangedPayload 蒂格雷丝身份已声明（只发给本人）
type TigresChangedPayload struct {
	As string `json:"as"`
}

// TrickResultPayload 一墩结算
type TrickResultPayload struct {
	WinnerID   string      `json:"winner_id"`
	WinnerName string      `json:"winner_name"`
	Card       CardInfo    `json:"card"`
	Kraken     bool        `json:"kraken"` // 本墩作废
	Trick      []TrickCard `json:"trick"`
}

// BonusInfo 奖励分明细
type BonusInfo struct {
	Fourteens int `json:"fourteens"`
	Mermaid   int `json:"mermaid"`
	SkullKing int `json:"skull_king"`
	GoldGet   int `json:"gold_get"`
	GoldGive  int `json:"gold_give"`
	Total     int `json:"total"`
}

// RoundScoreInfo 一名玩家的回合结算
type RoundScoreInfo struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Bid        int       `json:"bid"`
	Won        int       `json:"won"`
	Bonus      BonusInfo `json:"bonus"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
}

// RoundResultPayload 回合结算
type RoundResultPayload struct {
	Round   int              `json:"round"`
	Results []RoundScoreInfo `json:"results"`
}

// StandingInfo 最终排名
type StandingInfo struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Computer   bool   `json:"computer"`
	Score      int    `json:"score"`
	History    []int  `json:"history"`
}

// MatchOverPayload 整场结束
type MatchOverPayload struct {
	Standings []StandingInfo `json:"standings"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	TotalMatches  int     `json:"total_matches"`
	Wins          int     `json:"wins"`
	Podiums       int     `json:"podiums"`
	WinRate       float64 `json:"win_rate"`
	BestScore     int     `json:"best_score"`
	TotalPoints   int     `json:"total_points"`
	HitRate       float64 `json:"hit_rate"`
	AverageRound  float64 `json:"average_round"` // 每回合平均得分，来自成绩存档
	Rating        int     `json:"rating"`
	Rank          int     `json:"rank"`
	CurrentStreak int     `json:"current_streak"`
	MaxWinStreak  int     `json:"max_win_streak"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Rating     int     `json:"rating"`
	Wins       int     `json:"wins"`
	Matches    int     `json:"matches"`
	WinRate    float64 `json:"win_rate"`
	BestScore  int     `json:"best_score"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Type    string             `json:"type"`
	Entries []LeaderboardEntry `json:"entries"`
}

// MaintenancePayload 维护通知
type MaintenancePayload struct {
	Maintenance bool   `json:"maintenance"`
	Message     string `json:"message"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
