package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002

	ErrCodeTableNotFound = 2001
	ErrCodeTableExists   = 2002
	ErrCodeNotInTable    = 2003
	ErrCodeAlreadyJoined = 2004
	ErrCodeTooManySeats  = 2005 // 座位已满
	ErrCodeNotHost       = 2006 // 只有房主可以操作

	ErrCodeStateMismatch       = 3001
	ErrCodeInvalidBid          = 3002
	ErrCodeIllegalCardPlay     = 3003
	ErrCodeUnresolvedTigres    = 3004
	ErrCodeInsufficientPlayers = 3005
	ErrCodeEmptyTrick          = 3006

	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:             "未知错误",
	ErrCodeInvalidMsg:          "无效的消息格式",
	ErrCodeRateLimit:           "操作过于频繁，请稍后再试",
	ErrCodeTableNotFound:       "牌桌不存在",
	ErrCodeTableExists:         "牌桌已存在",
	ErrCodeNotInTable:          "您不在牌桌中",
	ErrCodeAlreadyJoined:       "您已经在牌桌中了",
	ErrCodeTooManySeats:        "座位已满",
	ErrCodeNotHost:             "只有房主可以这么做",
	ErrCodeStateMismatch:       "现在不是做这个的时候",
	ErrCodeInvalidBid:          "无效的预测",
	ErrCodeIllegalCardPlay:     "这张牌现在不能出",
	ErrCodeUnresolvedTigres:    "请先决定蒂格雷丝的身份",
	ErrCodeInsufficientPlayers: "人数不足",
	ErrCodeEmptyTrick:          "本墩还没有出牌",
	ErrCodeServerMaintenance:   "服务器维护中",
}
