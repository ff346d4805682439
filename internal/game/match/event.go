package match

import (
	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/game/rule"
)

// Event 状态转换产生的事件，由调用方在转换完成后渲染和推送
type Event interface {
	event()
}

// EventDealt 新一回合发牌完成
type EventDealt struct {
	Round    int
	Recycled bool // 发牌前回收了弃牌
}

// BidEntry 一名玩家的预测
type BidEntry struct {
	PlayerID string
	Name     string
	Bid      int
}

// EventBidsComplete 所有玩家预测完毕，进入出牌阶段
type EventBidsComplete struct {
	Round int
	Bids  []BidEntry
}

// EventCardPlayed 有人出牌
type EventCardPlayed struct {
	PlayerID string
	Name     string
	Card     card.Card
}

// EventTrickResolved 一墩结算完毕
type EventTrickResolved struct {
	WinnerID   string
	WinnerName string
	Card       card.Card
	HasKraken  bool
	Trick      []TrickEntry
}

// RoundScore 一名玩家的回合结算
type RoundScore struct {
	PlayerID string
	Name     string
	Computer bool
	Bid      int
	Won      int
	Bonus    rule.Bonus
	Score    int // 本回合得分
	Total    int // 累计得分
}

// EventRoundScored 回合结算
type EventRoundScored struct {
	Round   int
	Results []RoundScore
}

// Standing 排名
type Standing struct {
	Rank     int
	PlayerID string
	Name     string
	Computer bool
	Score    int
	History  []int
	BidsHit  int
}

// EventMatchFinished 整场结束
type EventMatchFinished struct {
	Standings []Standing
}

func (EventDealt) event()         {}
func (EventBidsComplete) event()  {}
func (EventCardPlayed) event()    {}
func (EventTrickResolved) event() {}
func (EventRoundScored) event()   {}
func (EventMatchFinished) event() {}
