package sound

import "github.com/palemoky/skull-king/internal/protocol"

// Cue 音效名，对应 assets/sounds 下的同名文件
type Cue string

const (
	CueDeal      Cue = "deal"       // 发牌
	CueYourTurn  Cue = "your_turn"  // 轮到自己出牌
	CuePlay      Cue = "play"       // 有人出牌
	CueTrickWon  Cue = "trick_won"  // 一墩结算
	CueKraken    Cue = "kraken"     // 海怪吞掉一墩
	CueRoundOver Cue = "round_over" // 回合结算
	CueVictory   Cue = "victory"    // 整场结束
	CueError     Cue = "error"
)

// Cues 所有音效
var Cues = []Cue{CueDeal, CueYourTurn, CuePlay, CueTrickWon, CueKraken, CueRoundOver, CueVictory, CueError}

// 没有音效文件时用于合成提示音的频率（Hz）
var cueTones = map[Cue]float64{
	CueDeal:      523.25,
	CueYourTurn:  659.25,
	CuePlay:      440,
	CueTrickWon:  783.99,
	CueKraken:    110,
	CueRoundOver: 587.33,
	CueVictory:   1046.5,
	CueError:     220,
}

var messageCues = map[protocol.MessageType]Cue{
	protocol.MsgDealt:       CueDeal,
	protocol.MsgCardPlayed:  CuePlay,
	protocol.MsgRoundResult: CueRoundOver,
	protocol.MsgMatchOver:   CueVictory,
	protocol.MsgError:       CueError,
}

// CueFor 服务端消息对应的音效，kraken 表示本墩被海怪作废
func CueFor(t protocol.MessageType, kraken bool) (Cue, bool) {
	if t == protocol.MsgTrickResult {
		if kraken {
			return CueKraken, true
		}
		return CueTrickWon, true
	}
	cue, ok := messageCues[t]
	return cue, ok
}
