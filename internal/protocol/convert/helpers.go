package convert

import (
	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/game/rule"
	"github.com/palemoky/skull-king/internal/protocol"
)

// --- Player conversion ---

// PlayerToInfo 座位信息，hostID 用于标记桌主
func PlayerToInfo(p *match.Player, hostID string) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:        p.ID,
		Name:      p.Name,
		Computer:  p.Computer,
		Host:      p.ID == hostID,
		Score:     p.Score,
		Bid:       p.Bid,
		Won:       p.Won,
		HandCount: len(p.Hand),
	}
}

func PlayersToInfos(players []*match.Player, hostID string) []protocol.PlayerInfo {
	result := make([]protocol.PlayerInfo, len(players))
	for i, p := range players {
		result[i] = PlayerToInfo(p, hostID)
	}
	return result
}

// --- Hand / trick conversion ---

func HandToProto(entries []match.HandEntry) []protocol.HandCard {
	result := make([]protocol.HandCard, len(entries))
	for i, e := range entries {
		result[i] = protocol.HandCard{Card: CardToInfo(e.Card), Legal: e.Legal}
	}
	return result
}

func TrickEntriesToProto(entries []match.TrickEntry) []protocol.TrickCard {
	result := make([]protocol.TrickCard, len(entries))
	for i, e := range entries {
		result[i] = protocol.TrickCard{PlayerID: e.PlayerID, PlayerName: e.OwnerName, Card: CardToInfo(e.Card)}
	}
	return result
}

// --- Score conversion ---

func BonusToInfo(b rule.Bonus) protocol.BonusInfo {
	fourteens := 0
	for _, v := range b.Fourteens {
		fourteens += v
	}
	return protocol.BonusInfo{
		Fourteens: fourteens,
		Mermaid:   b.Mermaid,
		SkullKing: b.SkullKing,
		GoldGet:   b.GoldGet,
		GoldGive:  b.GoldGive,
		Total:     b.Total(),
	}
}

func RoundScoresToProto(scores []match.RoundScore) []protocol.RoundScoreInfo {
	result := make([]protocol.RoundScoreInfo, len(scores))
	for i, s := range scores {
		result[i] = protocol.RoundScoreInfo{
			PlayerID:   s.PlayerID,
			PlayerName: s.Name,
			Bid:        s.Bid,
			Won:        s.Won,
			Bonus:      BonusToInfo(s.Bonus),
			Score:      s.Score,
			Total:      s.Total,
		}
	}
	return result
}

func StandingsToProto(standings []match.Standing) []protocol.StandingInfo {
	result := make([]protocol.StandingInfo, len(standings))
	for i, s := range standings {
		result[i] = protocol.StandingInfo{
			Rank:       s.Rank,
			PlayerID:   s.PlayerID,
			PlayerName: s.Name,
			Computer:   s.Computer,
			Score:      s.Score,
			History:    s.History,
		}
	}
	return result
}

func BidsToProto(bids []match.BidEntry) []protocol.BidInfo {
	result := make([]protocol.BidInfo, len(bids))
	for i, b := range bids {
		result[i] = protocol.BidInfo{PlayerID: b.PlayerID, PlayerName: b.Name, Bid: b.Bid}
	}
	return result
}
