package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/palemoky/skull-king/internal/client"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/ui/common"
)

const (
	nameWidth  = 14
	eventWidth = 40
)

var counterNames = map[client.Category]string{
	client.CatSkullKing: "骷髅王",
	client.CatPirate:    "海盗",
	client.CatTigres:    "蒂格雷丝",
	client.CatMermaid:   "美人鱼",
	client.CatKraken:    "海怪",
	client.CatGold:      "金币",
	client.CatEscape:    "逃跑",
	client.CatBlack14:   "黑14",
	client.CatGreen14:   "绿14",
	client.CatYellow14:  "黄14",
	client.CatPurple14:  "紫14",
}

// Table 牌桌界面
func Table(f Frame) string {
	gs := f.State
	var sb strings.Builder

	title := fmt.Sprintf("🏴‍☠️ 牌桌 %s · %s", gs.TableID, PhaseName(gs.Phase))
	if gs.Round > 0 {
		title += fmt.Sprintf(" · 第 %d/%d 回合", gs.Round, gs.MaxRounds)
	}
	sb.WriteString(common.TitleStyle(title))
	if f.Latency > 0 {
		sb.WriteString(common.DimStyle.Render(fmt.Sprintf("  %dms", f.Latency)))
	}
	sb.WriteString("\n\n")

	left := []string{seats(gs)}
	if len(gs.Trick) > 0 || gs.LastTrick != nil {
		left = append(left, trick(gs))
	}
	if gs.Phase == client.PhaseFinished && len(gs.Standings) > 0 {
		left = append(left, standings(gs.Standings))
	} else if gs.LastRound != nil {
		left = append(left, roundResult(gs.LastRound))
	}
	if len(gs.Hand) > 0 {
		left = append(left, hand(gs))
	}

	right := []string{events(gs)}
	if f.ShowCounter && gs.Phase != client.PhaseReady {
		right = append(right, counter(gs))
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left, right...),
	))
	sb.WriteString("\n")
	sb.WriteString(footer(f, tableHint(gs)))
	return sb.String()
}

func seats(gs *client.GameState) string {
	lines := []string{common.HeaderStyle.Render("座位")}
	for _, p := range gs.Players {
		prefix := "  "
		if p.ID == gs.CurrentTurn {
			prefix = common.TurnIcon + " "
		}
		icon := "  "
		switch {
		case p.Host:
			icon = common.HostIcon
		case p.Computer:
			icon = common.ComputerIcon
		}
		bid := "-"
		if p.Bid >= 0 {
			bid = fmt.Sprintf("%d", p.Bid)
		}
		line := fmt.Sprintf("%s%s %s 预测 %s  已赢 %d  总分 %4d",
			prefix, icon, common.FitName(p.Name, nameWidth), bid, p.Won, p.Score)
		if p.ID == gs.MyID {
			line = common.OkStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if gs.Phase == client.PhaseReady && gs.Computers > 0 {
		lines = append(lines, common.DimStyle.Render(fmt.Sprintf("  另有 %d 名电脑玩家将在开局时入座", gs.Computers)))
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func trick(gs *client.GameState) string {
	lines := []string{common.HeaderStyle.Render("本墩")}
	if len(gs.Trick) == 0 && gs.LastTrick != nil {
		lines[0] = common.HeaderStyle.Render("上一墩")
		for _, tc := range gs.LastTrick.Trick {
			lines = append(lines, fmt.Sprintf("%s %s", common.FitName(tc.PlayerName, nameWidth), common.RenderCard(tc.Card)))
		}
		if gs.LastTrick.Kraken {
			lines = append(lines, common.KrakenIcon+" 海怪吞掉了这一墩")
		} else {
			lines = append(lines, fmt.Sprintf("🏆 %s 赢得这一墩", gs.LastTrick.WinnerName))
		}
		return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	for _, tc := range gs.Trick {
		lines = append(lines, fmt.Sprintf("%s %s", common.FitName(tc.PlayerName, nameWidth), common.RenderCard(tc.Card)))
	}
	if gs.LeadColor != "" {
		lines = append(lines, common.DimStyle.Render("领出花色: "+gs.LeadColor))
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func hand(gs *client.GameState) string {
	cards := make([]string, 0, len(gs.Hand))
	for i, h := range gs.Hand {
		label := fmt.Sprintf("%d:", i+1)
		if gs.IsMyTurn() && !h.Legal {
			cards = append(cards, common.DimStyle.Render(label+h.Card.Label))
			continue
		}
		cards = append(cards, label+common.RenderCard(h.Card))
	}
	return common.BoxStyle.Padding(0, 1).Render(
		common.HeaderStyle.Render("手牌") + "\n" + strings.Join(cards, " "))
}

func roundResult(r *protocol.RoundResultPayload) string {
	lines := []string{common.HeaderStyle.Render(fmt.Sprintf("第 %d 回合结算", r.Round))}
	for _, s := range r.Results {
		lines = append(lines, fmt.Sprintf("%s %d/%d  奖励 %+d  得分 %+d  总分 %d",
			common.FitName(s.PlayerName, nameWidth), s.Won, s.Bid, s.Bonus.Total, s.Score, s.Total))
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func standings(st []protocol.StandingInfo) string {
	lines := []string{common.HeaderStyle.Render("最终排名")}
	for _, s := range st {
		medal := "  "
		switch s.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		lines = append(lines, fmt.Sprintf("%s %d. %s %d", medal, s.Rank, common.FitName(s.PlayerName, nameWidth), s.Score))
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func events(gs *client.GameState) string {
	lines := []string{common.HeaderStyle.Render("动态")}
	if len(gs.Events) == 0 {
		lines = append(lines, common.DimStyle.Render("暂无"))
	}
	for _, e := range gs.Events {
		lines = append(lines, wordwrap.String(e, eventWidth))
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func counter(gs *client.GameState) string {
	unseen := gs.Unseen()
	lines := []string{common.HeaderStyle.Render("记牌器（未出现）")}
	for _, cat := range client.Categories {
		line := fmt.Sprintf("%s %d", common.FitName(counterNames[cat], 10), unseen[cat])
		if unseen[cat] == 0 {
			line = common.DimStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return common.BoxStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func tableHint(gs *client.GameState) string {
	var hints []string
	switch {
	case gs.NeedsBid():
		hints = append(hints, fmt.Sprintf("输入预测墩数 0-%d", gs.Round))
	case gs.IsMyTurn():
		hints = append(hints, "输入手牌序号出牌")
	case gs.Phase == client.PhaseReady || gs.Phase == client.PhaseFinished:
		if gs.IsHost() {
			hints = append(hints, "s 开始", "c <数量> 设置电脑", "r 解散")
		} else {
			hints = append(hints, "等待桌主开始")
		}
	default:
		hints = append(hints, "等待其他玩家")
	}
	if gs.HoldsUnresolvedTigres() {
		hints = append(hints, "p/e 声明蒂格雷丝为海盗/逃跑")
	}
	hints = append(hints, "Tab 记牌器", "ESC 离开")
	return strings.Join(hints, " | ")
}
