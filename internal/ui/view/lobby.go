package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/ui/common"
)

// MenuItems 大厅菜单
var MenuItems = []string{
	"1. 创建牌桌",
	"2. 牌桌列表",
	"3. 我的战绩",
	"4. 排行榜",
	"5. 退出",
}

var phaseNames = map[string]string{
	"ready":     "等待开始",
	"expecting": "预测中",
	"putting":   "出牌中",
	"finished":  "已结束",
}

// PhaseName 阶段的中文名
func PhaseName(phase string) string {
	if name, ok := phaseNames[phase]; ok {
		return name
	}
	return phase
}

// Lobby 大厅
func Lobby(f Frame) string {
	var sb strings.Builder
	sb.WriteString(center(f, common.TitleStyle("☠️  骷髅王")))
	sb.WriteString("\n\n")

	if f.State != nil && f.State.MyName != "" {
		welcome := fmt.Sprintf("欢迎, %s!", f.State.MyName)
		if f.Latency > 0 {
			welcome += common.DimStyle.Render(fmt.Sprintf("  延迟 %dms", f.Latency))
		}
		sb.WriteString(center(f, welcome))
		sb.WriteString("\n")
	}
	if f.State != nil && f.State.Maintenance {
		sb.WriteString(center(f, common.NoticeStyle.Render("🔧 服务器维护中，暂不能开新局")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	lines := []string{"请选择:", ""}
	for i, item := range MenuItems {
		prefix := "  "
		if i == f.Selected {
			prefix = common.TurnIcon + " "
		}
		lines = append(lines, prefix+item)
	}
	sb.WriteString(center(f, common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))))
	sb.WriteString("\n")
	sb.WriteString(footer(f, "↑↓ 选择 | 回车确认 | 或输入牌桌号加入 | ESC 退出"))
	return sb.String()
}

// Tables 牌桌列表
func Tables(f Frame) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🏴‍☠️ 牌桌列表"))
	sb.WriteString("\n\n")

	var tables []protocol.TableListItem
	if f.State != nil {
		tables = f.State.Tables
	}
	if len(tables) == 0 {
		sb.WriteString(common.DimStyle.Render("暂无牌桌，回大厅创建一个吧"))
		sb.WriteString("\n")
	} else {
		sb.WriteString(common.HeaderStyle.Render(fmt.Sprintf("  %-8s %s %s %-6s %s",
			"牌桌", common.FitName("桌主", 12), common.FitName("状态", 8), "回合", "座位")))
		sb.WriteString("\n")
		for i, t := range tables {
			prefix := "  "
			if i == f.Selected {
				prefix = common.TurnIcon + " "
			}
			fmt.Fprintf(&sb, "%s%-8s %s %s %-6d %d+%d/%d\n",
				prefix, t.TableID, common.FitName(t.HostName, 12), common.FitName(PhaseName(t.Phase), 8),
				t.Round, t.Players, t.Computers, t.MaxSeats)
		}
	}
	sb.WriteString(footer(f, "↑↓ 选择 | 回车加入 | r 刷新 | ESC 返回"))
	return sb.String()
}

// Stats 个人战绩
func Stats(f Frame) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("📊 我的战绩"))
	sb.WriteString("\n\n")

	switch {
	case f.State == nil || f.State.Stats == nil:
		sb.WriteString(common.DimStyle.Render("加载中..."))
	case f.State.Stats.Rank < 0:
		sb.WriteString("还没有完成过对局")
	default:
		s := f.State.Stats
		rows := [][2]string{
			{"排名", fmt.Sprintf("#%d", s.Rank)},
			{"积分", fmt.Sprintf("%d", s.Rating)},
			{"对局", fmt.Sprintf("%d", s.TotalMatches)},
			{"胜场", fmt.Sprintf("%d (%.1f%%)", s.Wins, s.WinRate)},
			{"前三", fmt.Sprintf("%d", s.Podiums)},
			{"最高分", fmt.Sprintf("%d", s.BestScore)},
			{"总得分", fmt.Sprintf("%d", s.TotalPoints)},
			{"预测命中", fmt.Sprintf("%.1f%%", s.HitRate)},
			{"回合均分", fmt.Sprintf("%.1f", s.AverageRound)},
			{"连胜", fmt.Sprintf("%d (最高 %d)", s.CurrentStreak, s.MaxWinStreak)},
		}
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, common.FitName(r[0], 10)+r[1])
		}
		sb.WriteString(common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	sb.WriteString(footer(f, "ESC 返回"))
	return sb.String()
}

var boardNames = map[string]string{
	"total":  "总榜",
	"daily":  "日榜",
	"weekly": "周榜",
}

// Leaderboard 排行榜
func Leaderboard(f Frame) string {
	var sb strings.Builder
	if f.State == nil || f.State.Leaderboard == nil {
		sb.WriteString(common.TitleStyle("🏆 排行榜"))
		sb.WriteString("\n\n")
		sb.WriteString(common.DimStyle.Render("加载中..."))
		sb.WriteString(footer(f, "ESC 返回"))
		return sb.String()
	}

	lb := f.State.Leaderboard
	sb.WriteString(common.TitleStyle("🏆 排行榜 · " + boardNames[lb.Type]))
	sb.WriteString("\n\n")
	if len(lb.Entries) == 0 {
		sb.WriteString(common.DimStyle.Render("暂无数据"))
		sb.WriteString("\n")
	}
	for _, e := range lb.Entries {
		line := fmt.Sprintf("%3d. %s %5d 分  %d/%d 胜  最高 %d",
			e.Rank, common.FitName(e.PlayerName, 14), e.Rating, e.Wins, e.Matches, e.BestScore)
		if f.State.MyID == e.PlayerID {
			line = common.OkStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(footer(f, "Tab 切换榜单 | ESC 返回"))
	return sb.String()
}
