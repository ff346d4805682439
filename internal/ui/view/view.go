// Package view renders the terminal client screens.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/skull-king/internal/client"
	"github.com/palemoky/skull-king/internal/ui/common"
)

// Screen 当前显示的界面
type Screen int

const (
	ScreenConnecting Screen = iota
	ScreenLobby
	ScreenTables
	ScreenTable
	ScreenStats
	ScreenLeaderboard
)

// Frame 渲染一帧所需的全部数据
type Frame struct {
	Screen      Screen
	Width       int
	State       *client.GameState
	Input       string // 已渲染的输入框
	Spinner     string
	Notice      string
	Error       string
	Latency     int64
	Selected    int
	ShowCounter bool
}

// Render 按界面分发
func Render(f Frame) string {
	var content string
	switch f.Screen {
	case ScreenConnecting:
		content = connecting(f)
	case ScreenLobby:
		content = Lobby(f)
	case ScreenTables:
		content = Tables(f)
	case ScreenTable:
		content = Table(f)
	case ScreenStats:
		content = Stats(f)
	case ScreenLeaderboard:
		content = Leaderboard(f)
	}
	return common.DocStyle.Render(content)
}

func connecting(f Frame) string {
	if f.Error != "" {
		return common.ErrorStyle.Render(f.Error)
	}
	return f.Spinner + " 正在连接服务器..."
}

func center(f Frame, s string) string {
	if f.Width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(f.Width, lipgloss.Center, s)
}

// footer 通知、错误与输入框
func footer(f Frame, hint string) string {
	lines := []string{}
	if f.Notice != "" {
		lines = append(lines, common.NoticeStyle.Render(f.Notice))
	}
	if f.Error != "" {
		lines = append(lines, common.ErrorStyle.Render(f.Error))
	}
	if f.Input != "" {
		lines = append(lines, f.Input)
	}
	lines = append(lines, common.DimStyle.Render(hint))
	return common.PromptStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
