// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/skull-king/internal/protocol"
)

// Icon constants
const (
	HostIcon     = "👑"
	ComputerIcon = "🤖"
	TurnIcon     = "▶"
	KrakenIcon   = "🐙"
)

// Lipgloss Styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	OkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

var cardBase = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var colorStyles = map[string]lipgloss.Style{
	"green":  cardBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2E7D32")),
	"yellow": cardBase.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#F9A825")),
	"purple": cardBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#6A1B9A")),
	"black":  cardBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#212121")),
}

var kindStyles = map[string]lipgloss.Style{
	"skull_king": cardBase.Foreground(lipgloss.Color("#FFD700")).Background(lipgloss.Color("#B71C1C")),
	"pirate":     cardBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#C62828")),
	"mermaid":    cardBase.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#0277BD")),
	"tigres":     cardBase.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FF8F00")),
	"escape":     cardBase.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#ECEFF1")),
}

// CardStyle 按花色或种类选择牌面样式
func CardStyle(c protocol.CardInfo) lipgloss.Style {
	if s, ok := colorStyles[c.Color]; ok {
		return s
	}
	if s, ok := kindStyles[c.Kind]; ok {
		return s
	}
	return cardBase
}

// RenderCard 渲染一张牌
func RenderCard(c protocol.CardInfo) string {
	return CardStyle(c).Render(c.Label)
}
