package main

import (
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/palemoky/skull-king/internal/logger"
	"github.com/palemoky/skull-king/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:1780", "服务器地址")
	flag.Parse()

	if err := logger.InitClient(); err != nil {
		log.Warn("无法写入日志文件", "err", err)
	}
	defer logger.Close()

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)
	p := tea.NewProgram(ui.NewModel(serverURL), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal("启动客户端时出错", "err", err)
	}
}
