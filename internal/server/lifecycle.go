package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
)

// 优雅关闭时检查对局是否结束的间隔
const shutdownCheckInterval = 5 * time.Second

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		log.Info("📊 [监控]",
			"online", s.GetOnlineCount(),
			"tables", s.tables.Count(),
			"playing", s.tables.ActiveCount(),
			"conns", len(s.semaphore),
			"max_conns", s.maxConnections)
	}
}

// EnterMaintenanceMode 进入维护模式：拒绝新连接和新牌桌
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	s.Broadcast(codec.MustNewMessage(protocol.MsgMaintenance, protocol.MaintenancePayload{
		Maintenance: true,
		Message:     "👷🏻‍♂️ 服务器即将维护，暂停创建牌桌和开局",
	}))

	log.Info("🔧 进入维护模式：停止新连接和牌桌创建")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 等待进行中的对局结束（最多 timeout）后关闭服务器
func (s *Server) GracefulShutdown(timeout time.Duration) {
	s.EnterMaintenanceMode()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(shutdownCheckInterval)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		active := s.tables.ActiveCount()
		if active == 0 {
			log.Info("✅ 所有对局已结束")
			break
		}
		log.Info("⏳ 等待对局结束...", "playing", active)
		<-ticker.C
	}

	if active := s.tables.ActiveCount(); active > 0 {
		log.Warn("⚠️ 超时，仍有对局进行中，强制关闭", "playing", active)
	}

	s.Shutdown()
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	s.tables.Close()
	if s.history != nil {
		_ = s.history.Close()
	}
	s.connLimiter.Stop()
	s.msgLimiter.Stop()
	_ = s.redis.Close()

	log.Info("服务器已关闭")
}
