package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/skull-king/internal/config"
	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/server/handler"
	"github.com/palemoky/skull-king/internal/session"
	"github.com/palemoky/skull-king/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server WebSocket 服务器
type Server struct {
	config      *config.Config
	redis       *redis.Client
	redisStore  *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	history     *storage.History
	tables      *session.Manager
	clients     map[string]*Client
	clientsMu   sync.RWMutex
	handler     *handler.Handler
	httpServer  *http.Server

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 限流：连接按 IP，消息按玩家
	connLimiter *RateLimiter
	msgLimiter  *RateLimiter

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	var history *storage.History
	if cfg.Storage.HistoryDB != "" {
		h, err := storage.OpenHistory(cfg.Storage.HistoryDB)
		if err != nil {
			_ = rdb.Close()
			return nil, err
		}
		history = h
	}

	return newServer(cfg, rdb, history), nil
}

func newServer(cfg *config.Config, rdb *redis.Client, history *storage.History) *Server {
	s := &Server{
		config:         cfg,
		redis:          rdb,
		redisStore:     storage.NewRedisStore(rdb),
		leaderboard:    storage.NewLeaderboardManager(rdb),
		history:        history,
		clients:        make(map[string]*Client),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		connLimiter:    NewRateLimiter(connPerSecond, connPerMinute, connBanDuration),
		msgLimiter:     NewRateLimiter(msgPerSecond, msgPerMinute, msgBanDuration),
	}

	// 初始化牌桌管理器
	s.tables = session.NewManager(session.Options{
		Match: match.Config{
			MaxRounds: cfg.Game.MaxRounds,
			MaxSeats:  cfg.Game.MaxSeats,
			MinSeats:  cfg.Game.MinSeats,
		},
		IdleTimeout: cfg.Game.TableTimeoutDuration(),
		Directory:   s.redisStore,
	})

	deps := handler.HandlerDeps{
		Server:      s,
		Tables:      s.tables,
		Leaderboard: s.leaderboard,
	}
	if history != nil {
		deps.History = history
	}
	s.handler = handler.NewHandler(deps)

	return s
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	go s.monitorStats()

	log.Info("🚀 服务器启动", "addr", "ws://"+addr+"/ws", "cpus", runtime.NumCPU())
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
