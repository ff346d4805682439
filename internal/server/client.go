package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/skull-king/internal/logger"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 8192
)

// Client 代表一个连接的玩家
type Client struct {
	ID   string // 玩家唯一 ID
	Name string // 玩家昵称
	IP   string // 客户端 IP 地址

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu      sync.RWMutex
	tableID string
	closed  bool
}

// NewClient 创建新客户端
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.NewString(),
		Name:   GenerateNickname(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// ReadPump 从 WebSocket 读取消息
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.Panic(r)
		}
		c.handleDisconnect()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("读取错误", "player", c.Name, "err", err)
			}
			return
		}

		msg, err := codec.Decode(data)
		if err != nil {
			log.Debug("消息解析错误", "player", c.Name, "err", err)
			c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		if !c.server.msgLimiter.Allow(c.ID) {
			c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeRateLimit))
			codec.PutMessage(msg)
			continue
		}

		c.server.handler.Handle(c, msg)
		codec.PutMessage(msg)
	}
}

// WritePump 向 WebSocket 写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息给客户端
func (c *Client) SendMessage(msg *protocol.Message) {
	data, err := codec.Encode(msg)
	if err != nil {
		log.Error("消息编码错误", "type", msg.Type, "err", err)
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		// 发送缓冲区已满，关闭连接
		log.Warn("客户端发送缓冲区已满", "player", c.ID)
		go c.Close()
	}
}

// handleDisconnect 处理断开连接
func (c *Client) handleDisconnect() {
	c.server.handler.HandleDisconnect(c)
	c.server.unregisterClient(c)
	c.server.msgLimiter.Forget(c.ID)
	c.Close()
}

// Close 关闭客户端连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) GetID() string   { return c.ID }
func (c *Client) GetName() string { return c.Name }

// SetTable 设置客户端所在牌桌
func (c *Client) SetTable(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tableID = id
}

// GetTable 获取客户端所在牌桌
func (c *Client) GetTable() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableID
}
