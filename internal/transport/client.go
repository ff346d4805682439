package transport

import (
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 应用层心跳间隔，用于测量延迟
	heartbeatInterval = 5 * time.Second
	handshakeTimeout  = 10 * time.Second
)

var (
	ErrClosed     = errors.New("connection closed")
	ErrBufferFull = errors.New("send buffer full")
	ErrTimeout    = errors.New("receive timeout")
)

// Client 连接服务端的 WebSocket 客户端
type Client struct {
	ServerURL string
	conn      *websocket.Conn
	send      chan []byte
	receive   chan *protocol.Message
	done      chan struct{}

	mu         sync.RWMutex
	playerID   string
	playerName string
	closed     bool
	latency    atomic.Int64 // 毫秒

	// 回调在读协程中执行
	OnMessage       func(*protocol.Message)
	OnError         func(error)
	OnClose         func()
	OnLatencyUpdate func(int64)
}

func NewClient(serverURL string) *Client {
	return &Client{
		ServerURL: serverURL,
		send:      make(chan []byte, 256),
		receive:   make(chan *protocol.Message, 256),
		done:      make(chan struct{}),
	}
}

// Connect 连接服务器并启动读写协程
func (c *Client) Connect() error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, resp, err := dialer.Dial(c.ServerURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusServiceUnavailable {
			return errors.New("服务器维护中，暂不接受新连接")
		}
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()
	return nil
}

// SendMessage 编码后放入发送队列
func (c *Client) SendMessage(msg *protocol.Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Receive 阻塞接收下一条消息
func (c *Client) Receive() (*protocol.Message, error) {
	select {
	case msg := <-c.receive:
		return msg, nil
	case <-c.done:
		return nil, ErrClosed
	}
}

func (c *Client) ReceiveWithTimeout(timeout time.Duration) (*protocol.Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-c.receive:
		return msg, nil
	case <-timer.C:
		return nil, ErrTimeout
	case <-c.done:
		return nil, ErrClosed
	}
}

// Messages 供 UI 循环读取
func (c *Client) Messages() <-chan *protocol.Message {
	return c.receive
}

// Done 连接关闭时关闭
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// Identity 服务端分配的玩家 ID 与昵称，收到 connected 前为空
func (c *Client) Identity() (id, name string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID, c.playerName
}

func (c *Client) Latency() int64 {
	return c.latency.Load()
}

// StartHeartbeat 定时发送 ping 测量延迟
func (c *Client) StartHeartbeat() {
	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if c.IsConnected() {
					_ = c.Ping()
				}
			case <-c.done:
				return
			}
		}
	}()
}
