package transport

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/palemoky/skull-king/internal/logger"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
)

// readPump 从服务器读取消息
func (c *Client) readPump() {
	defer c.handleReadExit()

	c.setupPongHandler()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}

		msg, err := codec.Decode(data)
		if err != nil {
			log.Warn("消息解析错误", "err", err)
			continue
		}

		c.processMessage(msg)
	}
}

func (c *Client) handleReadExit() {
	if r := recover(); r != nil {
		logger.Panic(r)
	}
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}

func (c *Client) setupPongHandler() {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

func (c *Client) handleReadError(err error) {
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Warn("连接异常断开", "err", err)
		if c.OnError != nil {
			c.OnError(err)
		}
	}
}

func (c *Client) processMessage(msg *protocol.Message) {
	c.handleInternalMessage(msg)

	if c.OnMessage != nil {
		c.OnMessage(msg)
	}

	// 队列满时丢弃，UI 可以随时 get_state 重新同步
	select {
	case c.receive <- msg:
	default:
		log.Debug("接收队列已满，丢弃消息", "type", msg.Type)
	}
}

func (c *Client) handleInternalMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgConnected:
		if payload, err := codec.ParsePayload[protocol.ConnectedPayload](msg); err == nil {
			c.mu.Lock()
			c.playerID = payload.PlayerID
			c.playerName = payload.PlayerName
			c.mu.Unlock()
		}
	case protocol.MsgPong:
		if payload, err := codec.ParsePayload[protocol.PongPayload](msg); err == nil {
			latency := time.Now().UnixMilli() - payload.ClientTimestamp
			c.latency.Store(latency)
			if c.OnLatencyUpdate != nil {
				c.OnLatencyUpdate(latency)
			}
		}
	}
}

// writePump 向服务器写入消息
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.Panic(r)
		}
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
