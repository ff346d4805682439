//go:build !production

package testutil

import (
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/skull-king/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetTable() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetTable(id string) {
	m.Called(id)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的客户端替身，记录收到的消息，可并发使用
type SimpleClient struct {
	ID   string
	Name string

	mu       sync.Mutex
	table    string
	messages []*protocol.Message
	closed   bool
}

// NewSimpleClient 创建客户端替身
func NewSimpleClient(id, name string) *SimpleClient {
	return &SimpleClient{ID: id, Name: name}
}

func (c *SimpleClient) GetID() string   { return c.ID }
func (c *SimpleClient) GetName() string { return c.Name }

func (c *SimpleClient) GetTable() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table
}

func (c *SimpleClient) SetTable(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = id
}

func (c *SimpleClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *SimpleClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed 是否已被关闭
func (c *SimpleClient) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// SentMessages 已收到的消息副本
func (c *SimpleClient) SentMessages() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// MessagesOfType 指定类型的消息
func (c *SimpleClient) MessagesOfType(t protocol.MessageType) []*protocol.Message {
	var out []*protocol.Message
	for _, msg := range c.SentMessages() {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}

// LastMessage 最后一条消息，没有时为 nil
func (c *SimpleClient) LastMessage() *protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// Reset 清空已记录的消息
func (c *SimpleClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}
