package server

import "github.com/palemoky/skull-king/internal/protocol"

// GetOnlineCount 在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// recipients 在锁内挑出收件人，发送在锁外进行
func (s *Server) recipients(keep func(*Client) bool) []*Client {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	out := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		if keep == nil || keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Broadcast 发给所有连接
func (s *Server) Broadcast(msg *protocol.Message) {
	for _, c := range s.recipients(nil) {
		c.SendMessage(msg)
	}
}

// BroadcastToLobby 只发给还没入座的玩家
func (s *Server) BroadcastToLobby(msg *protocol.Message) {
	lobby := s.recipients(func(c *Client) bool { return c.GetTable() == "" })
	for _, c := range lobby {
		c.SendMessage(msg)
	}
}
