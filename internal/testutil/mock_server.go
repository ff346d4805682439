//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/types"
)

// MockServer 实现 types.ServerInterface 的 mock
type MockServer struct {
	mock.Mock
}

var _ types.ServerInterface = (*MockServer)(nil)

func (m *MockServer) IsMaintenanceMode() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockServer) BroadcastToLobby(msg *protocol.Message) {
	m.Called(msg)
}
