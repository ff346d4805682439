//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/skull-king/internal/storage"
)

// MockLeaderboard 排行榜 mock
type MockLeaderboard struct {
	mock.Mock
}

func (m *MockLeaderboard) RecordMatchResult(ctx context.Context, result storage.MatchResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockLeaderboard) GetPlayerStats(ctx context.Context, playerID string) (*storage.PlayerStats, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PlayerStats), args.Error(1)
}

func (m *MockLeaderboard) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaderboard) GetLeaderboard(ctx context.Context, boardType string, offset, limit int) ([]storage.LeaderboardEntry, error) {
	args := m.Called(ctx, boardType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.LeaderboardEntry), args.Error(1)
}

// MockHistory 回合存档 mock
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) RecordRound(ctx context.Context, rec storage.RoundRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockHistory) PlayerSummary(ctx context.Context, playerID string) (storage.PlayerSummary, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(storage.PlayerSummary), args.Error(1)
}
