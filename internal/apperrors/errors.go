package apperrors

import (
	"github.com/palemoky/skull-king/internal/protocol"
)

// GameError 游戏错误（牌桌、对局和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 规则校验错误，均在修改状态前返回
var (
	ErrInvalidBid          = newError(protocol.ErrCodeInvalidBid)
	ErrIllegalCardPlay     = newError(protocol.ErrCodeIllegalCardPlay)
	ErrUnresolvedTigres    = newError(protocol.ErrCodeUnresolvedTigres)
	ErrInsufficientPlayers = newError(protocol.ErrCodeInsufficientPlayers)
	ErrStateMismatch       = newError(protocol.ErrCodeStateMismatch)
	ErrEmptyTrick          = newError(protocol.ErrCodeEmptyTrick)
)

// 牌桌与会话错误
var (
	ErrAlreadyJoined = newError(protocol.ErrCodeAlreadyJoined)
	ErrNotInTable    = newError(protocol.ErrCodeNotInTable)
	ErrTableNotFound = newError(protocol.ErrCodeTableNotFound)
	ErrTableExists   = newError(protocol.ErrCodeTableExists)
	ErrNotHost       = newError(protocol.ErrCodeNotHost)
	ErrTooManySeats  = newError(protocol.ErrCodeTooManySeats)
)

func newError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}
