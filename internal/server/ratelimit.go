package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// RateLimiter 按 key（IP 或玩家 ID）限制请求频率，超限后封禁一段时间
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry

	perSecond   int
	perMinute   int
	banDuration time.Duration

	now  func() time.Time
	done chan struct{}
	once sync.Once
}

type rateEntry struct {
	secondCount int
	minuteCount int
	lastSecond  time.Time
	lastMinute  time.Time
	bannedUntil time.Time
}

// 默认限流参数
const (
	connPerSecond   = 5
	connPerMinute   = 30
	connBanDuration = time.Minute

	msgPerSecond   = 20
	msgPerMinute   = 300
	msgBanDuration = 10 * time.Second
)

const (
	rateCleanupInterval = 5 * time.Minute
	rateEntryTTL        = 10 * time.Minute
)

// NewRateLimiter 创建限流器并启动过期清理
func NewRateLimiter(perSecond, perMinute int, banDuration time.Duration) *RateLimiter {
	rl := &RateLimiter{
		entries:     make(map[string]*rateEntry),
		perSecond:   perSecond,
		perMinute:   perMinute,
		banDuration: banDuration,
		now:         time.Now,
		done:        make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow 记录一次请求，返回是否放行
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	e, ok := rl.entries[key]
	if !ok {
		rl.entries[key] = &rateEntry{secondCount: 1, minuteCount: 1, lastSecond: now, lastMinute: now}
		return true
	}

	if now.Before(e.bannedUntil) {
		return false
	}
	if now.Sub(e.lastSecond) >= time.Second {
		e.secondCount, e.lastSecond = 0, now
	}
	if now.Sub(e.lastMinute) >= time.Minute {
		e.minuteCount, e.lastMinute = 0, now
	}

	e.secondCount++
	e.minuteCount++
	if e.secondCount > rl.perSecond || e.minuteCount > rl.perMinute {
		e.bannedUntil = now.Add(rl.banDuration)
		log.Warn("⚠️ 请求过于频繁，暂时封禁", "key", key, "duration", rl.banDuration)
		return false
	}
	return true
}

// IsBanned 是否处于封禁期
func (rl *RateLimiter) IsBanned(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	e, ok := rl.entries[key]
	return ok && rl.now().Before(e.bannedUntil)
}

// Forget 删除 key 的记录，玩家断线时调用
func (rl *RateLimiter) Forget(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.entries, key)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rateCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

// cleanup 删除长时间没有请求且未封禁的记录
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for key, e := range rl.entries {
		if now.Sub(e.lastMinute) > rateEntryTTL && now.After(e.bannedUntil) {
			delete(rl.entries, key)
		}
	}
}

// Stop 停止清理协程
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}
