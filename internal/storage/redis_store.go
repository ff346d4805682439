package storage

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	tableKeyPrefix = "table:"
	tableIndexKey  = "tables"

	// 牌桌目录过期时间
	tableExpiration = 2 * time.Hour
)

// TableData 牌桌目录信息（用于 Redis 序列化），只保存展示用的概要，不保存对局
type TableData struct {
	ID        string   `json:"id"`
	HostID    string   `json:"host_id"`
	HostName  string   `json:"host_name"`
	Phase     string   `json:"phase"`
	Round     int      `json:"round"`
	Players   []string `json:"players"`
	Computers int      `json:"computers"`
	MaxSeats  int      `json:"max_seats"`
	CreatedAt int64    `json:"created_at"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Client 底层 Redis 客户端
func (rs *RedisStore) Client() *redis.Client {
	return rs.client
}

// Ping 检查 Redis 连接
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// Close 关闭连接
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// --- 牌桌目录 ---

// SaveTable 保存牌桌概要
func (rs *RedisStore) SaveTable(ctx context.Context, data *TableData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化牌桌数据失败: %w", err)
	}

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, tableKeyPrefix+data.ID, jsonData, tableExpiration)
	pipe.SAdd(ctx, tableIndexKey, data.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// LoadTable 读取牌桌概要，不存在时返回 nil
func (rs *RedisStore) LoadTable(ctx context.Context, id string) (*TableData, error) {
	data, err := rs.client.Get(ctx, tableKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var table TableData
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("反序列化牌桌数据失败: %w", err)
	}
	return &table, nil
}

// DeleteTable 删除牌桌概要
func (rs *RedisStore) DeleteTable(ctx context.Context, id string) error {
	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, tableKeyPrefix+id)
	pipe.SRem(ctx, tableIndexKey, id)
	_, err := pipe.Exec(ctx)
	return err
}

// ListTables 列出所有牌桌，顺带清理已过期的索引项
func (rs *RedisStore) ListTables(ctx context.Context) ([]TableData, error) {
	ids, err := rs.client.SMembers(ctx, tableIndexKey).Result()
	if err != nil {
		return nil, err
	}

	tables := make([]TableData, 0, len(ids))
	for _, id := range ids {
		table, err := rs.LoadTable(ctx, id)
		if err != nil {
			return nil, err
		}
		if table == nil {
			rs.client.SRem(ctx, tableIndexKey, id)
			continue
		}
		tables = append(tables, *table)
	}

	SortTables(tables)
	return tables, nil
}

// SortTables 按创建时间排序，同一时间按 ID
func SortTables(tables []TableData) {
	slices.SortFunc(tables, func(a, b TableData) int {
		if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
