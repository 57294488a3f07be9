package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// TTLCache 带过期时间的缓存，包装 go-cache
type TTLCache[T any] struct {
	storage *cache.Cache
}

// NewTTLCache ttl 为数据有效期，cleanup 为过期清理间隔
func NewTTLCache[T any](ttl, cleanup time.Duration) *TTLCache[T] {
	return &TTLCache[T]{storage: cache.New(ttl, cleanup)}
}

// Get 获取缓存值
func (c *TTLCache[T]) Get(key string) (T, bool) {
	var zero T
	v, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	val, ok := v.(T)
	if !ok {
		return zero, false
	}
	return val, true
}

// Set 使用默认有效期设置缓存值
func (c *TTLCache[T]) Set(key string, value T) {
	c.storage.SetDefault(key, value)
}

// Delete 删除缓存
func (c *TTLCache[T]) Delete(key string) {
	c.storage.Delete(key)
}

// Len 当前条数（可能包含尚未清理的过期项）
func (c *TTLCache[T]) Len() int {
	return c.storage.ItemCount()
}

// LRU 固定容量缓存
type LRU[K comparable, V any] struct {
	storage *lru.Cache[K, V]
}

// NewLRU size 是最大缓存条数，<=0 时使用 1024
func NewLRU[K comparable, V any](size int) *LRU[K, V] {
	if size <= 0 {
		size = 1024
	}
	// 只有 size<=0 时才会返回错误
	c, _ := lru.New[K, V](size)
	return &LRU[K, V]{storage: c}
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.storage.Get(key)
}

func (c *LRU[K, V]) Add(key K, value V) {
	c.storage.Add(key, value)
}

func (c *LRU[K, V]) Remove(key K) {
	c.storage.Remove(key)
}

func (c *LRU[K, V]) Len() int {
	return c.storage.Len()
}
