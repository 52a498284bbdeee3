package authz

import (
	"sync"
	"time"

	"github.com/wordmart/internal/models"
)

// PermissionCache 角色权限缓存接口
// 以角色ID为键缓存权限列表，角色变更时必须调用 Invalidate
type PermissionCache interface {
	Get(roleID uint) (models.ModulePermissionList, bool)
	Set(roleID uint, perms models.ModulePermissionList)
	Invalidate(roleID uint)
}

type cacheEntry struct {
	perms     models.ModulePermissionList
	expiresAt time.Time
}

// MemoryPermissionCache 进程内 TTL 缓存实现
type MemoryPermissionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uint]cacheEntry
}

// NewMemoryPermissionCache 创建进程内权限缓存
func NewMemoryPermissionCache(ttl time.Duration) *MemoryPermissionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemoryPermissionCache{
		ttl:     ttl,
		entries: make(map[uint]cacheEntry),
	}
}

// Get 读取缓存，过期条目视为未命中并顺带清除
func (c *MemoryPermissionCache) Get(roleID uint) (models.ModulePermissionList, bool) {
	c.mu.RLock()
	entry, ok := c.entries[roleID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Invalidate(roleID)
		return nil, false
	}
	return entry.perms, true
}

// Set 写入缓存
func (c *MemoryPermissionCache) Set(roleID uint, perms models.ModulePermissionList) {
	c.mu.Lock()
	c.entries[roleID] = cacheEntry{
		perms:     perms,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate 移除指定角色的缓存
func (c *MemoryPermissionCache) Invalidate(roleID uint) {
	c.mu.Lock()
	delete(c.entries, roleID)
	c.mu.Unlock()
}
