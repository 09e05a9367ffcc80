package utils

import (
	"html/template"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// renderEntry 渲染结果与过期时间
type renderEntry struct {
	html      template.HTML
	expiresAt time.Time
}

// RenderCache 文章正文渲染结果的进程内缓存。
// Markdown 渲染加净化是详情页最贵的一步，热点文章按 TTL 复用。
type RenderCache struct {
	entries *lru.Cache[string, renderEntry]
}

var renderCache *RenderCache

// GetCache 获取单例缓存实例
func GetCache() *RenderCache {
	if renderCache == nil {
		// 容量 500，足够覆盖热点文章
		l, err := lru.New[string, renderEntry](500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		renderCache = &RenderCache{entries: l}
	}
	return renderCache
}

// Set 缓存渲染结果，TTL 为过期时间
func (c *RenderCache) Set(key string, html template.HTML, ttl time.Duration) {
	c.entries.Add(key, renderEntry{
		html:      html,
		expiresAt: time.Now().Add(ttl),
	})
}

// Get 读取缓存，不存在或已过期时 ok 为 false
func (c *RenderCache) Get(key string) (template.HTML, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return "", false
	}
	return entry.html, true
}

// Delete 文章更新或隐藏时主动失效
func (c *RenderCache) Delete(key string) {
	c.entries.Remove(key)
}
