package workflow

import (
	"context"
	"sync"

	"medicine_recommender/internal/model"
)

// Context 承载一次推荐请求的所有状态信息
type Context struct {
	Ctx    context.Context
	Query  string // 查询的药品名
	Config map[string]interface{}

	// 数据流转区 (需要锁保护)
	mu            sync.RWMutex
	Candidates    []*model.Item            // 当前的主候选集
	RecallResults map[string][]*model.Item // 各路召回的原始结果 key: source_name
	TraceLog      []string                 // 执行日志
}

// NewContext 创建一个新的工作流上下文
func NewContext(ctx context.Context, query string) *Context {
	return &Context{
		Ctx:           ctx,
		Query:         query,
		Config:        make(map[string]interface{}),
		RecallResults: make(map[string][]*model.Item),
		Candidates:    make([]*model.Item, 0),
		TraceLog:      make([]string, 0),
	}
}

// SetRecallResult 记录特定召回源的结果，并合并到候选集
func (c *Context) SetRecallResult(source string, items []*model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RecallResults[source] = items
	c.Candidates = append(c.Candidates, items...)
}

// GetCandidates 获取当前候选集的副本
func (c *Context) GetCandidates() []*model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*model.Item, len(c.Candidates))
	copy(result, c.Candidates)
	return result
}

// UpdateCandidates 更新整个候选集
// 通常用于过滤或排序阶段
func (c *Context) UpdateCandidates(items []*model.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Candidates = items
}

// AddLog 添加追踪日志
func (c *Context) AddLog(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TraceLog = append(c.TraceLog, msg)
}

// Logs 返回追踪日志副本
func (c *Context) Logs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.TraceLog))
	copy(out, c.TraceLog)
	return out
}

// Node 定义工作流中的执行节点
type Node interface {
	Name() string
	Type() string // e.g., "recall", "filter", "rank", "decorate"
	Execute(ctx *Context) error
}
