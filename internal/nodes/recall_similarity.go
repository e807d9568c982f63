package nodes

import (
	"fmt"

	"medicine_recommender/internal/model"
	"medicine_recommender/internal/recommend"
	"medicine_recommender/internal/workflow"
)

// Recommender 相似度召回所依赖的推荐器
type Recommender interface {
	Recommend(name string, k int) ([]model.Recommendation, error)
}

// SimilarityRecallNode 从预计算相似度矩阵中召回 Top-K 药品
type SimilarityRecallNode struct {
	name  string
	rec   Recommender
	count int
}

// NewSimilarityRecallNode 工厂函数，推荐器由外部注入
func NewSimilarityRecallNode(cfg workflow.NodeConfig, rec Recommender) (workflow.Node, error) {
	count, ok := cfg.Config["count"].(float64)
	if !ok {
		count = recommend.DefaultK
	}
	if count <= 0 {
		return nil, fmt.Errorf("recall node '%s': count must be positive", cfg.Name)
	}

	return &SimilarityRecallNode{
		name:  cfg.Name,
		rec:   rec,
		count: int(count),
	}, nil
}

func (n *SimilarityRecallNode) Name() string { return n.name }
func (n *SimilarityRecallNode) Type() string { return "recall" }

func (n *SimilarityRecallNode) Execute(ctx *workflow.Context) error {
	recs, err := n.rec.Recommend(ctx.Query, n.count)
	if err != nil {
		return fmt.Errorf("similarity recall failed: %w", err)
	}

	items := make([]*model.Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, &model.Item{
			ID:     r.Name,
			Name:   r.Name,
			Score:  r.Score,
			Source: n.name,
		})
	}

	ctx.SetRecallResult(n.name, items)
	ctx.AddLog(fmt.Sprintf("Similarity recall (%s) returned %d items for %s", n.name, len(items), ctx.Query))
	return nil
}
