package nodes

import "medicine_recommender/internal/workflow"

// NewRegistry 注册所有可用的 Workflow 节点
func NewRegistry(rec Recommender) *workflow.Registry {
	registry := workflow.NewRegistry()

	// 相似度召回 (使用闭包注入推荐器)
	registry.Register("recall_similarity", func(cfg workflow.NodeConfig) (workflow.Node, error) {
		return NewSimilarityRecallNode(cfg, rec)
	})

	registry.Register("filter_min_score", NewMinScoreFilterNode)
	registry.Register("rank_simple", NewSimpleRankNode)
	registry.Register("decorate_purchase", NewPurchaseLinkNode)

	return registry
}

// DefaultPipelines 没有 Pipeline 配置文件时使用的场景
func DefaultPipelines() workflow.GlobalConfig {
	return workflow.GlobalConfig{
		Pipelines: map[string]workflow.PipelineConfig{
			"medicine": {
				Description: "Top-5 most similar medicines with purchase links",
				Nodes: []workflow.NodeConfig{
					{Name: "similarity", Type: "recall_similarity", Config: map[string]interface{}{"count": float64(5)}},
					{Name: "purchase", Type: "decorate_purchase"},
				},
			},
		},
	}
}
