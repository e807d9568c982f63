package nodes

import (
	"fmt"

	"medicine_recommender/internal/model"
	"medicine_recommender/internal/workflow"
)

// MinScoreFilterNode 过滤掉相似度低于阈值的候选
type MinScoreFilterNode struct {
	name     string
	minScore float64
}

func NewMinScoreFilterNode(cfg workflow.NodeConfig) (workflow.Node, error) {
	minScore, ok := cfg.Config["min_score"].(float64)
	if !ok {
		return nil, fmt.Errorf("filter node '%s' missing 'min_score'", cfg.Name)
	}

	return &MinScoreFilterNode{
		name:     cfg.Name,
		minScore: minScore,
	}, nil
}

func (n *MinScoreFilterNode) Name() string { return n.name }
func (n *MinScoreFilterNode) Type() string { return "filter" }

func (n *MinScoreFilterNode) Execute(ctx *workflow.Context) error {
	candidates := ctx.GetCandidates()
	if len(candidates) == 0 {
		return nil
	}

	var kept []*model.Item
	filteredCount := 0
	for _, item := range candidates {
		if item.Score >= n.minScore {
			kept = append(kept, item)
		} else {
			filteredCount++
		}
	}

	ctx.UpdateCandidates(kept)
	ctx.AddLog(fmt.Sprintf("MinScore filter (%s) removed %d items, kept %d", n.name, filteredCount, len(kept)))
	return nil
}
