package nodes

import (
	"fmt"
	"sort"

	"medicine_recommender/internal/workflow"
)

type SimpleRankNode struct {
	name  string
	limit int
	order string // "desc", "asc", "none"
}

func NewSimpleRankNode(cfg workflow.NodeConfig) (workflow.Node, error) {
	limit, _ := cfg.Config["limit"].(float64)
	order, _ := cfg.Config["order"].(string)

	switch order {
	case "":
		order = "desc"
	case "desc", "asc", "none":
	default:
		return nil, fmt.Errorf("rank node '%s': unknown order %q", cfg.Name, order)
	}

	return &SimpleRankNode{
		name:  cfg.Name,
		limit: int(limit),
		order: order,
	}, nil
}

func (n *SimpleRankNode) Name() string { return n.name }
func (n *SimpleRankNode) Type() string { return "rank" }

func (n *SimpleRankNode) Execute(ctx *workflow.Context) error {
	candidates := ctx.GetCandidates()
	if len(candidates) == 0 {
		return nil
	}

	// 稳定排序，同分保持召回顺序
	switch n.order {
	case "desc":
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Score > candidates[j].Score
		})
	case "asc":
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Score < candidates[j].Score
		})
	}

	// 截断
	if n.limit > 0 && len(candidates) > n.limit {
		candidates = candidates[:n.limit]
	}

	ctx.UpdateCandidates(candidates)
	ctx.AddLog(fmt.Sprintf("Rank (%s) completed. Strategy: %s, Result count: %d", n.name, n.order, len(candidates)))

	return nil
}
