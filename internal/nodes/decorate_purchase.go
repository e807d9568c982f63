package nodes

import (
	"fmt"

	"medicine_recommender/internal/workflow"
)

// DefaultPurchaseBaseURL PharmEasy 搜索地址，药品名原样拼接 (不做 URL 编码)
const DefaultPurchaseBaseURL = "https://pharmeasy.in/search/all?name="

// PurchaseURL 构造药品的购买搜索链接
func PurchaseURL(baseURL, medicine string) string {
	return baseURL + medicine
}

// PurchaseLinkNode 为每个候选附加购买链接
type PurchaseLinkNode struct {
	name    string
	baseURL string
}

func NewPurchaseLinkNode(cfg workflow.NodeConfig) (workflow.Node, error) {
	baseURL, _ := cfg.Config["base_url"].(string)
	if baseURL == "" {
		baseURL = DefaultPurchaseBaseURL
	}
	return &PurchaseLinkNode{name: cfg.Name, baseURL: baseURL}, nil
}

func (n *PurchaseLinkNode) Name() string { return n.name }
func (n *PurchaseLinkNode) Type() string { return "decorate" }

func (n *PurchaseLinkNode) Execute(ctx *workflow.Context) error {
	candidates := ctx.GetCandidates()
	for _, item := range candidates {
		item.BuyURL = PurchaseURL(n.baseURL, item.Name)
	}
	ctx.UpdateCandidates(candidates)
	ctx.AddLog(fmt.Sprintf("Purchase links (%s) attached to %d items", n.name, len(candidates)))
	return nil
}
