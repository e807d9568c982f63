package model

// Medicine 代表目录中的一种药品
type Medicine struct {
	Index int    `json:"index"` // 在目录中的位置 (0-based)，加载后不变
	Name  string `json:"name"`
}

// Recommendation 代表一条推荐结果 (药品名 + 相似度)
type Recommendation struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Item 代表推荐流程中的一个候选条目
type Item struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`             // 相似度分数
	Source string  `json:"source"`            // 召回源标记 (e.g., "similarity")
	BuyURL string  `json:"buy_url,omitempty"` // 购买链接
}
