package recommend

import (
	"errors"
	"fmt"
	"sort"

	"medicine_recommender/internal/catalog"
	"medicine_recommender/internal/model"
)

// DefaultK 默认返回的推荐数量
const DefaultK = 5

var (
	// ErrNotFound 查询的药品不在目录中
	ErrNotFound = errors.New("medicine not found")
	// ErrInvalidK k 必须为正整数
	ErrInvalidK = errors.New("k must be positive")
	// ErrDimensionMismatch 见 catalog.ErrDimensionMismatch
	ErrDimensionMismatch = catalog.ErrDimensionMismatch
)

// Recommender 基于预计算相似度矩阵的 Top-K 推荐器
// 构造后只读，可被多个 goroutine 并发调用
type Recommender struct {
	catalog *catalog.Catalog
	matrix  catalog.Matrix
}

// NewRecommender 创建推荐器，矩阵维度必须与目录长度一致
func NewRecommender(cat *catalog.Catalog, m catalog.Matrix) (*Recommender, error) {
	if err := m.Validate(cat.Len()); err != nil {
		return nil, err
	}
	return &Recommender{catalog: cat, matrix: m}, nil
}

// Names 按目录顺序返回全部药品名
func (r *Recommender) Names() []string {
	return r.catalog.Names()
}

// Size 返回目录长度
func (r *Recommender) Size() int {
	return r.catalog.Len()
}

type scored struct {
	index int
	score float64
}

// Recommend 返回与 name 最相似的 k 个药品 (不含自身及同名条目)
// 分数降序，分数相同时按目录下标升序
func (r *Recommender) Recommend(name string, k int) ([]model.Recommendation, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	idx, ok := r.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	row := r.matrix.Row(idx)
	pairs := make([]scored, 0, len(row))
	for i, s := range row {
		// 同名的重复条目也视为查询自身
		if i == idx || r.catalog.At(i).Name == name {
			continue
		}
		pairs = append(pairs, scored{index: i, score: s})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	if len(pairs) > k {
		pairs = pairs[:k]
	}

	result := make([]model.Recommendation, len(pairs))
	for i, p := range pairs {
		result[i] = model.Recommendation{
			Name:  r.catalog.At(p.index).Name,
			Score: p.score,
		}
	}
	return result, nil
}
