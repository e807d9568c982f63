package catalog

import (
	"errors"
	"fmt"

	"medicine_recommender/internal/model"
)

// NameColumn 目录文件中药品名所在的列
const NameColumn = "Drug_Name"

var (
	// ErrDimensionMismatch 相似度矩阵维度与目录长度不一致
	ErrDimensionMismatch = errors.New("similarity matrix dimension mismatch")
	// ErrEmptyCatalog 目录为空
	ErrEmptyCatalog = errors.New("catalog is empty")
)

// Catalog 有序的药品目录，加载后只读
type Catalog struct {
	items []model.Medicine
	index map[string]int // name -> 第一次出现的位置
}

// New 根据有序药品名构建目录
// 名称重复时，以第一次出现的位置为准
func New(names []string) *Catalog {
	c := &Catalog{
		items: make([]model.Medicine, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		c.items[i] = model.Medicine{Index: i, Name: name}
		if _, exists := c.index[name]; !exists {
			c.index[name] = i
		}
	}
	return c
}

// Len 返回目录长度
func (c *Catalog) Len() int { return len(c.items) }

// Lookup 精确匹配 (区分大小写) 药品名，返回其下标
func (c *Catalog) Lookup(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// At 返回指定下标的药品
func (c *Catalog) At(i int) model.Medicine { return c.items[i] }

// Names 按目录顺序返回所有药品名 (副本)
func (c *Catalog) Names() []string {
	names := make([]string, len(c.items))
	for i, m := range c.items {
		names[i] = m.Name
	}
	return names
}

// Matrix 稠密的方阵，(i, j) 为药品 i 对药品 j 的相似度
// 不校验对称性和取值范围
type Matrix [][]float64

// Row 返回第 i 行
func (m Matrix) Row(i int) []float64 { return m[i] }

// Validate 检查矩阵是否为 n x n
func (m Matrix) Validate(n int) error {
	if len(m) != n {
		return fmt.Errorf("%w: %d rows for %d catalog entries", ErrDimensionMismatch, len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
	}
	return nil
}
