package catalog

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Load 加载目录和相似度矩阵，并校验二者维度一致
func Load(catalogPath, matrixPath string) (*Catalog, Matrix, error) {
	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, nil, err
	}
	m, err := LoadMatrix(matrixPath)
	if err != nil {
		return nil, nil, err
	}
	if err := m.Validate(cat.Len()); err != nil {
		return nil, nil, err
	}
	return cat, m, nil
}

// LoadCatalog 读取 JSON 格式的目录文件 (列名 -> 有序取值)
// 列取值可以是数组，也可以是 {"0": ..., "1": ...} 形式的下标映射
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog 解析目录 JSON
func ParseCatalog(data []byte) (*Catalog, error) {
	var columns map[string]json.RawMessage
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	raw, ok := columns[NameColumn]
	if !ok {
		return nil, fmt.Errorf("catalog missing column %q", NameColumn)
	}

	names, err := decodeColumn(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode column %q: %w", NameColumn, err)
	}
	if len(names) == 0 {
		return nil, ErrEmptyCatalog
	}
	return New(names), nil
}

func decodeColumn(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var byIndex map[string]string
	if err := json.Unmarshal(raw, &byIndex); err != nil {
		return nil, fmt.Errorf("column is neither a list nor an index map: %w", err)
	}

	type entry struct {
		idx  int
		name string
	}
	entries := make([]entry, 0, len(byIndex))
	for k, v := range byIndex {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q: %w", k, err)
		}
		entries = append(entries, entry{idx: idx, name: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	list = make([]string, len(entries))
	for i, e := range entries {
		list[i] = e.name
	}
	return list, nil
}

// LoadMatrix 读取相似度矩阵
// .bin 为小端 float32 行优先存储，其余按 JSON 二维数组解析
func LoadMatrix(path string) (Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read similarity file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".bin") {
		return DecodeBinaryMatrix(data)
	}

	var m Matrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse similarity matrix: %w", err)
	}
	return m, nil
}

// DecodeBinaryMatrix 将小端 float32 字节流还原为方阵
func DecodeBinaryMatrix(b []byte) (Matrix, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("similarity data length %d is not a multiple of 4", len(b))
	}
	count := len(b) / 4
	n := int(math.Sqrt(float64(count)))
	for n*n < count {
		n++
	}
	if n*n != count {
		return nil, fmt.Errorf("%w: %d values do not form a square matrix", ErrDimensionMismatch, count)
	}

	m := make(Matrix, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			off := (i*n + j) * 4
			row[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4])))
		}
		m[i] = row
	}
	return m, nil
}

// EncodeBinaryMatrix 将方阵编码为小端 float32 字节流
func EncodeBinaryMatrix(m Matrix) []byte {
	n := len(m)
	b := make([]byte, n*n*4)
	for i, row := range m {
		for j, v := range row {
			binary.LittleEndian.PutUint32(b[(i*n+j)*4:], math.Float32bits(float32(v)))
		}
	}
	return b
}
