package recommend

import (
	"errors"
	"reflect"
	"testing"

	"medicine_recommender/internal/catalog"
	"medicine_recommender/internal/model"
)

func newTestRecommender(t *testing.T) *Recommender {
	t.Helper()
	cat := catalog.New([]string{"A", "B", "C", "D", "E", "F"})
	m := catalog.Matrix{
		{1.0, 0.9, 0.9, 0.5, 0.3, 0.1},
		{0.9, 1.0, 0.2, 0.4, 0.6, 0.8},
		{0.9, 0.2, 1.0, 0.7, 0.7, 0.7},
		{0.5, 0.4, 0.7, 1.0, 0.1, 0.0},
		{0.3, 0.6, 0.7, 0.1, 1.0, 0.2},
		{0.1, 0.8, 0.7, 0.0, 0.2, 1.0},
	}
	r, err := NewRecommender(cat, m)
	if err != nil {
		t.Fatalf("NewRecommender failed: %v", err)
	}
	return r
}

func TestRecommendTieBreak(t *testing.T) {
	r := newTestRecommender(t)

	got, err := r.Recommend("A", DefaultK)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	want := []model.Recommendation{
		{Name: "B", Score: 0.9},
		{Name: "C", Score: 0.9},
		{Name: "D", Score: 0.5},
		{Name: "E", Score: 0.3},
		{Name: "F", Score: 0.1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend(A) = %v, want %v", got, want)
	}
}

func TestRecommendProperties(t *testing.T) {
	r := newTestRecommender(t)

	for _, name := range r.Names() {
		for k := 1; k <= 7; k++ {
			got, err := r.Recommend(name, k)
			if err != nil {
				t.Fatalf("Recommend(%s, %d) failed: %v", name, k, err)
			}

			wantLen := k
			if wantLen > r.Size()-1 {
				wantLen = r.Size() - 1
			}
			if len(got) != wantLen {
				t.Errorf("Recommend(%s, %d) returned %d items, want %d", name, k, len(got), wantLen)
			}

			for i, rec := range got {
				if rec.Name == name {
					t.Errorf("Recommend(%s, %d) contains the query itself", name, k)
				}
				if i > 0 && rec.Score > got[i-1].Score {
					t.Errorf("Recommend(%s, %d) scores not non-increasing at %d: %v", name, k, i, got)
				}
			}

			again, _ := r.Recommend(name, k)
			if !reflect.DeepEqual(got, again) {
				t.Errorf("Recommend(%s, %d) not deterministic: %v vs %v", name, k, got, again)
			}
		}
	}
}

func TestRecommendEqualScoresKeepCatalogOrder(t *testing.T) {
	r := newTestRecommender(t)

	got, err := r.Recommend("C", 3)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	// A=0.9，然后 D/E/F 同为 0.7，保留 D、E
	want := []string{"A", "D", "E"}
	for i, rec := range got {
		if rec.Name != want[i] {
			t.Errorf("position %d: got %s, want %s", i, rec.Name, want[i])
		}
	}
}

func TestRecommendSmallCatalog(t *testing.T) {
	cat := catalog.New([]string{"X", "Y", "Z"})
	r, err := NewRecommender(cat, catalog.Matrix{{1, 0.1, 0.2}, {0.1, 1, 0.3}, {0.2, 0.3, 1}})
	if err != nil {
		t.Fatalf("NewRecommender failed: %v", err)
	}

	got, err := r.Recommend("X", 5)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Name != "Z" || got[1].Name != "Y" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestRecommendSelfNotMaximum(t *testing.T) {
	// 自身相似度不是最大值时也必须被排除
	cat := catalog.New([]string{"X", "Y", "Z"})
	r, err := NewRecommender(cat, catalog.Matrix{{0, 0.1, 0.2}, {0.1, 1, 0.3}, {0.2, 0.3, 1}})
	if err != nil {
		t.Fatalf("NewRecommender failed: %v", err)
	}
	got, _ := r.Recommend("X", 1)
	if len(got) != 1 || got[0].Name != "Z" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestRecommendNotFound(t *testing.T) {
	r := newTestRecommender(t)

	got, err := r.Recommend("a", DefaultK)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no result, got %v", got)
	}
}

func TestRecommendInvalidK(t *testing.T) {
	r := newTestRecommender(t)
	if _, err := r.Recommend("A", 0); !errors.Is(err, ErrInvalidK) {
		t.Errorf("expected ErrInvalidK, got %v", err)
	}
}

func TestNewRecommenderDimensionMismatch(t *testing.T) {
	cat := catalog.New([]string{"A", "B", "C"})
	_, err := NewRecommender(cat, catalog.Matrix{{1, 0}, {0, 1}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRecommendDuplicateNames(t *testing.T) {
	cat := catalog.New([]string{"A", "B", "A", "C"})
	r, err := NewRecommender(cat, catalog.Matrix{
		{1.0, 0.2, 0.9, 0.5},
		{0.2, 1.0, 0.3, 0.4},
		{0.9, 0.3, 1.0, 0.6},
		{0.5, 0.4, 0.6, 1.0},
	})
	if err != nil {
		t.Fatalf("NewRecommender failed: %v", err)
	}

	got, err := r.Recommend("A", DefaultK)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	want := []model.Recommendation{{Name: "C", Score: 0.5}, {Name: "B", Score: 0.2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend(A) = %v, want %v", got, want)
	}

	// 查询其他药品时，重复条目照常参与排序
	got, _ = r.Recommend("C", 2)
	if len(got) != 2 || got[0].Name != "A" || got[0].Score != 0.6 || got[1].Name != "A" {
		t.Errorf("Recommend(C) = %v", got)
	}
}
