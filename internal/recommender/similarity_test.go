package recommender

import (
	"math"
	"testing"
)

func TestCompareNoOverlap(t *testing.T) {
	mine := map[int]float64{1: 8, 2: 6}
	other := map[int]float64{3: 9, 4: 7}

	area, y := Compare(mine, other)
	if area != NoOverlap {
		t.Fatalf("无公共影片应返回哨兵值，got %v", area)
	}
	if y != 2 {
		t.Fatalf("对方独有影片数应为 2，got %d", y)
	}
}

func TestCompareIdenticalVectors(t *testing.T) {
	mine := map[int]float64{1: 8, 2: 6, 3: 10}
	other := map[int]float64{1: 8, 2: 6, 3: 10}

	area, y := Compare(mine, other)
	if area != 0 {
		t.Fatalf("完全一致的向量差异度应为 0，got %v", area)
	}
	if y != 0 {
		t.Fatalf("对方没有独有影片，got %d", y)
	}
}

func TestCompareFormula(t *testing.T) {
	// 公共影片 1、2：差值平方和 = (10-8)² + (0-2)² = 8
	// 本人独有 x = 1（影片 3），公共数 common = 2
	// 差异度 = 8 * 1 / 4 = 2；对方独有 y = 2（影片 4、5）
	mine := map[int]float64{1: 10, 2: 0, 3: 5}
	other := map[int]float64{1: 8, 2: 2, 4: 1, 5: 3}

	area, y := Compare(mine, other)
	if math.Abs(area-2.0) > 1e-9 {
		t.Fatalf("差异度期望 2.0，got %v", area)
	}
	if y != 2 {
		t.Fatalf("可推荐数期望 2，got %d", y)
	}
}

func TestCompareEmptyMine(t *testing.T) {
	other := map[int]float64{1: 8, 2: 6}

	area, y := Compare(map[int]float64{}, other)
	if area != NoOverlap {
		t.Fatalf("本人无评分时不可比较，got %v", area)
	}
	if y != 2 {
		t.Fatalf("对方全部影片都可推荐，got %d", y)
	}
}

func TestCompareZeroAreaWithOwnExclusive(t *testing.T) {
	// 公共影片完全一致但本人有独有影片，差异度仍为 0
	mine := map[int]float64{1: 7, 2: 7}
	other := map[int]float64{1: 7}

	area, y := Compare(mine, other)
	if area != 0 {
		t.Fatalf("差值平方和为 0 时差异度应为 0，got %v", area)
	}
	if y != 0 {
		t.Fatalf("对方无独有影片，got %d", y)
	}
}
