package recommender

// NoOverlap 差异度哨兵值：两个评分向量没有公共影片，不可比较。
// 邻居筛选必须把它当作失格处理，绝不能当作"最相似"。
const NoOverlap = -1

// Compare 计算两个评分向量的差异度与可推荐数量
//
// common 为双方都评价过的影片数，x 为本人独有、y 为对方独有的影片数。
// 没有公共影片时返回 NoOverlap；否则返回 Σ(差值²)·x/common²。
// 这不是归一化指标：公共影片越多、本人独有影片越少的候选人越占优，
// 差异度越小越相近。y 即对方可以推荐给本人的影片数量。
func Compare(mine, other map[int]float64) (float64, int) {
	common := 0
	var area float64
	for id, v := range mine {
		if ov, ok := other[id]; ok {
			common++
			d := v - ov
			area += d * d
		}
	}

	y := len(other) - common
	if common == 0 {
		return NoOverlap, y
	}

	x := len(mine) - common
	return area * float64(x) / float64(common*common), y
}
