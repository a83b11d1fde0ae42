package recommender

import (
	"sort"
	"sync"
)

// candidate 单个候选用户的相似度计算结果
type candidate struct {
	userID        int
	dissimilarity float64
	recommendable int
}

// selectNeighbor 扫描其余所有用户，返回差异度最低的邻居用户 ID
//
// 失格条件：没有公共影片（NoOverlap），或没有可推荐影片（recommendable 为 0，
// 即使是最相似的候选也不会被选中）。相似度计算并发执行，但选择在全部结果
// 就绪后按用户 ID 升序进行，差异度相同时 ID 较小者胜出，结果与调度顺序无关。
// 没有可用邻居时返回 0。
func (e *Engine) selectNeighbor(mine map[int]float64, others []int) (int, error) {
	if len(others) == 0 {
		return 0, nil
	}

	sorted := make([]int, len(others))
	copy(sorted, others)
	sort.Ints(sorted)

	results := make([]candidate, len(sorted))
	errs := make([]error, len(sorted))

	var wg sync.WaitGroup
	for i, id := range sorted {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			other, err := e.store.RatingVector(id)
			if err != nil {
				errs[i] = err
				return
			}
			area, y := Compare(mine, other)
			results[i] = candidate{userID: id, dissimilarity: area, recommendable: y}
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}

	neighborID := 0
	best := 0.0
	for _, c := range results {
		if c.dissimilarity == NoOverlap || c.recommendable == 0 {
			continue
		}
		if neighborID == 0 || c.dissimilarity < best {
			neighborID = c.userID
			best = c.dissimilarity
		}
	}
	return neighborID, nil
}
