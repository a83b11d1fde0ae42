package recommender

import (
	"math/rand"

	"github.com/user/moviebot/internal/model"
)

// fallbackWindow 兜底推荐一次扫描的目录行数
const fallbackWindow = 100

// fallback 从目录的随机窗口里挑未评价过的最高分影片
//
// 随机起点取 [0, max(N-100, 0)]，窗口按稳定顺序读取。评分为空的行
// 不参与最优选择；窗口内没有合格行时返回 nil，调用方给出"无推荐"
// 文案而不是硬凑一部影片。
func (e *Engine) fallback(mine map[int]float64) (*model.Movie, error) {
	total, err := e.store.CountMovies()
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	maxOffset := int(total) - fallbackWindow
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := rand.Intn(maxOffset + 1)

	window, err := e.store.MovieWindow(offset, fallbackWindow)
	if err != nil {
		return nil, err
	}

	var best *model.Movie
	bestScore := 0.0
	for i := range window {
		m := &window[i]
		if _, rated := mine[m.ID]; rated {
			continue
		}
		if m.Score != nil && *m.Score > bestScore {
			best = m
			bestScore = *m.Score
		}
	}
	return best, nil
}
