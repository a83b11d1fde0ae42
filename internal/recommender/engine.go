package recommender

import (
	"strconv"

	"github.com/user/moviebot/internal/model"
	"golang.org/x/sync/singleflight"
)

// Result 一次推荐的产出
type Result struct {
	NeighborID int           // 命中的邻居用户 ID，走兜底时为 0
	Movies     []model.Movie // 推荐影片，为空表示无可推荐
	Fallback   bool          // 是否来自热度兜底
}

// Engine 推荐引擎：邻居筛选 + 热度兜底
//
// 每次请求都基于当前评分数据全量重算，不持久化相似度结果。
type Engine struct {
	store Store
	sf    singleflight.Group // 合并同一用户的并发推荐计算
}

// NewEngine 创建推荐引擎
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Recommend 为用户计算一次推荐
//
// 全量扫描是 O(用户数×评分数) 的同步计算，同一用户的并发请求
// 通过 singleflight 共享一次结果。
func (e *Engine) Recommend(userID int) (*Result, error) {
	v, err, _ := e.sf.Do(strconv.Itoa(userID), func() (interface{}, error) {
		return e.recommend(userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (e *Engine) recommend(userID int) (*Result, error) {
	mine, err := e.store.RatingVector(userID)
	if err != nil {
		return nil, err
	}

	others, err := e.store.OtherUserIDs(userID)
	if err != nil {
		return nil, err
	}

	neighborID, err := e.selectNeighbor(mine, others)
	if err != nil {
		return nil, err
	}

	if neighborID != 0 {
		movies, err := e.moviesFromNeighbor(mine, neighborID)
		if err != nil {
			return nil, err
		}
		if len(movies) > 0 {
			return &Result{NeighborID: neighborID, Movies: movies}, nil
		}
		// 邻居没有可推荐的新影片，降级到兜底
	}

	m, err := e.fallback(mine)
	if err != nil {
		return nil, err
	}
	result := &Result{Fallback: true}
	if m != nil {
		result.Movies = []model.Movie{*m}
	}
	return result, nil
}

// moviesFromNeighbor 取邻居评价过而本人未评价的影片，保持存储返回顺序
func (e *Engine) moviesFromNeighbor(mine map[int]float64, neighborID int) ([]model.Movie, error) {
	ids, err := e.store.MovieIDsRatedBy(neighborID)
	if err != nil {
		return nil, err
	}

	var movies []model.Movie
	for _, id := range ids {
		if _, rated := mine[id]; rated {
			continue
		}
		m, err := e.store.GetMovie(id)
		if err != nil {
			return nil, err
		}
		if m != nil {
			movies = append(movies, *m)
		}
	}
	return movies, nil
}
