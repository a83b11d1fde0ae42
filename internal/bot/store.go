package bot

import (
	"time"

	"github.com/user/moviebot/internal/model"
	"github.com/user/moviebot/internal/recommender"
)

// Store 指令处理所需的数据访问能力，由调用方注入
type Store interface {
	// MoviesByExactTitle 片名精确匹配，同名影片全部返回
	MoviesByExactTitle(title string) ([]model.Movie, error)
	// MoviesByTitleContains 片名模糊匹配
	MoviesByTitleContains(sub string, limit int) ([]model.Movie, error)
	// HasLike 用户是否已评价过该影片
	HasLike(userID, movieID int) (bool, error)
	// UpsertLike 写入评分，后写覆盖先写
	UpsertLike(userID, movieID int, liking float64) error
	// RecordSeek 记录一次搜索命中（只写，失败不影响回复）
	RecordSeek(userID, movieID int, at time.Time) error
}

// Recommender 推荐能力
type Recommender interface {
	Recommend(userID int) (*recommender.Result, error)
}
