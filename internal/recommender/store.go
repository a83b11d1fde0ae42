package recommender

import (
	"github.com/user/moviebot/internal/model"
)

// Store 推荐引擎所需的数据访问能力，由调用方注入。
// 存储层的一致性由后端数据库保证，引擎自身不加锁、不重试。
type Store interface {
	// RatingVector 用户评分向量：movie_id → 评分，未评价的影片不出现
	RatingVector(userID int) (map[int]float64, error)
	// OtherUserIDs 除指定用户外的全部用户 ID
	OtherUserIDs(excludeID int) ([]int, error)
	// MovieIDsRatedBy 用户评价过的影片 ID，稳定顺序
	MovieIDsRatedBy(userID int) ([]int, error)
	// GetMovie 按 ID 读取影片，不存在返回 nil
	GetMovie(id int) (*model.Movie, error)
	// CountMovies 目录总数
	CountMovies() (int64, error)
	// MovieWindow 按稳定顺序读取一段目录
	MovieWindow(offset, limit int) ([]model.Movie, error)
}
