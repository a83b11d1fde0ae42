package repository

import (
	"time"

	"github.com/user/moviebot/internal/model"
)

// Store 聚合各仓库，实现机器人与推荐引擎各自声明的数据访问接口。
// 进程启动时构造一次并显式注入，不通过包级全局状态访问。
type Store struct {
	repos *Repositories
}

// NewStore 创建数据访问门面
func NewStore(repos *Repositories) *Store {
	return &Store{repos: repos}
}

// RatingVector 用户评分向量
func (s *Store) RatingVector(userID int) (map[int]float64, error) {
	return s.repos.Like.VectorByUser(userID)
}

// OtherUserIDs 除指定用户外的全部用户 ID
func (s *Store) OtherUserIDs(excludeID int) ([]int, error) {
	return s.repos.User.ListOtherIDs(excludeID)
}

// MovieIDsRatedBy 用户评价过的影片 ID，稳定顺序
func (s *Store) MovieIDsRatedBy(userID int) ([]int, error) {
	return s.repos.Like.MovieIDsByUser(userID)
}

// GetMovie 按 ID 读取影片
func (s *Store) GetMovie(id int) (*model.Movie, error) {
	return s.repos.Movie.FindByID(id)
}

// CountMovies 目录总数
func (s *Store) CountMovies() (int64, error) {
	return s.repos.Movie.Count()
}

// MovieWindow 按稳定顺序读取一段目录
func (s *Store) MovieWindow(offset, limit int) ([]model.Movie, error) {
	return s.repos.Movie.Window(offset, limit)
}

// MoviesByExactTitle 片名精确匹配
func (s *Store) MoviesByExactTitle(title string) ([]model.Movie, error) {
	return s.repos.Movie.FindByTitle(title)
}

// MoviesByTitleContains 片名模糊匹配
func (s *Store) MoviesByTitleContains(sub string, limit int) ([]model.Movie, error) {
	return s.repos.Movie.SearchByTitle(sub, limit)
}

// HasLike 用户是否已评价过该影片
func (s *Store) HasLike(userID, movieID int) (bool, error) {
	return s.repos.Like.Exists(userID, movieID)
}

// UpsertLike 写入评分，后写覆盖先写
func (s *Store) UpsertLike(userID, movieID int, liking float64) error {
	return s.repos.Like.Upsert(userID, movieID, liking)
}

// RecordSeek 记录一次搜索命中
func (s *Store) RecordSeek(userID, movieID int, at time.Time) error {
	return s.repos.Seek.Record(userID, movieID, at)
}
