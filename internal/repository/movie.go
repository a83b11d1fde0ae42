package repository

import (
	"errors"
	"time"

	"github.com/user/moviebot/internal/model"
	"github.com/user/moviebot/internal/utils"
	"gorm.io/gorm"
)

// movieCountCacheKey 目录总数的缓存键
const movieCountCacheKey = "movie_count"

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindByID 根据 ID 查找电影，不存在返回 nil
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// FindByTitle 片名精确匹配
// 片名不保证唯一，同名影片全部返回。
func (r *MovieRepository) FindByTitle(title string) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Where("title = ?", title).Order("id ASC").Find(&movies).Error
	return movies, err
}

// SearchByTitle 片名模糊匹配（包含子串）
func (r *MovieRepository) SearchByTitle(sub string, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Where("title LIKE ?", "%"+sub+"%").
		Order("id ASC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// Count 获取目录总数
// 目录只被离线导入进程写入，短缓存不会造成可见的偏差。
func (r *MovieRepository) Count() (int64, error) {
	if cached, found := utils.CacheGet(movieCountCacheKey); found {
		if count, ok := cached.(int64); ok {
			return count, nil
		}
	}

	var count int64
	if err := r.db.Model(&model.Movie{}).Count(&count).Error; err != nil {
		return 0, err
	}
	utils.CacheSet(movieCountCacheKey, count, 10*time.Minute)
	return count, nil
}

// Window 按 ID 稳定顺序读取一段目录
func (r *MovieRepository) Window(offset, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&movies).Error
	return movies, err
}

// Insert 写入一部影片
func (r *MovieRepository) Insert(movie *model.Movie) error {
	if err := r.db.Create(movie).Error; err != nil {
		return err
	}
	utils.CacheDelete(movieCountCacheKey)
	return nil
}

// ExistsByLink 检查链接是否已收录（目录按链接去重）
func (r *MovieRepository) ExistsByLink(link string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("link = ?", link).Count(&count).Error
	return count > 0, err
}
