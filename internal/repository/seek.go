package repository

import (
	"fmt"
	"time"

	"github.com/user/moviebot/internal/model"
	"github.com/user/moviebot/internal/utils"
	"gorm.io/gorm"
)

type SeekRepository struct {
	db *gorm.DB
}

func NewSeekRepository(db *gorm.DB) *SeekRepository {
	return &SeekRepository{db: db}
}

// Record 记录一次搜索命中（只写，机器人不读取）
func (r *SeekRepository) Record(userID, movieID int, at time.Time) error {
	seek := &model.Seek{
		UserID:   userID,
		MovieID:  movieID,
		SeekTime: at,
	}
	return r.db.Create(seek).Error
}

// Trending 统计时间窗口内被搜索最多的影片
func (r *SeekRepository) Trending(hours, limit int) ([]model.TrendingTitle, error) {
	// 1. 检查缓存
	cacheKey := fmt.Sprintf("seek_trending:%d:%d", hours, limit)
	if cached, found := utils.CacheGet(cacheKey); found {
		if titles, ok := cached.([]model.TrendingTitle); ok {
			return titles, nil
		}
	}

	// 2. 从数据库实时聚合
	var titles []model.TrendingTitle
	err := r.db.Raw(`
		SELECT m.id AS movie_id, m.title AS title, COUNT(*) AS count
		FROM seek_movie s
		JOIN douban_movie m ON m.id = s.movie_id
		WHERE s.seek_time > NOW() - INTERVAL '1 hour' * ?
		GROUP BY m.id, m.title
		ORDER BY count DESC, m.id ASC
		LIMIT ?
	`, hours, limit).Scan(&titles).Error
	if err != nil {
		return nil, err
	}

	// 3. 设置缓存
	utils.CacheSet(cacheKey, titles, 30*time.Minute)

	return titles, nil
}

// DeleteOld 清理超过指定天数的搜索记录
func (r *SeekRepository) DeleteOld(days int) (int64, error) {
	result := r.db.Exec(`
		DELETE FROM seek_movie
		WHERE seek_time < NOW() - INTERVAL '1 day' * ?
	`, days)
	return result.RowsAffected, result.Error
}

// Count 获取搜索记录总数
func (r *SeekRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Seek{}).Count(&count).Error
	return count, err
}
