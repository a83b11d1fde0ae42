package repository

import (
	"time"

	"github.com/user/moviebot/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Upsert 写入评分，已存在则覆盖（后写胜出）
func (r *LikeRepository) Upsert(userID, movieID int, liking float64) error {
	like := &model.Like{
		UserID:    userID,
		MovieID:   movieID,
		Liking:    &liking,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"liking", "updated_at"}),
	}).Create(like).Error
}

// Exists 检查用户是否已评价过该影片
func (r *LikeRepository) Exists(userID, movieID int) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	return count > 0, err
}

// VectorByUser 构建用户的评分向量
// 未评价的影片不出现在映射中；评分为空的记录以 -1 哨兵值参与计算，
// 它是有效记录，与"未评价"含义不同。
func (r *LikeRepository) VectorByUser(userID int) (map[int]float64, error) {
	var likes []model.Like
	if err := r.db.Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		return nil, err
	}

	vector := make(map[int]float64, len(likes))
	for _, like := range likes {
		if like.Liking != nil {
			vector[like.MovieID] = *like.Liking
		} else {
			vector[like.MovieID] = -1
		}
	}
	return vector, nil
}

// MovieIDsByUser 用户评价过的影片 ID 列表，按影片 ID 稳定排序
func (r *LikeRepository) MovieIDsByUser(userID int) ([]int, error) {
	var ids []int
	err := r.db.Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("movie_id ASC").
		Pluck("movie_id", &ids).Error
	return ids, err
}

// Count 获取评分总数
func (r *LikeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Count(&count).Error
	return count, err
}
