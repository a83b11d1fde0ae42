package repository

import (
	"errors"
	"time"

	"github.com/user/moviebot/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByWxID 根据微信外部标识查找用户
func (r *UserRepository) FindByWxID(wxID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("wx_id = ?", wxID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Ensure 返回用户，不存在则以当前时间建档
func (r *UserRepository) Ensure(wxID string, now time.Time) (*model.User, error) {
	user, err := r.FindByWxID(wxID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &model.User{
		WxID:      wxID,
		StartTime: now,
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// ListOtherIDs 获取除指定用户外所有用户的内部 ID，按 ID 升序
func (r *UserRepository) ListOtherIDs(excludeID int) ([]int, error) {
	var ids []int
	err := r.db.Model(&model.User{}).
		Where("id <> ?", excludeID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// Count 获取用户总数
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}
