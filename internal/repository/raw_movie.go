package repository

import (
	"github.com/user/moviebot/internal/model"
	"gorm.io/gorm"
)

type RawMovieRepository struct {
	db *gorm.DB
}

func NewRawMovieRepository(db *gorm.DB) *RawMovieRepository {
	return &RawMovieRepository{db: db}
}

// Insert 写入一条原始抓取行
func (r *RawMovieRepository) Insert(raw *model.RawMovie) error {
	return r.db.Create(raw).Error
}

// List 按 ID 顺序分批读取原始行
func (r *RawMovieRepository) List(offset, limit int) ([]model.RawMovie, error) {
	var rows []model.RawMovie
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, err
}

// Count 获取原始行总数
func (r *RawMovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.RawMovie{}).Count(&count).Error
	return count, err
}
