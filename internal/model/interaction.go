package model

import (
	"time"
)

// Like 用户对影片的评分
// (user_id, movie_id) 为复合主键，一个用户对一部影片只保留一条记录，
// 重复评价后写覆盖先写。Liking 允许为空，空值与"未评价"含义不同。
type Like struct {
	UserID    int       `json:"user_id" db:"user_id" gorm:"primaryKey"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"primaryKey"`
	Liking    *float64  `json:"liking" db:"liking"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName 指定表名
func (Like) TableName() string {
	return "like_movie"
}

// Seek 搜索命中记录（只写，供热搜统计）
type Seek struct {
	ID       int       `json:"id" db:"id"`
	UserID   int       `json:"user_id" db:"user_id" gorm:"index"`
	MovieID  int       `json:"movie_id" db:"movie_id"`
	SeekTime time.Time `json:"seek_time" db:"seek_time" gorm:"index"`
}

// TableName 指定表名
func (Seek) TableName() string {
	return "seek_movie"
}

// TrendingTitle 热搜影片聚合结果（查询产物，不落表）
type TrendingTitle struct {
	MovieID int    `json:"movie_id"`
	Title   string `json:"title"`
	Count   int    `json:"count"`
}
