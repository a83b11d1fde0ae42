package model

import (
	"github.com/lib/pq"
)

// Movie 电影模型（豆瓣目录）
// 由离线导入管道写入，机器人侧只读。Score 和 Num 允许为空：
// 评分人数未知时评分也视为未知。
type Movie struct {
	ID           int            `json:"id" db:"id"`
	Title        string         `json:"title" db:"title" gorm:"index"`
	Score        *float64       `json:"score" db:"score"`
	Num          *int           `json:"num" db:"num"`
	Link         string         `json:"link" db:"link" gorm:"unique"`
	ReleaseDate  string         `json:"release_date" db:"release_date" gorm:"column:release_date"`
	Address      string         `json:"address" db:"address"`
	OtherRelease string         `json:"other_release" db:"other_release"`
	Actors       pq.StringArray `json:"actors" db:"actors" gorm:"type:text[]"`
	Director     string         `json:"director" db:"director"`
	Category     string         `json:"category" db:"category"`
}

// TableName 指定表名
func (Movie) TableName() string {
	return "douban_movie"
}

// RawMovie 爬虫抓取的原始行，导入目录前未经清洗
type RawMovie struct {
	ID     int    `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Score  string `json:"score" db:"score"`
	Num    string `json:"num" db:"num"`
	Link   string `json:"link" db:"link"`
	Time   string `json:"time" db:"time"`
	Actors string `json:"actors" db:"actors"`
}

// TableName 指定表名
func (RawMovie) TableName() string {
	return "douban_mov_bak"
}
