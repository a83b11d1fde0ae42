package model

import (
	"time"
)

// User 用户模型（公众号粉丝）
// 首次发消息或关注事件时建档，本系统不删除用户。
type User struct {
	ID        int       `json:"id" db:"id"`
	WxID      string    `json:"wx_id" db:"wx_id" gorm:"column:wx_id;unique"`
	StartTime time.Time `json:"start_time" db:"start_time"`
}

// TableName 指定表名
func (User) TableName() string {
	return "user_info"
}
