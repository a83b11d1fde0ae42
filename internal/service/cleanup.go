package service

import (
	"log"
	"time"

	"github.com/user/moviebot/internal/repository"
)

// CleanupService 清理服务
type CleanupService struct {
	repos *repository.Repositories

	// 求片记录保留天数
	seekRetentionDays int
}

// NewCleanupService 创建清理服务
func NewCleanupService(repos *repository.Repositories) *CleanupService {
	return &CleanupService{
		repos:             repos,
		seekRetentionDays: 90,
	}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	ticker := time.NewTicker(24 * time.Hour)

	// 启动时先运行一次
	go s.runCleanup()

	go func() {
		for range ticker.C {
			s.runCleanup()
		}
	}()
}

func (s *CleanupService) runCleanup() {
	log.Println("[CleanupService] 开始清理过期数据...")

	// 求片记录只用于热搜统计，超过保留期后删除
	affected, err := s.repos.Seek.DeleteOld(s.seekRetentionDays)
	if err != nil {
		log.Printf("[CleanupService] 清理求片记录失败: %v", err)
	} else if affected > 0 {
		log.Printf("[CleanupService] 已清理 %d 条超过 %d 天的求片记录", affected, s.seekRetentionDays)
	}
}
