package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/user/moviebot/internal/config"
	"github.com/user/moviebot/internal/repository"
	"github.com/user/moviebot/internal/service"
)

func main() {
	skipCrawl := flag.Bool("skip-crawl", false, "跳过抓取，只执行清洗导入")
	flag.Parse()

	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg := config.Load()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	repos := repository.NewRepositories(db)

	if !*skipCrawl {
		spider := service.NewSpider(repos.RawMovie)
		crawled, err := spider.CrawlTop250()
		if err != nil {
			// 已抓到的部分仍然可以导入
			log.Printf("[爬虫] 抓取中断: %v", err)
		}
		log.Printf("[爬虫] 抓取完成，共 %d 条", crawled)
	}

	importer := service.NewImporter(repos.RawMovie, repos.Movie)
	imported, err := importer.Run()
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}
	log.Printf("[导入] 入库完成，共 %d 条", imported)
}
