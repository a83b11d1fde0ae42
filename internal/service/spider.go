package service

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/moviebot/internal/model"
	"github.com/user/moviebot/internal/repository"
	"github.com/user/moviebot/internal/utils"
)

// Spider 豆瓣 Top250 列表页爬虫
// 抓取结果原样写入备份表，清洗由 Importer 负责。
type Spider struct {
	rawRepo *repository.RawMovieRepository
	client  *utils.HTTPClient
}

// NewSpider 创建爬虫
func NewSpider(rawRepo *repository.RawMovieRepository) *Spider {
	return &Spider{
		rawRepo: rawRepo,
		client:  utils.NewHTTPClient(),
	}
}

// CrawlTop250 逐页抓取 Top250 榜单
func (s *Spider) CrawlTop250() (int, error) {
	total := 0
	for start := 0; start < 250; start += 25 {
		url := fmt.Sprintf("https://movie.douban.com/top250?start=%d", start)
		n, err := s.crawlPage(url)
		if err != nil {
			return total, fmt.Errorf("抓取列表页失败 start=%d: %w", start, err)
		}
		total += n
		log.Printf("[爬虫] 已抓取 %s，本页 %d 条", url, n)

		// 随机间隔，降低触发反爬的概率
		time.Sleep(time.Duration(2+rand.Intn(3)) * time.Second)
	}
	return total, nil
}

// crawlPage 抓取单个列表页并入库
func (s *Spider) crawlPage(url string) (int, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("请求返回状态码: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("解析 HTML 失败: %w", err)
	}

	// 检测是否被重定向到验证页面
	pageTitle := doc.Find("title").Text()
	if strings.Contains(pageTitle, "验证") {
		return 0, fmt.Errorf("触发豆瓣反爬验证: %s", url)
	}

	count := 0
	doc.Find("ol.grid_view li .item").Each(func(i int, sel *goquery.Selection) {
		raw := s.parseItem(sel)
		if raw.Title == "" || raw.Link == "" {
			return
		}
		if err := s.rawRepo.Insert(raw); err != nil {
			log.Printf("[爬虫] 保存失败 %s: %v", raw.Title, err)
			return
		}
		count++
	})

	return count, nil
}

// parseItem 解析榜单条目，字段不做清洗
func (s *Spider) parseItem(sel *goquery.Selection) *model.RawMovie {
	raw := &model.RawMovie{}

	raw.Title = strings.TrimSpace(sel.Find(".hd .title").First().Text())
	raw.Link, _ = sel.Find(".hd a").First().Attr("href")
	raw.Score = strings.TrimSpace(sel.Find(".star .rating_num").Text())
	raw.Num = strings.TrimSpace(sel.Find(".star span").Last().Text())

	// 信息区第一行是导演/主演，第二行是 年份 / 地区 / 类型
	info := strings.Split(sel.Find(".bd p").First().Text(), "\n")
	var lines []string
	for _, line := range info {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) > 0 {
		raw.Actors = lines[0]
	}
	if len(lines) > 1 {
		raw.Time = lines[1]
	}

	return raw
}
