package service

import (
	"log"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/user/moviebot/internal/model"
	"github.com/user/moviebot/internal/repository"
)

const importBatchSize = 200

// Importer 将备份表中的原始抓取数据清洗后导入电影目录
type Importer struct {
	rawRepo   *repository.RawMovieRepository
	movieRepo *repository.MovieRepository
}

// NewImporter 创建导入器
func NewImporter(rawRepo *repository.RawMovieRepository, movieRepo *repository.MovieRepository) *Importer {
	return &Importer{rawRepo: rawRepo, movieRepo: movieRepo}
}

// Run 清洗并导入全部原始数据，按链接去重，返回导入条数
func (im *Importer) Run() (int, error) {
	seen := make(map[string]bool)
	imported := 0

	for offset := 0; ; offset += importBatchSize {
		rows, err := im.rawRepo.List(offset, importBatchSize)
		if err != nil {
			return imported, err
		}
		if len(rows) == 0 {
			break
		}

		for i := range rows {
			row := &rows[i]
			link := strings.TrimSpace(row.Link)
			if link == "" || seen[link] {
				continue
			}
			seen[link] = true

			movie := parseScrapedRow(row)
			if exists, err := im.movieRepo.ExistsByLink(link); err != nil {
				log.Printf("[导入] 查重失败 %s: %v", link, err)
				continue
			} else if exists {
				continue
			}

			if err := im.movieRepo.Insert(movie); err != nil {
				log.Printf("[导入] 插入失败 %s: %v", movie.Title, err)
				continue
			}
			imported++

			if imported%100 == 0 {
				log.Printf("[导入] 已处理 %d 条记录", imported)
			}
		}
	}

	log.Printf("[导入] 数据导入完成，共处理 %d 条记录", imported)
	return imported, nil
}

// parseScrapedRow 把原始抓取行清洗为目录记录
func parseScrapedRow(row *model.RawMovie) *model.Movie {
	movie := &model.Movie{
		Title: strings.TrimSpace(row.Title),
		Link:  strings.TrimSpace(row.Link),
	}

	// 评分：非数字视为未知
	scoreText := strings.TrimSpace(row.Score)
	if hasNum(scoreText) {
		if v, err := strconv.ParseFloat(scoreText, 64); err == nil {
			movie.Score = &v
		}
	}

	// 评分人数：只保留数字；人数缺失时评分同样视为未知
	numText := strings.TrimSpace(row.Num)
	if numText == "" {
		movie.Score = nil
	} else if digits := keepDigits(numText); digits != "" {
		if v, err := strconv.Atoi(digits); err == nil {
			movie.Num = &v
		}
	}

	// 上映信息：含数字则拆出日期和地区，否则按地区或别名归类
	movie.ReleaseDate, movie.Address, movie.OtherRelease = splitRelease(strings.TrimSpace(row.Time))

	// 演员：带数字的条目是混进来的上映信息，挪到 other_release
	actors, extra := cleanActors(row.Actors)
	movie.Actors = actors
	for _, e := range extra {
		if movie.OtherRelease != "" {
			movie.OtherRelease += ";" + e
		} else {
			movie.OtherRelease = e
		}
	}

	return movie
}

// splitRelease 拆分原始上映字段
// "1994-09-10(加拿大)" → 日期 "1994-09-10"、地区 "加拿大"；
// 无数字但带 "()" 的视为纯地区，其余整体当作别名。
func splitRelease(s string) (date, address, other string) {
	if s == "" {
		return "", "", ""
	}

	if hasNum(s) {
		var dateB, addrB strings.Builder
		for _, c := range s {
			switch {
			case c >= '0' && c <= '9' || c == '-':
				dateB.WriteRune(c)
			case c == '(' || c == ')':
				// 括号只是分隔符
			default:
				addrB.WriteRune(c)
			}
		}
		return dateB.String(), addrB.String(), ""
	}

	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		var addrB strings.Builder
		for _, c := range s {
			if c != '(' && c != ')' {
				addrB.WriteRune(c)
			}
		}
		return "", addrB.String(), ""
	}

	return "", "", s
}

// cleanActors 清洗演员字段，返回演员列表和混入的上映信息
func cleanActors(s string) (pq.StringArray, []string) {
	replacer := strings.NewReplacer("[", "", "]", "", "'", "")
	s = replacer.Replace(s)
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var actors pq.StringArray
	var extra []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if hasNum(part) {
			extra = append(extra, part)
			continue
		}
		actors = append(actors, part)
	}
	return actors, extra
}

// hasNum 字符串是否含有数字
func hasNum(s string) bool {
	for _, c := range s {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}

// keepDigits 只保留数字字符
func keepDigits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
