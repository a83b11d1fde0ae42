package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/moviebot/internal/model"
)

// FormatScore 评分的展示格式，去掉无意义的小数尾巴（10 而不是 10.0）
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMovie 影片详情文本
//
// 字段顺序固定：片名、上映日期、地区、备注、演员、评价人数、评分（可选）、
// 链接，各占一行，块尾空一行。forceScore 为真时评分行总是输出，缺失按 0
// 处理（模糊搜索与兜底推荐的历史格式）；否则评分缺失或为 0 时整行省略。
func FormatMovie(m *model.Movie, forceScore bool) string {
	var b strings.Builder

	num := 0
	if m.Num != nil {
		num = *m.Num
	}

	b.WriteString(m.Title)
	b.WriteByte('\n')
	b.WriteString(m.ReleaseDate)
	b.WriteByte('\n')
	b.WriteString(m.Address)
	b.WriteByte('\n')
	b.WriteString(m.OtherRelease)
	b.WriteByte('\n')
	b.WriteString(strings.Join(m.Actors, ","))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "评价人数:%d\n", num)

	if forceScore {
		score := 0.0
		if m.Score != nil {
			score = *m.Score
		}
		fmt.Fprintf(&b, "评分:%s\n", FormatScore(score))
	} else if m.Score != nil && *m.Score != 0 {
		fmt.Fprintf(&b, "评分:%s\n", FormatScore(*m.Score))
	}

	b.WriteString(m.Link)
	b.WriteString("\n\n")
	return b.String()
}

// FormatFallback 兜底推荐的影片文本
//
// 与 FormatMovie 的强制评分格式一致，但链接后直接跟提示文案：
// 已评价过的影片永远不会再被兜底推荐（排除集是完整评分向量）。
func FormatFallback(m *model.Movie) string {
	block := FormatMovie(m, true)
	return strings.TrimSuffix(block, "\n") + fallbackNote
}
