package bot

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/user/moviebot/internal/utils"
)

// 用户可见的固定文案
const (
	// HelpText 使用说明，列出全部指令
	HelpText = "您可以发送以下内容给我：\n搜索 无问西东\n评价 秦时明月 8.9\n推荐\n怎么用"
	// WelcomeText 关注事件的欢迎语
	WelcomeText = "感谢您的关注与支持，评价电影超过一定次数后，本平台将为您提供个性化推荐服务。您可以发送以下内容给我：\n搜索 无问西东\n评价 秦时明月 8.9\n推荐\n怎么用"
	// ImageReplyText 图片消息的固定回复
	ImageReplyText = "感谢您的图片，但是我暂时不能识别图片。。。"

	emptyCmdText    = "请输入指令，发送\"怎么用\"查看使用说明。"
	rateUsageText   = "抱歉，评价指令格式为：评价 影片名 分数。"
	badScoreText    = "抱歉，评分必须是数字，请重新输入。"
	badTitleText    = "抱歉，电影名输入有误，请重新输入。"
	notFoundText    = "抱歉，暂时没有收录该影片。"
	fuzzyHintText   = "您在找的可能是：\n"
	noRecommendText = "抱歉，由于您的评价次数过少，系统暂时推算不出您的兴趣爱好。\n请多多评价，过段时间再试。"
	fallbackNote    = "为提高您的推荐质量，请您多使用评价功能。另外，您评价过的电影不会再次推荐给您。\n"
	storeBusyText   = "抱歉，系统开小差了，请稍后再试。"
)

// Dispatcher 把一条文本指令路由到评分、推荐或检索逻辑
//
// 每条指令都是独立的无状态处理单元，跨请求只依赖存储层。
type Dispatcher struct {
	store      Store
	rec        Recommender
	fuzzyCache *utils.SearchCache[string] // 模糊检索结果短期有效，按关键词缓存回复
	now        func() time.Time
}

// NewDispatcher 创建指令分发器
func NewDispatcher(store Store, rec Recommender) *Dispatcher {
	return &Dispatcher{
		store:      store,
		rec:        rec,
		fuzzyCache: utils.NewSearchCache[string](1024, 10*time.Minute),
		now:        time.Now,
	}
}

// Handle 处理一条用户指令，返回回复文本
//
// 按第一个空白分隔的词分类：评价 / 推荐 / 搜索 / 怎么用，
// 未识别的内容整体作为片名检索（默认落入浏览而不是报错）。
// 所有失败路径都返回文案，绝不向上抛出。
func (d *Dispatcher) Handle(userID int, content string) string {
	tokens := strings.Fields(content)
	if len(tokens) == 0 {
		return emptyCmdText
	}

	switch tokens[0] {
	case "评价":
		return d.rate(userID, tokens)
	case "推荐":
		return d.recommend(userID)
	case "搜索":
		if len(tokens) < 2 {
			return badTitleText
		}
		return d.browse(userID, strings.Join(tokens[1:], " "))
	case "怎么用":
		return HelpText
	default:
		return d.browse(userID, strings.TrimSpace(content))
	}
}

// rate 评价指令：评价 <影片名> <分数>
//
// 分数截断到 [0, 10]。片名不唯一，所有同名影片都会记一条评分。
func (d *Dispatcher) rate(userID int, tokens []string) string {
	if len(tokens) < 3 {
		return rateUsageText
	}
	title := tokens[1]

	nice, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil || math.IsNaN(nice) {
		return badScoreText
	}
	if nice > 10 {
		nice = 10
	} else if nice < 0 {
		nice = 0
	}

	movies, err := d.store.MoviesByExactTitle(title)
	if err != nil {
		log.Printf("[机器人] 片名查询失败: %v", err)
		return storeBusyText
	}
	if len(movies) == 0 {
		return badTitleText
	}

	content := ""
	for _, m := range movies {
		exists, err := d.store.HasLike(userID, m.ID)
		if err != nil {
			log.Printf("[机器人] 评分查询失败: %v", err)
			return storeBusyText
		}

		if err := d.store.UpsertLike(userID, m.ID, nice); err != nil {
			log.Printf("[机器人] 评分写入失败: %v", err)
			content = fmt.Sprintf("评价失败，请重新输入。%s:%s分", title, FormatScore(nice))
			continue
		}

		if exists {
			content = fmt.Sprintf("更新评分成功。%s:%s分", title, FormatScore(nice))
		} else {
			content = fmt.Sprintf("评价成功，感谢您的支持。%s:%s分", title, FormatScore(nice))
		}
	}
	return content
}

// recommend 推荐指令
//
// 邻居命中时渲染邻居评过而本人未评的全部影片；兜底时渲染单部影片
// 并附提示。无可推荐影片不是错误，返回固定文案。
func (d *Dispatcher) recommend(userID int) string {
	result, err := d.rec.Recommend(userID)
	if err != nil {
		log.Printf("[机器人] 推荐计算失败: %v", err)
		return storeBusyText
	}
	if len(result.Movies) == 0 {
		return noRecommendText
	}

	if result.Fallback {
		return FormatFallback(&result.Movies[0])
	}

	var b strings.Builder
	for i := range result.Movies {
		b.WriteString(FormatMovie(&result.Movies[i], false))
	}
	return b.String()
}

// browse 片名检索：先精确后模糊
//
// 精确命中逐部记一条查找事件供热搜统计，写失败只记日志不影响回复。
// 模糊结果限 5 条并经 LRU 缓存；两路都无结果返回未收录文案。
func (d *Dispatcher) browse(userID int, title string) string {
	movies, err := d.store.MoviesByExactTitle(title)
	if err != nil {
		log.Printf("[机器人] 片名查询失败: %v", err)
		return storeBusyText
	}

	if len(movies) > 0 {
		var b strings.Builder
		now := d.now()
		for i := range movies {
			b.WriteString(FormatMovie(&movies[i], false))
			if err := d.store.RecordSeek(userID, movies[i].ID, now); err != nil {
				log.Printf("[机器人] 搜索记录写入失败: %v", err)
			}
		}
		return b.String()
	}

	if cached, ok := d.fuzzyCache.Get(title); ok {
		return cached
	}

	matches, err := d.store.MoviesByTitleContains(title, 5)
	if err != nil {
		log.Printf("[机器人] 片名模糊查询失败: %v", err)
		return storeBusyText
	}
	if len(matches) == 0 {
		return notFoundText
	}

	var b strings.Builder
	b.WriteString(fuzzyHintText)
	for i := range matches {
		b.WriteString(FormatMovie(&matches[i], true))
	}
	reply := b.String()
	d.fuzzyCache.Set(title, reply)
	return reply
}
