package bot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/moviebot/internal/model"
	"github.com/user/moviebot/internal/recommender"
)

// fakeBotStore 内存实现，记录写操作供断言
type fakeBotStore struct {
	movies []model.Movie
	likes  map[[2]int]float64

	seeks     [][2]int // (user_id, movie_id)
	searchErr error
	upsertErr error
	seekErr   error
}

func newFakeBotStore(movies ...model.Movie) *fakeBotStore {
	return &fakeBotStore{
		movies: movies,
		likes:  make(map[[2]int]float64),
	}
}

func (f *fakeBotStore) MoviesByExactTitle(title string) ([]model.Movie, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []model.Movie
	for _, m := range f.movies {
		if m.Title == title {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBotStore) MoviesByTitleContains(sub string, limit int) ([]model.Movie, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []model.Movie
	for _, m := range f.movies {
		if strings.Contains(m.Title, sub) {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBotStore) HasLike(userID, movieID int) (bool, error) {
	_, ok := f.likes[[2]int{userID, movieID}]
	return ok, nil
}

func (f *fakeBotStore) UpsertLike(userID, movieID int, liking float64) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.likes[[2]int{userID, movieID}] = liking
	return nil
}

func (f *fakeBotStore) RecordSeek(userID, movieID int, at time.Time) error {
	if f.seekErr != nil {
		return f.seekErr
	}
	f.seeks = append(f.seeks, [2]int{userID, movieID})
	return nil
}

// fakeRec 固定返回预设结果
type fakeRec struct {
	result *recommender.Result
	err    error
}

func (f *fakeRec) Recommend(userID int) (*recommender.Result, error) {
	return f.result, f.err
}

func catalogMovie(id int, title string, score float64) model.Movie {
	m := model.Movie{
		ID:    id,
		Title: title,
		Num:   numOf(1000),
		Link:  "https://movie.douban.com/subject/1/",
	}
	if score > 0 {
		m.Score = scoreOf(score)
	}
	return m
}

func TestHandleRateClampsHighScore(t *testing.T) {
	store := newFakeBotStore(catalogMovie(1, "秦时明月", 8.0))
	d := NewDispatcher(store, &fakeRec{})

	reply := d.Handle(7, "评价 秦时明月 12.5")

	if !strings.Contains(reply, "评价成功") {
		t.Fatalf("期望评价成功文案，got %q", reply)
	}
	if !strings.Contains(reply, "10分") {
		t.Fatalf("超上限评分应截断为 10，got %q", reply)
	}
	if got := store.likes[[2]int{7, 1}]; got != 10 {
		t.Fatalf("落库评分应为 10，got %v", got)
	}
}

func TestHandleRateClampsLowScore(t *testing.T) {
	store := newFakeBotStore(catalogMovie(1, "秦时明月", 8.0))
	d := NewDispatcher(store, &fakeRec{})

	reply := d.Handle(7, "评价 秦时明月 -3")

	if !strings.Contains(reply, "0分") {
		t.Fatalf("低于下限的评分应截断为 0，got %q", reply)
	}
	if got := store.likes[[2]int{7, 1}]; got != 0 {
		t.Fatalf("落库评分应为 0，got %v", got)
	}
}

func TestHandleRateUpdateExisting(t *testing.T) {
	store := newFakeBotStore(catalogMovie(1, "秦时明月", 8.0))
	store.likes[[2]int{7, 1}] = 6
	d := NewDispatcher(store, &fakeRec{})

	reply := d.Handle(7, "评价 秦时明月 9")

	if !strings.Contains(reply, "更新评分成功") {
		t.Fatalf("重复评价应提示更新，got %q", reply)
	}
	if got := store.likes[[2]int{7, 1}]; got != 9 {
		t.Fatalf("后写应覆盖先写，got %v", got)
	}
}

func TestHandleRateAllSameTitleMovies(t *testing.T) {
	store := newFakeBotStore(
		catalogMovie(1, "无间道", 9.3),
		catalogMovie(2, "无间道", 8.9),
	)
	d := NewDispatcher(store, &fakeRec{})

	d.Handle(7, "评价 无间道 8")

	if len(store.likes) != 2 {
		t.Fatalf("同名影片应全部记分，got %d 条", len(store.likes))
	}
}

func TestHandleRateErrors(t *testing.T) {
	store := newFakeBotStore(catalogMovie(1, "秦时明月", 8.0))
	d := NewDispatcher(store, &fakeRec{})

	if got := d.Handle(7, "评价 秦时明月"); got != rateUsageText {
		t.Fatalf("缺少分数应返回格式提示，got %q", got)
	}
	if got := d.Handle(7, "评价 秦时明月 十分"); got != badScoreText {
		t.Fatalf("非数字评分应返回提示，got %q", got)
	}
	if got := d.Handle(7, "评价 秦时明月 NaN"); got != badScoreText {
		t.Fatalf("NaN 评分应返回提示，got %q", got)
	}
	if got := d.Handle(7, "评价 不存在的电影 8"); got != badTitleText {
		t.Fatalf("未收录片名应返回提示，got %q", got)
	}
	if len(store.likes) != 0 {
		t.Fatal("失败路径不应写入评分")
	}
}

func TestHandleRateStoreError(t *testing.T) {
	store := newFakeBotStore(catalogMovie(1, "秦时明月", 8.0))
	store.searchErr = errors.New("连接中断")
	d := NewDispatcher(store, &fakeRec{})

	if got := d.Handle(7, "评价 秦时明月 8"); got != storeBusyText {
		t.Fatalf("存储失败应返回通用文案，got %q", got)
	}
}

func TestHandleSearchRecordsSeeks(t *testing.T) {
	store := newFakeBotStore(
		catalogMovie(1, "无间道", 9.3),
		catalogMovie(2, "无间道", 8.9),
		catalogMovie(3, "无间道", 8.0),
	)
	d := NewDispatcher(store, &fakeRec{})

	reply := d.Handle(7, "搜索 无间道")

	if len(store.seeks) != 3 {
		t.Fatalf("精确命中应逐部记录查找事件，got %d 条", len(store.seeks))
	}
	if n := strings.Count(reply, "无间道\n"); n != 3 {
		t.Fatalf("回复应包含 3 个影片块，got %d", n)
	}
}

func TestHandleSearchSeekFailureKeepsReply(t *testing.T) {
	store := newFakeBotStore(catalogMovie(1, "无间道", 9.3))
	store.seekErr = errors.New("连接中断")
	d := NewDispatcher(store, &fakeRec{})

	reply := d.Handle(7, "搜索 无间道")

	if !strings.Contains(reply, "无间道") {
		t.Fatalf("查找事件写失败不应影响回复，got %q", reply)
	}
}

func TestHandleSearchFuzzyFallsThrough(t *testing.T) {
	store := newFakeBotStore(
		catalogMovie(1, "无间道", 9.3),
		catalogMovie(2, "无间道2", 8.9),
	)
	d := NewDispatcher(store, &fakeRec{})

	reply := d.Handle(7, "搜索 无间")

	if !strings.HasPrefix(reply, fuzzyHintText) {
		t.Fatalf("模糊结果应带提示前缀，got %q", reply)
	}
	// 模糊展示强制输出评分行
	if !strings.Contains(reply, "评分:9.3\n") {
		t.Fatalf("模糊结果应输出评分，got %q", reply)
	}
	if len(store.seeks) != 0 {
		t.Fatal("模糊命中不应记录查找事件")
	}
}

func TestHandleSearchFuzzyResultCached(t *testing.T) {
	store := newFakeBotStore(catalogMovie(1, "无间道", 9.3))
	d := NewDispatcher(store, &fakeRec{})

	first := d.Handle(7, "搜索 无间")

	// 清空目录后再查，缓存仍应返回同样的回复
	store.movies = nil
	second := d.Handle(7, "搜索 无间")
	if first != second {
		t.Fatalf("模糊回复应命中缓存\nfirst: %q\nsecond: %q", first, second)
	}
}

func TestHandleSearchNotFound(t *testing.T) {
	d := NewDispatcher(newFakeBotStore(), &fakeRec{})

	if got := d.Handle(7, "搜索 不存在"); got != notFoundText {
		t.Fatalf("无结果应返回未收录文案，got %q", got)
	}
	if got := d.Handle(7, "搜索"); got != badTitleText {
		t.Fatalf("缺少关键词应返回片名提示，got %q", got)
	}
}

func TestHandleUnknownVerbBrowsesWholeText(t *testing.T) {
	store := newFakeBotStore(catalogMovie(1, "流浪 地球", 8.3))
	d := NewDispatcher(store, &fakeRec{})

	reply := d.Handle(7, " 流浪 地球 ")

	if !strings.Contains(reply, "流浪 地球\n") {
		t.Fatalf("未识别指令应整体作为片名检索，got %q", reply)
	}
	if len(store.seeks) != 1 {
		t.Fatalf("精确命中应记录查找事件，got %d", len(store.seeks))
	}
}

func TestHandleHelpAndEmpty(t *testing.T) {
	d := NewDispatcher(newFakeBotStore(), &fakeRec{})

	if got := d.Handle(7, "怎么用"); got != HelpText {
		t.Fatalf("帮助指令应返回使用说明，got %q", got)
	}
	if got := d.Handle(7, "   "); got != emptyCmdText {
		t.Fatalf("空指令应返回提示，got %q", got)
	}
}

func TestHandleRecommendNeighbor(t *testing.T) {
	rec := &fakeRec{result: &recommender.Result{
		NeighborID: 2,
		Movies: []model.Movie{
			catalogMovie(1, "春光乍泄", 8.9),
			catalogMovie(2, "重庆森林", 8.8),
		},
	}}
	d := NewDispatcher(newFakeBotStore(), rec)

	reply := d.Handle(7, "推荐")

	if !strings.Contains(reply, "春光乍泄\n") || !strings.Contains(reply, "重庆森林\n") {
		t.Fatalf("邻居推荐应逐部渲染，got %q", reply)
	}
	if strings.Contains(reply, fallbackNote) {
		t.Fatal("邻居推荐不应附带兜底提示")
	}
}

func TestHandleRecommendFallback(t *testing.T) {
	rec := &fakeRec{result: &recommender.Result{
		Fallback: true,
		Movies:   []model.Movie{catalogMovie(1, "春光乍泄", 8.9)},
	}}
	d := NewDispatcher(newFakeBotStore(), rec)

	reply := d.Handle(7, "推荐")

	if !strings.HasSuffix(reply, fallbackNote) {
		t.Fatalf("兜底推荐应附提示文案，got %q", reply)
	}
}

func TestHandleRecommendEmptyAndError(t *testing.T) {
	d := NewDispatcher(newFakeBotStore(), &fakeRec{result: &recommender.Result{Fallback: true}})
	if got := d.Handle(7, "推荐"); got != noRecommendText {
		t.Fatalf("无可推荐影片应返回固定文案，got %q", got)
	}

	d = NewDispatcher(newFakeBotStore(), &fakeRec{err: errors.New("连接中断")})
	if got := d.Handle(7, "推荐"); got != storeBusyText {
		t.Fatalf("推荐失败应返回通用文案，got %q", got)
	}
}
