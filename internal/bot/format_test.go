package bot

import (
	"strings"
	"testing"

	"github.com/user/moviebot/internal/model"
)

func scoreOf(v float64) *float64 { return &v }
func numOf(v int) *int           { return &v }

func sampleMovie() *model.Movie {
	return &model.Movie{
		ID:           1,
		Title:        "肖申克的救赎",
		Score:        scoreOf(9.7),
		Num:          numOf(2000000),
		Link:         "https://movie.douban.com/subject/1292052/",
		ReleaseDate:  "1994-09-10",
		Address:      "加拿大",
		OtherRelease: "",
		Actors:       []string{"蒂姆·罗宾斯", "摩根·弗里曼"},
	}
}

func TestFormatScore(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{9.7, "9.7"},
		{0, "0"},
		{8.25, "8.25"},
	}
	for _, c := range cases {
		if got := FormatScore(c.in); got != c.want {
			t.Errorf("FormatScore(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatMovie(t *testing.T) {
	got := FormatMovie(sampleMovie(), false)
	want := "肖申克的救赎\n" +
		"1994-09-10\n" +
		"加拿大\n" +
		"\n" +
		"蒂姆·罗宾斯,摩根·弗里曼\n" +
		"评价人数:2000000\n" +
		"评分:9.7\n" +
		"https://movie.douban.com/subject/1292052/\n\n"
	if got != want {
		t.Fatalf("影片文本不符\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatMovieOmitsMissingScore(t *testing.T) {
	m := sampleMovie()
	m.Score = nil
	if strings.Contains(FormatMovie(m, false), "评分:") {
		t.Fatal("评分缺失时不应输出评分行")
	}

	m.Score = scoreOf(0)
	if strings.Contains(FormatMovie(m, false), "评分:") {
		t.Fatal("评分为 0 时不应输出评分行")
	}
}

func TestFormatMovieForceScore(t *testing.T) {
	m := sampleMovie()
	m.Score = nil
	got := FormatMovie(m, true)
	if !strings.Contains(got, "评分:0\n") {
		t.Fatalf("强制输出时缺失评分按 0 处理，got:\n%q", got)
	}
}

func TestFormatMovieNilNum(t *testing.T) {
	m := sampleMovie()
	m.Num = nil
	if !strings.Contains(FormatMovie(m, false), "评价人数:0\n") {
		t.Fatal("评价人数缺失按 0 输出")
	}
}

func TestFormatFallback(t *testing.T) {
	got := FormatFallback(sampleMovie())

	if !strings.HasSuffix(got, fallbackNote) {
		t.Fatalf("兜底文本应以提示文案结尾，got:\n%q", got)
	}
	// 链接行与提示文案之间只隔一个换行
	if strings.Contains(got, "1292052/\n\n") {
		t.Fatalf("兜底文本不应保留块尾空行，got:\n%q", got)
	}
	if !strings.Contains(got, "评分:9.7\n") {
		t.Fatal("兜底文本应输出评分行")
	}
}
