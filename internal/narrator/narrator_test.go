package narrator

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/corp-finance-service/internal/integrations/llm"
	"github.com/Dan9191/corp-finance-service/internal/models"
)

type fakeGenerator struct {
	text   string
	err    error
	calls  int
	system string
	prompt string
	ctxErr error
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.prompt = prompt
	f.ctxErr = ctx.Err()
	return f.text, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func ptr(f float64) *float64 { return &f }

var samsung = &models.Company{CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930"}

func TestNarrate_Disabled(t *testing.T) {
	n := New(nil, time.Second, quietLogger())

	report := n.Narrate(context.Background(), samsung, models.RatioSet{})

	assert.False(t, n.Enabled())
	assert.Equal(t, models.ReportDisabled, report.Status)
	assert.Equal(t, MsgDisabled, report.Message)
	assert.Empty(t, report.Text)
}

func TestNarrate_Success(t *testing.T) {
	gen := &fakeGenerator{text: "보고서 본문"}
	n := New(gen, time.Second, quietLogger())

	report := n.Narrate(context.Background(), samsung, models.RatioSet{OperatingMargin: ptr(15)})

	assert.Equal(t, models.ReportSuccess, report.Status)
	assert.Equal(t, "보고서 본문", report.Text)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, SystemPrompt, gen.system)
	assert.Contains(t, gen.prompt, "영업이익률: 15.0%")
}

func TestNarrate_ErrorsAreGeneric(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", &llm.StatusError{Provider: "x", StatusCode: http.StatusUnauthorized}, MsgUnauthorized},
		{"forbidden", &llm.StatusError{Provider: "x", StatusCode: http.StatusForbidden}, MsgUnauthorized},
		{"rate limited", &llm.StatusError{Provider: "x", StatusCode: http.StatusTooManyRequests}, MsgUnavailable},
		{"server error", &llm.StatusError{Provider: "x", StatusCode: http.StatusServiceUnavailable}, MsgUnavailable},
		{"bad request", &llm.StatusError{Provider: "x", StatusCode: http.StatusBadRequest}, MsgFailed},
		{"timeout", context.DeadlineExceeded, MsgTimeout},
		{"transport", errors.New("dial tcp: secret-host refused"), MsgFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(&fakeGenerator{err: tt.err}, time.Second, quietLogger())

			report := n.Narrate(context.Background(), samsung, models.RatioSet{})

			assert.Equal(t, models.ReportError, report.Status)
			assert.Equal(t, tt.want, report.Message)
			assert.Empty(t, report.Text)
		})
	}
}

func TestNarrate_EmptyText(t *testing.T) {
	n := New(&fakeGenerator{}, time.Second, quietLogger())

	report := n.Narrate(context.Background(), samsung, models.RatioSet{})

	assert.Equal(t, models.ReportError, report.Status)
	assert.Equal(t, MsgEmpty, report.Message)
}

func TestNarrate_IgnoresCallerCancellation(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	n := New(gen, time.Second, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := n.Narrate(ctx, samsung, models.RatioSet{})

	assert.Equal(t, models.ReportSuccess, report.Status)
	assert.NoError(t, gen.ctxErr)
}

func TestBuildPrompt_PlaceholdersForMissingValues(t *testing.T) {
	prompt := BuildPrompt(BuildProfile(nil, models.RatioSet{}, time.Now()), models.RatioSet{
		ROE:              ptr(8.3),
		RevenueFormatted: "258.9조원",
	})

	assert.Contains(t, prompt, "- ROE: 8.3%")
	assert.Contains(t, prompt, "- 매출액: 258.9조원")
	assert.Contains(t, prompt, "- 영업이익률: "+UnavailableText)
	assert.Contains(t, prompt, "- 자산총계: "+UnavailableText)
	assert.Contains(t, prompt, "- 업종: "+UnavailableText)
}

func TestBuildProfile(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	company := &models.Company{
		CorpName:        "한국바이오팜",
		StockCode:       " 123456 ",
		EstablishedDate: "19990715",
	}
	ratios := models.RatioSet{
		TotalAssetsFormatted: "6000억원",
		TotalEquityFormatted: "3000억원",
	}

	p := BuildProfile(company, ratios, now)

	assert.Equal(t, "한국바이오팜", p.Name)
	assert.Equal(t, "제약·바이오 (회사명 기준 추정)", p.Industry)
	assert.Equal(t, "중견기업", p.Size)
	assert.Equal(t, "상장 (종목코드 123456)", p.Listing)
	assert.Equal(t, "1999년 설립, 업력 24년", p.Age)
	assert.Equal(t, "3000억원", p.Capital)
}

func TestBuildProfile_ExplicitIndustryWins(t *testing.T) {
	company := &models.Company{CorpName: "삼성전자", Industry: "통신장비 제조업"}

	p := BuildProfile(company, models.RatioSet{}, time.Now())

	assert.Equal(t, "통신장비 제조업", p.Industry)
	assert.Equal(t, "비상장", p.Listing)
	assert.Equal(t, UnavailableText, p.Size)
	assert.Equal(t, UnavailableText, p.Age)
}

func TestSizeClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"455.9조원", "대기업", true},
		{"5.0조원", "대기업", true},
		{"4.9조원", "중견기업", true},
		{"5000억원", "중견기업", true},
		{"4999억원", "중소기업", true},
		{"12,000,000원", "중소기업", true},
		{"0원", "", false},
		{"", "", false},
		{"n/a", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := sizeClass(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferIndustry(t *testing.T) {
	industry, ok := InferIndustry("현대자동차")
	assert.True(t, ok)
	assert.Equal(t, "자동차·부품", industry)

	_, ok = InferIndustry("알수없음")
	assert.False(t, ok)
}
