package narrator

import (
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/corp-finance-service/internal/finance"
	"github.com/Dan9191/corp-finance-service/internal/models"
)

// UnavailableText stands in for any value that could not be determined
const UnavailableText = "정보 없음"

// Profile is the company description embedded in the prompt
type Profile struct {
	Name     string
	Industry string
	Size     string
	Listing  string
	Age      string
	Capital  string
}

var industryKeywords = []struct {
	industry string
	keywords []string
}{
	{"전자·반도체", []string{"반도체", "전자", "디스플레이"}},
	{"제약·바이오", []string{"바이오", "제약", "약품", "헬스케어", "셀"}},
	{"자동차·부품", []string{"자동차", "모비스", "타이어", "오토"}},
	{"화학", []string{"화학", "케미칼", "케미컬"}},
	{"건설", []string{"건설", "건축", "엔지니어링"}},
	{"금융", []string{"은행", "금융", "증권", "보험", "캐피탈", "카드", "투자"}},
	{"통신", []string{"통신", "텔레콤"}},
	{"식품", []string{"식품", "푸드", "제과", "음료", "제당"}},
	{"에너지", []string{"에너지", "전력", "가스", "정유", "오일"}},
	{"철강·금속", []string{"철강", "제철", "스틸", "금속"}},
	{"미디어·엔터테인먼트", []string{"엔터", "미디어", "방송", "게임", "콘텐츠"}},
	{"IT·소프트웨어", []string{"소프트", "시스템", "정보", "테크", "네트웍스", "데이터"}},
	{"유통", []string{"유통", "리테일", "쇼핑", "마트", "백화점", "홈쇼핑"}},
	{"운송·물류", []string{"해운", "항공", "물류", "운송", "택배"}},
}

// InferIndustry guesses an industry from keywords in the company name.
func InferIndustry(name string) (string, bool) {
	for _, entry := range industryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.industry, true
			}
		}
	}
	return "", false
}

// BuildProfile derives the company description from registry fields and
// the formatted amounts in ratios.
func BuildProfile(company *models.Company, ratios models.RatioSet, now time.Time) Profile {
	p := Profile{
		Name:     UnavailableText,
		Industry: UnavailableText,
		Size:     UnavailableText,
		Listing:  UnavailableText,
		Age:      UnavailableText,
		Capital:  UnavailableText,
	}

	if company != nil {
		if company.CorpName != "" {
			p.Name = company.CorpName
		}
		if industry := strings.TrimSpace(company.Industry); industry != "" {
			p.Industry = industry
		} else if industry, ok := InferIndustry(company.CorpName); ok {
			p.Industry = industry + " (회사명 기준 추정)"
		}
		if company.IsListed() {
			p.Listing = "상장 (종목코드 " + strings.TrimSpace(company.StockCode) + ")"
		} else {
			p.Listing = "비상장"
		}
		if age, ok := companyAge(company.EstablishedDate, now); ok {
			p.Age = age
		}
	}

	if size, ok := sizeClass(ratios.TotalAssetsFormatted); ok {
		p.Size = size
	}
	if ratios.TotalEquityFormatted != "" {
		p.Capital = ratios.TotalEquityFormatted
	}

	return p
}

// sizeClass buckets total assets: 5조원 and above is large, 5000억원 and above
// is mid-sized, anything else small.
func sizeClass(totalAssets string) (string, bool) {
	amount, ok := parseFormatted(totalAssets)
	if !ok || amount <= 0 {
		return "", false
	}
	switch {
	case amount >= 5e12:
		return "대기업", true
	case amount >= 5e11:
		return "중견기업", true
	default:
		return "중소기업", true
	}
}

// parseFormatted reverses finance.FormatAmount to a won amount.
func parseFormatted(s string) (float64, bool) {
	units := []struct {
		suffix string
		scale  float64
	}{
		{finance.UnitTrillion, 1e12},
		{finance.UnitHundredMillion, 1e8},
		{finance.UnitWon, 1},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			return finance.ParseAmount(strings.TrimSuffix(s, u.suffix)) * u.scale, true
		}
	}
	return 0, false
}

func companyAge(established string, now time.Time) (string, bool) {
	established = strings.TrimSpace(established)
	if established == "" {
		return "", false
	}
	founded, err := time.Parse("20060102", established)
	if err != nil {
		return "", false
	}
	years := now.Year() - founded.Year()
	if now.Month() < founded.Month() || (now.Month() == founded.Month() && now.Day() < founded.Day()) {
		years--
	}
	if years < 0 {
		return "", false
	}
	return founded.Format("2006년") + " 설립, 업력 " + strconv.Itoa(years) + "년", true
}
