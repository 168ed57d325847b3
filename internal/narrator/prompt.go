package narrator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dan9191/corp-finance-service/internal/models"
)

// SystemPrompt is the instruction sent alongside every report prompt
const SystemPrompt = "당신은 한국 기업의 재무제표를 분석하는 재무 분석 전문가입니다. " +
	"제공된 수치만을 근거로 객관적이고 간결한 한국어 보고서를 작성하세요."

// BuildPrompt embeds the profile, every amount and every ratio into the report request.
func BuildPrompt(p Profile, r models.RatioSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "다음은 %s의 재무 정보입니다. 이를 바탕으로 투자자를 위한 재무 분석 보고서를 작성해 주세요.\n\n", p.Name)

	b.WriteString("[기업 개요]\n")
	line(&b, "회사명", p.Name)
	line(&b, "업종", p.Industry)
	line(&b, "기업 규모", p.Size)
	line(&b, "상장 여부", p.Listing)
	line(&b, "업력", p.Age)
	line(&b, "자본 규모", p.Capital)

	b.WriteString("\n[재무 규모]\n")
	line(&b, "매출액", text(r.RevenueFormatted))
	line(&b, "영업이익", text(r.OperatingProfitFormatted))
	line(&b, "당기순이익", text(r.NetIncomeFormatted))
	line(&b, "자산총계", text(r.TotalAssetsFormatted))
	line(&b, "부채총계", text(r.TotalLiabilitiesFormatted))
	line(&b, "자본총계", text(r.TotalEquityFormatted))

	b.WriteString("\n[재무 비율]\n")
	line(&b, "영업이익률", pct(r.OperatingMargin))
	line(&b, "순이익률", pct(r.NetMargin))
	line(&b, "부채비율", pct(r.DebtRatio))
	line(&b, "ROE", pct(r.ROE))
	line(&b, "ROA", pct(r.ROA))
	line(&b, "자기자본비율", pct(r.EquityRatio))
	line(&b, "유동비율", pct(r.CurrentRatio))

	b.WriteString("\n[작성 지침]\n")
	b.WriteString("1. 수익성 분석: 영업이익률, 순이익률, ROE, ROA를 해석하세요.\n")
	b.WriteString("2. 안정성 분석: 부채비율, 자기자본비율, 유동비율을 해석하세요.\n")
	b.WriteString("3. 업종과 기업 규모를 고려한 종합 평가를 작성하세요.\n")
	b.WriteString("4. 투자 시 유의해야 할 점을 정리하세요.\n")
	b.WriteString("'" + UnavailableText + "'으로 표시된 항목은 추정하지 말고 확인이 필요하다고 언급하세요.\n")

	return b.String()
}

func line(b *strings.Builder, label, value string) {
	b.WriteString("- " + label + ": " + value + "\n")
}

func text(s string) string {
	if s == "" {
		return UnavailableText
	}
	return s
}

func pct(v *float64) string {
	if v == nil {
		return UnavailableText
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + "%"
}
