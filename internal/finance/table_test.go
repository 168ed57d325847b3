package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/corp-finance-service/internal/models"
)

func TestBuildTable(t *testing.T) {
	items := []models.LineItem{
		item("CFS", "BS", "자산총계", "1,500,000,000,000", "1,000,000,000,000", ""),
		item("CFS", "BS", "유동자산", "1", "1", "1"),
		item("CFS", "IS", "매출액", "250,000,000", "99,999,999", "-"),
		item("OFS", "IS", "영업이익", "5", "5", "5"),
	}

	rows := BuildTable(Index(items))

	assert.Equal(t, []models.TableRow{
		{AccountName: "자산총계", ThstrmAmount: "1.5조원", FrmtrmAmount: "1.0조원", BfefrmtrmAmount: "0원"},
		{AccountName: "매출액", ThstrmAmount: "3억원", FrmtrmAmount: "99,999,999원", BfefrmtrmAmount: "0원"},
	}, rows)
}

func TestBuildTable_UsesStandaloneWhenSelected(t *testing.T) {
	items := []models.LineItem{
		item("OFS", "IS", "당기순이익", "1,000", "", ""),
	}

	rows := BuildTable(Index(items))

	assert.Len(t, rows, 1)
	assert.Equal(t, "1,000원", rows[0].ThstrmAmount)
}

func TestBuildTable_Empty(t *testing.T) {
	rows := BuildTable(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
