// Package corpcode loads the DART corp-code registry (CORPCODE.xml) into the
// company store.
package corpcode

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dan9191/corp-finance-service/internal/models"
	"github.com/beevik/etree"
)

// Parse reads the <result><list>...</list></result> registry document.
// Entries without a corp code are skipped.
func Parse(r io.Reader) ([]models.Company, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty corp code document")
	}

	var companies []models.Company
	for _, el := range root.SelectElements("list") {
		company := models.Company{
			CorpCode:    childText(el, "corp_code"),
			CorpName:    childText(el, "corp_name"),
			CorpNameEng: childText(el, "corp_name_eng"),
			StockCode:   childText(el, "stock_code"),
			ModifyDate:  childText(el, "modify_date"),
		}
		if company.CorpCode == "" {
			continue
		}
		companies = append(companies, company)
	}

	return companies, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
