package render

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/coverage-cli/internal/aggregator"
)

// WriteReviewsXLSX writes the needs-review list as a single-sheet workbook
// with a header row, one review item per row.
func WriteReviewsXLSX(path string, items []aggregator.ReviewItem) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Needs Review")
	if err != nil {
		return eris.Wrap(err, "render: add review sheet")
	}

	header := sheet.AddRow()
	for _, col := range []string{"Buyer", "Title", "URL", "Reason"} {
		header.AddCell().SetString(col)
	}
	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().SetString(item.Buyer)
		row.AddCell().SetString(item.Title)
		row.AddCell().SetString(item.URL)
		row.AddCell().SetString(item.Reason)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "render: save review workbook %s", path)
	}
	return nil
}
