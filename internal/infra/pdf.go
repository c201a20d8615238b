package infra

// pdf.go: printable shopping list using go-pdf/fpdf.
// A5 portrait page with the list title, date, one row per item (checkbox,
// product, quantity, line cost) and the remaining total in the display currency.
// Purchased rows are printed struck through in grey.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cookncart/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateShoppingListPDF writes list to storagePath/shopping_list_<id>.pdf and
// returns the file path. total is the preformatted remaining total, e.g. "12.34 €".
func GenerateShoppingListPDF(list *dto.ShoppingListResponse, total string, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("shopping_list_%s.pdf", list.ID))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	// core fonts are cp1252; translate so € and ä/ö render
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, tr(list.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, time.Now().Format("02.01.2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	colBox := 7.0
	colName := contentW * 0.55
	colQty := contentW * 0.2
	colCost := contentW - colBox - colName - colQty

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colBox, 6, "", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colName, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colCost, 6, "Cost", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range list.Items {
		name := item.ProductName
		if item.Missing {
			name = "(removed product)"
		}
		if len([]rune(name)) > 40 {
			name = string([]rune(name)[:39]) + "…"
		}
		box := "[ ]"
		if item.IsPurchased {
			box = "[x]"
			pdf.SetTextColor(140, 140, 140)
		}
		y := pdf.GetY()
		pdf.CellFormat(colBox, 6, box, "", 0, "C", false, 0, "")
		pdf.CellFormat(colName, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, tr(formatQuantity(item.Quantity, item.Unit)), "", 0, "R", false, 0, "")
		pdf.CellFormat(colCost, 6, item.LineCost.StringFixed(2), "", 1, "R", false, 0, "")
		if item.IsPurchased {
			pdf.Line(10+colBox, y+3, 10+contentW, y+3)
			pdf.SetTextColor(0, 0, 0)
		}
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%d / %d purchased", list.PurchasedCount, len(list.Items)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colBox+colName+colQty, 7, "Remaining:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colCost, 7, tr(total), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func formatQuantity(q float64, unit string) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", q), "0"), ".")
	return s + " " + unit
}
