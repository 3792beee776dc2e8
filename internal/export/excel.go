// Package export renders quote documents. The numeric fields it receives are
// internally consistent by contract (the calculator guarantees, for example,
// that the price with fee equals the base price plus the fee value), so this
// package only formats, it never re-derives totals.
package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mallkiprint/calc3d/internal/pricing"
)

const sheetName = "Quote"

// Item is one quoted piece: the inputs and the results computed from them.
type Item struct {
	Inputs  pricing.Inputs
	Results pricing.Results
}

// Total returns the line total for the item, using the wholesale price when
// the inputs prefer it.
func (it Item) Total() float64 {
	if it.Inputs.UseWholesalePrice {
		return it.Results.WholesalePrice
	}
	return it.Results.FinalPriceWithFee
}

// Document is a quote for one client covering one or more items.
type Document struct {
	Company  string
	Client   string
	Currency string
	IssuedAt time.Time
	Items    []Item
}

// QuoteWorkbook builds an XLSX workbook for the document: header with company,
// client and date, one row per item and a grand total row.
func QuoteWorkbook(doc Document) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create quote sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	client := doc.Client
	if client == "" {
		client = "Cliente"
	}

	f.SetCellValue(sheetName, "A1", "QUOTE")
	f.SetCellValue(sheetName, "B1", doc.Company)
	f.SetCellValue(sheetName, "A2", "Client")
	f.SetCellValue(sheetName, "B2", client)
	f.SetCellValue(sheetName, "A3", "Date")
	f.SetCellValue(sheetName, "B3", doc.IssuedAt.Format("2006-01-02"))
	f.SetCellValue(sheetName, "A4", "Currency")
	f.SetCellValue(sheetName, "B4", doc.Currency)

	headers := []string{"Qty", "Description", "Material", "Weight (g)", "Time (h:m)", "Unit price", "Line total"}
	const headerRow = 6
	for col, label := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("resolve header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, label)
	}

	grandTotal := 0.0
	row := headerRow
	for _, item := range doc.Items {
		row++
		in := item.Inputs
		quantity := in.EffectiveQuantity()
		total := item.Total()
		grandTotal += total

		values := []any{
			quantity,
			in.PieceName,
			in.Material,
			in.FilamentUsed,
			formatDuration(in.PrintTime()),
			money(total/float64(quantity), in.RoundFinalPrice),
			money(total, in.RoundFinalPrice),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("resolve item cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, v)
		}
	}

	round := len(doc.Items) > 0 && doc.Items[0].Inputs.RoundFinalPrice
	totalRow := row + 2
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", totalRow), "TOTAL")
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", totalRow), money(grandTotal, round))

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		headerEnd, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
		f.SetCellStyle(sheetName, "A6", headerEnd, style)
		f.SetCellStyle(sheetName, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("G%d", totalRow), style)
	}

	f.SetActiveSheet(index)
	return f, nil
}

// WriteQuote streams the workbook for the document to w.
func WriteQuote(w io.Writer, doc Document) error {
	f, err := QuoteWorkbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write quote workbook: %w", err)
	}
	return nil
}

// money formats a currency amount with two decimals, or none when the
// rounding flag is set. Non-finite values print as zero.
func money(v float64, round bool) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if round {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// formatDuration renders decimal hours as "Hh MMmin".
func formatDuration(hours float64) string {
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %02dmin", h, m)
}
