// Package export renders an item list as CSV or JSON, matching the
// dashboard's download formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fintrack/internal/core"
)

// utf8BOM lets spreadsheet tools detect the encoding of the CSV dump.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"Nome", "Tipo", "Categoria", "Valor", "Data", "Descrição", "Tags"}

// WriteCSV writes the items as a UTF-8 CSV with a byte-order mark. Column
// order is fixed; the amount is formatted as currency and the date as
// dd/mm/yyyy.
func WriteCSV(w io.Writer, items []core.Item) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, item := range items {
		typeLabel := "Despesa"
		if item.Type == core.TypeIncome {
			typeLabel = "Receita"
		}

		record := []string{
			item.Name,
			typeLabel,
			string(item.Category),
			FormatCurrency(item.Amount),
			item.Date.Format("02/01/2006"),
			item.Description,
			strings.Join(item.Tags, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the items as an indented JSON array.
func WriteJSON(w io.Writer, items []core.Item) error {
	if items == nil {
		items = []core.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return nil
}

// FormatCurrency renders the amount in Brazilian currency notation, e.g.
// 5000 -> "R$ 5.000,00".
func FormatCurrency(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	cents := int64(amount*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	s := fmt.Sprintf("R$ %s,%02d", b.String(), frac)
	if neg {
		return "-" + s
	}
	return s
}
