package usage

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// CSVFilename is the attachment name used for exports.
const CSVFilename = "ai-usage.csv"

var csvHeader = []string{"Model", "Liczba zapytań", "Tokeny", "Koszt"}

// WriteCSV writes the header and one line per row. Cost is the plain
// decimal string, never localized.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Model,
			strconv.FormatInt(r.RequestCount, 10),
			strconv.FormatInt(r.TokensUsed, 10),
			r.Cost.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatCost renders a cost for display: four decimals and a currency
// suffix.
func FormatCost(cost decimal.Decimal, suffix string) string {
	if suffix == "" {
		return cost.StringFixed(4)
	}
	return cost.StringFixed(4) + " " + suffix
}
