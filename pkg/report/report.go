// Package report explains how each feed item was classified, as CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"menugen/pkg/classify"
	"menugen/pkg/discount"
	"menugen/pkg/feed"
)

// Row is one audited item.
type Row struct {
	ID       string `csv:"id" json:"id"`
	Name     string `csv:"name" json:"name"`
	Strain   string `csv:"strain" json:"strain"`
	Brand    string `csv:"brand" json:"brand"`
	Type     string `csv:"product_type" json:"product_type"`
	Lineage  string `csv:"lineage" json:"lineage"`
	Unit     string `csv:"unit" json:"unit"`
	Price    string `csv:"price" json:"price"`
	THC      string `csv:"thc" json:"thc"`
	CBD      string `csv:"cbd" json:"cbd"`
	Category string `csv:"category" json:"category"`
	Discount string `csv:"discount,omitempty" json:"discount,omitempty"`
}

// Build classifies items for a product line in feed order.
func Build(engine *classify.Engine, line string, items []feed.Item, storeKey string) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		unit, price := feed.PriceInfo(item)
		rows = append(rows, Row{
			ID:       item.ID.String(),
			Name:     item.Name,
			Strain:   item.Strain,
			Brand:    item.Brand,
			Type:     item.ProductType,
			Lineage:  string(feed.LineageOf(item)),
			Unit:     unit,
			Price:    fmt.Sprintf("%.2f", price),
			THC:      item.THC.Current.String(),
			CBD:      feed.FormatCBD(item.CBD.Current.String()),
			Category: engine.Label(line, item),
			Discount: discount.LevelFor(item, storeKey).String(),
		})
	}
	return rows
}

// WriteCSV writes rows with a header line. An empty report is just the header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(Row{}); err != nil {
			return fmt.Errorf("failed to encode CSV header: %w", err)
		}
	} else if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Write dispatches on format: "csv" or "json".
func Write(w io.Writer, format string, rows []Row) error {
	switch format {
	case "csv":
		return WriteCSV(w, rows)
	case "json", "":
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
