package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Row is a flattened record for tabular display.
type Row struct {
	Time      string
	Original  string
	Encoded   string
	Format    string
	Syllables string // "mapped/total"
	Ratio     string
}

// Columns are the table headers matching Row's field order.
var Columns = []string{"Time", "Original", "Encoded", "Format", "Syllables", "Ratio"}

// Rows flattens records in order.
func Rows(records []Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{
			Time:      r.Timestamp.Format(time.DateTime),
			Original:  r.Original,
			Encoded:   r.Encoded,
			Format:    r.Format,
			Syllables: fmt.Sprintf("%d/%d", r.Stats.MappedCount, r.Stats.SyllableCount),
			Ratio:     strconv.FormatFloat(r.Stats.CompressionRatio, 'f', 2, 64),
		})
	}
	return rows
}

// Strings returns the row cells in Columns order.
func (r Row) Strings() []string {
	return []string{r.Time, r.Original, r.Encoded, r.Format, r.Syllables, r.Ratio}
}

// WriteCSV writes a header line followed by one line per record.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, row := range Rows(records) {
		if err := cw.Write(row.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
