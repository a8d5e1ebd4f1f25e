// Package export renders report DTOs as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Tabular is implemented by report responses that can be flattened into rows.
type Tabular interface {
	Header() []string
	Records() [][]string
}

// WriteCSV writes the header followed by every record.
func WriteCSV(w io.Writer, t Tabular) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("writing csv records: %w", err)
	}
	return nil
}
