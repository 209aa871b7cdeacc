package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/abdidvp/iisaudit/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter implements domain.ReportWriter with RFC 4180 CSV files.
// Files are written to a temporary sibling and renamed into place, so the
// destination holds either the previous content or the complete report.
type CSVWriter struct {
	bom bool
}

// NewCSVWriter creates a CSVWriter that writes plain UTF-8.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WithBOM makes the writer prefix files with a UTF-8 byte order mark,
// which some spreadsheet tools need to detect the encoding.
func (w *CSVWriter) WithBOM(enabled bool) *CSVWriter {
	w.bom = enabled
	return w
}

func (w *CSVWriter) Write(path string, rows []domain.ReportRow) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".iisaudit-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if w.bom {
		if _, err := tmp.Write(utf8BOM); err != nil {
			return fmt.Errorf("writing byte order mark: %w", err)
		}
	}

	if err := encode(tmp, rows); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("flushing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	committed = true
	return nil
}

func encode(out io.Writer, rows []domain.ReportRow) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(domain.ReportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func record(r domain.ReportRow) []string {
	return []string{
		r.SystemName,
		r.SiteName,
		strconv.FormatInt(r.SiteID, 10),
		r.ConnectionStringName,
		r.ConnectionStringValue,
		r.PhysicalPath,
		r.Source,
		r.Status,
	}
}

// ReadReport parses a report written by CSVWriter back into rows.
// A CRLF inside a quoted value comes back as a bare LF; the file itself
// keeps the bytes that were written.
func ReadReport(path string) ([]domain.ReportRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = len(domain.ReportHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if !slices.Equal(header, domain.ReportHeader) {
		return nil, fmt.Errorf("%s: unexpected header %v", path, header)
	}

	var rows []domain.ReportRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		id, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			line, _ := cr.FieldPos(2)
			return nil, fmt.Errorf("%s:%d: invalid SiteID %q", path, line, rec[2])
		}

		rows = append(rows, domain.ReportRow{
			SystemName:            rec[0],
			SiteName:              rec[1],
			SiteID:                id,
			ConnectionStringName:  rec[3],
			ConnectionStringValue: rec[4],
			PhysicalPath:          rec[5],
			Source:                rec[6],
			Status:                rec[7],
		})
	}

	return rows, nil
}
