// Package export builds CSV payloads for download endpoints. Fields
// containing commas or quotes are wrapped and quote-escaped per RFC 4180,
// which encoding/csv handles.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/sirtis/backoffice/internal/models"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

func write(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "write csv header")
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "write csv rows")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "flush csv")
	}
	return buf.Bytes(), nil
}

// DocumentsCSV renders the current document projection, in its given order.
func DocumentsCSV(docs []models.Document) ([]byte, error) {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			d.ID.String(),
			d.Title,
			d.Description,
			d.Classification,
			strconv.FormatInt(d.SizeBytes, 10),
			d.UploadDate.Format(time.RFC3339),
			d.LastModified.Format(time.RFC3339),
		})
	}
	return write([]string{"id", "title", "description", "classification", "size_bytes", "upload_date", "last_modified"}, rows)
}

// CasesCSV renders a case listing for offline reporting.
func CasesCSV(cases []models.Case) ([]byte, error) {
	rows := make([][]string, 0, len(cases))
	for _, c := range cases {
		resolved := ""
		if c.ResolvedAt != nil {
			resolved = c.ResolvedAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			c.ID.String(),
			c.Subject,
			c.Category,
			c.Priority,
			string(c.Status),
			c.Assignee,
			c.OpenedAt.Format(time.RFC3339),
			resolved,
		})
	}
	return write([]string{"id", "subject", "category", "priority", "status", "assignee", "opened_at", "resolved_at"}, rows)
}
