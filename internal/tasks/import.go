package tasks

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/time/rate"

	"github.com/desertthunder/yap/internal/shared"
)

// ImportRow is one "id,name[,artist]" line of an import file.
type ImportRow struct {
	Line   int
	ID     string
	Name   string
	Artist string
}

// ImportResult lists what an import registered before it stopped.
type ImportResult struct {
	Total      int
	Registered []*RegisterResult
	Failed     *ImportRow // row that stopped the import, nil when every row went through
}

// ReadImportRows parses an import file. A first row whose first field is "id" is treated as a header.
func ReadImportRows(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var rows []ImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}

		line, _ := reader.FieldPos(0)
		if len(rows) == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
			continue
		}
		if len(record) < 2 || len(record) > 3 {
			return nil, fmt.Errorf("%w: line %d: want id,name[,artist], got %d fields", shared.ErrInvalidInput, line, len(record))
		}

		row := ImportRow{Line: line, ID: strings.TrimSpace(record[0]), Name: strings.TrimSpace(record[1])}
		if len(record) == 3 {
			row.Artist = strings.TrimSpace(record[2])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Import registers every row in order, at most perSecond registrations per second (0 means no limit).
//
// The first failing row stops the import. Songs registered before it stay registered.
func (e *Engine) Import(ctx context.Context, rows []ImportRow, perSecond float64, progress chan<- ProgressUpdate) (*ImportResult, error) {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	limiter := rate.NewLimiter(limit, 1)

	total := len(rows)
	result := &ImportResult{Total: total, Registered: make([]*RegisterResult, 0, total)}
	sendProgress(progress, readImportUpdate(total))

	for i, row := range rows {
		if err := limiter.Wait(ctx); err != nil {
			result.Failed = &rows[i]
			return result, fmt.Errorf("import stopped at line %d: %w", row.Line, err)
		}

		sendProgress(progress, registeringUpdate(i+1, total, row))

		registered, err := e.Register(ctx, row.ID, row.Name, row.Artist)
		if err != nil {
			result.Failed = &rows[i]
			sendProgress(progress, registerFailedUpdate(i+1, total, row, err))
			return result, fmt.Errorf("import stopped at line %d: %w", row.Line, err)
		}

		result.Registered = append(result.Registered, registered)
		sendProgress(progress, registeredUpdate(i+1, total, registered))
	}

	sendProgress(progress, importDoneUpdate(len(result.Registered), total))
	return result, nil
}
