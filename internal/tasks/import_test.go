package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/yap/internal/shared"
)

func TestReadImportRows(t *testing.T) {
	t.Run("header and optional artist", func(t *testing.T) {
		rows, err := ReadImportRows(strings.NewReader("id,name,artist\nabc,Song A,Someone\n# skipped\ndef, Song B\n"))
		if err != nil {
			t.Fatalf("ReadImportRows() error = %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows = %+v", rows)
		}
		if rows[0] != (ImportRow{Line: 2, ID: "abc", Name: "Song A", Artist: "Someone"}) {
			t.Errorf("rows[0] = %+v", rows[0])
		}
		if rows[1].ID != "def" || rows[1].Name != "Song B" || rows[1].Artist != "" || rows[1].Line != 4 {
			t.Errorf("rows[1] = %+v", rows[1])
		}
	})

	t.Run("without header", func(t *testing.T) {
		rows, err := ReadImportRows(strings.NewReader("abc,Song A\n"))
		if err != nil || len(rows) != 1 {
			t.Fatalf("rows = %+v, err = %v", rows, err)
		}
	})

	t.Run("bad rows", func(t *testing.T) {
		for _, input := range []string{"abc\n", "a,b,c,d\n", "\"unterminated,x\n"} {
			if _, err := ReadImportRows(strings.NewReader(input)); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("ReadImportRows(%q) error = %v, want ErrInvalidInput", input, err)
			}
		}
	})
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("all rows", func(t *testing.T) {
		f := newFixture(t)
		rows := []ImportRow{{Line: 1, ID: "a", Name: "A"}, {Line: 2, ID: "b", Name: "B", Artist: "X"}}
		progress := make(chan ProgressUpdate, 16)

		result, err := f.engine.Import(ctx, rows, 0, progress)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if len(result.Registered) != 2 || result.Failed != nil {
			t.Errorf("result = %+v", result)
		}
		close(progress)

		var last ProgressUpdate
		count := 0
		for u := range progress {
			last = u
			count++
		}
		if last.Phase != ImportDone || count != 6 {
			t.Errorf("got %d updates ending in %s", count, last.Phase)
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		f := newFixture(t)
		rows := []ImportRow{{Line: 1, ID: "a", Name: "A"}, {Line: 2, ID: "a", Name: "Again"}, {Line: 3, ID: "c", Name: "C"}}

		result, err := f.engine.Import(ctx, rows, 0, nil)
		if !errors.Is(err, shared.ErrDuplicateIdentifier) {
			t.Fatalf("Import() error = %v, want ErrDuplicateIdentifier", err)
		}
		if len(result.Registered) != 1 || result.Failed == nil || result.Failed.Line != 2 {
			t.Errorf("result = %+v", result)
		}
		if _, err := f.songs.Get("c"); !errors.Is(err, shared.ErrNotFound) {
			t.Error("rows after the failure must not be registered")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		result, err := f.engine.Import(cctx, []ImportRow{{Line: 1, ID: "a", Name: "A"}}, 1, nil)
		if err == nil || len(result.Registered) != 0 {
			t.Errorf("Import() = %+v, %v; want cancellation", result, err)
		}
	})
}

func TestSendProgressNeverBlocks(t *testing.T) {
	full := make(chan ProgressUpdate)
	sendProgress(full, importDoneUpdate(0, 0))
	sendProgress(nil, importDoneUpdate(0, 0))
}
