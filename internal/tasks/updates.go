package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ReadImport Phase = iota
	RegisterSong
	ImportDone
)

func (p Phase) String() string {
	switch p {
	case ReadImport:
		return "read_import"
	case RegisterSong:
		return "register_song"
	case ImportDone:
		return "import_done"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func readImportUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadImport,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Importing %d songs...", total),
	}
}

func registeringUpdate(step, total int, row ImportRow) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RegisterSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Downloading: %s...", step, total, row.Name),
		Data:    row,
	}
}

func registeredUpdate(step, total int, result *RegisterResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RegisterSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, result.Song.Name),
		Data:    result,
	}
}

func registerFailedUpdate(step, total int, row ImportRow, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RegisterSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, row.Name, err),
	}
}

func importDoneUpdate(registered, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportDone,
		Step:    registered,
		Total:   total,
		Message: fmt.Sprintf("Imported %d of %d songs", registered, total),
	}
}
