package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/yap/internal/media"
	"github.com/desertthunder/yap/internal/shared"
)

// FakeMedia is an in-memory media cache keyed by identifier.
type FakeMedia struct {
	Format     string
	Artifacts  map[string]bool
	Thumbnails map[string]bool

	FetchErr     error
	DeleteErr    error
	ThumbnailErr error
}

func NewFakeMedia() *FakeMedia {
	return &FakeMedia{Format: "opus", Artifacts: map[string]bool{}, Thumbnails: map[string]bool{}}
}

func (m *FakeMedia) MediaRef(id string) string { return id + "." + m.Format }

func (m *FakeMedia) IdentifierOf(ref string) string {
	return strings.TrimSuffix(filepath.Base(ref), "."+m.Format)
}

func (m *FakeMedia) Fetch(ctx context.Context, id, name string) (*media.FetchResult, error) {
	if m.FetchErr != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrArtifactFetchFailed, m.FetchErr)
	}
	m.Artifacts[id] = true

	result := &media.FetchResult{Path: filepath.Join("/music", m.MediaRef(id))}
	if m.ThumbnailErr != nil {
		result.ThumbnailErr = m.ThumbnailErr
	} else {
		m.Thumbnails[name] = true
		result.ThumbnailPath = filepath.Join("/covers", name+".jpg")
	}
	return result, nil
}

func (m *FakeMedia) Delete(id string) error {
	if m.DeleteErr != nil {
		return fmt.Errorf("%w: %v", shared.ErrArtifactDeleteFailed, m.DeleteErr)
	}
	if !m.Artifacts[id] {
		return fmt.Errorf("%w: %s: no such file", shared.ErrArtifactDeleteFailed, id)
	}
	delete(m.Artifacts, id)
	return nil
}

func (m *FakeMedia) DeleteThumbnail(name string) error {
	delete(m.Thumbnails, name)
	return nil
}
