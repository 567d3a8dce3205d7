package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

// PlaylistRepository persists [models.Playlist] rows keyed by name.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist; a taken name yields [shared.ErrDuplicateIdentifier]
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	playlist.Name = strings.TrimSpace(playlist.Name)
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`INSERT INTO playlists (name, created_at) VALUES (?, ?)`, playlist.Name, playlist.CreatedAt)
	return classify(err, shared.ErrDuplicateIdentifier, shared.ErrCatalogWriteFailed, "playlist "+playlist.Name)
}

// Get retrieves a playlist by name
func (r *PlaylistRepository) Get(name string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.QueryRow(`SELECT name, created_at FROM playlists WHERE name = ?`, name).
		Scan(&playlist.Name, &playlist.CreatedAt)
	if err != nil {
		return nil, notFound(err, "playlist "+name)
	}
	return &playlist, nil
}

// Delete removes a playlist; its memberships go with it through ON DELETE CASCADE
func (r *PlaylistRepository) Delete(name string) error {
	result, err := r.db.Exec(`DELETE FROM playlists WHERE name = ?`, name)
	if err != nil {
		return classify(err, nil, shared.ErrCatalogDeleteFailed, "playlist "+name)
	}
	return affected(result, "playlist "+name)
}

// List retrieves all playlists in creation order
func (r *PlaylistRepository) List() ([]*models.Playlist, error) {
	rows, err := r.db.Query(`SELECT name, created_at FROM playlists ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.Name, &playlist.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, &playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}
