package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

const songColumns = `id, name, artist, created_at`

// SongRepository persists [models.Song] rows.
//
// The song identifier is supplied by the caller and must be unique; display names are not
// constrained, and a lookup by name returns the earliest registered match.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a song. A taken identifier yields [shared.ErrDuplicateIdentifier].
func (r *SongRepository) Create(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(
		`INSERT INTO songs (id, name, artist, created_at) VALUES (?, ?, ?, ?)`,
		song.ID, song.Name, nullable(song.Artist), song.CreatedAt,
	)
	return classify(err, shared.ErrDuplicateIdentifier, shared.ErrCatalogWriteFailed, "song "+song.ID)
}

// Get retrieves a song by identifier
func (r *SongRepository) Get(id string) (*models.Song, error) {
	row := r.db.QueryRow(`SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	song, err := scanSong(row)
	if err != nil {
		return nil, notFound(err, "song "+id)
	}
	return song, nil
}

// GetByName retrieves the first song registered under name
func (r *SongRepository) GetByName(name string) (*models.Song, error) {
	row := r.db.QueryRow(`SELECT `+songColumns+` FROM songs WHERE name = ? ORDER BY rowid LIMIT 1`, name)
	song, err := scanSong(row)
	if err != nil {
		return nil, notFound(err, "song "+name)
	}
	return song, nil
}

// Delete removes a song row.
//
// A song that still belongs to a playlist is rejected with [shared.ErrCatalogDeleteFailed].
func (r *SongRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return classify(err, nil, shared.ErrCatalogDeleteFailed, "song "+id)
	}
	return affected(result, "song "+id)
}

// List retrieves all songs in registration order
func (r *SongRepository) List() ([]*models.Song, error) {
	rows, err := r.db.Query(`SELECT ` + songColumns + ` FROM songs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanSong(s scanner) (*models.Song, error) {
	var (
		song   models.Song
		artist sql.NullString
	)

	if err := s.Scan(&song.ID, &song.Name, &artist, &song.CreatedAt); err != nil {
		return nil, err
	}
	song.Artist = artist.String
	return &song, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
