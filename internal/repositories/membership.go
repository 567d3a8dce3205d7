package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/yap/internal/models"
	"github.com/desertthunder/yap/internal/shared"
)

// MembershipRepository manages the playlist_songs junction table.
//
// Rows carry no ordinal. Enumeration follows insertion order (rowid), which is the order
// songs were added to the playlist.
type MembershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new MembershipRepository with the given database connection
func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Add inserts a membership row.
//
// The pair is not pre-checked: the primary key rejects repeats with [shared.ErrDuplicateMembership],
// and a missing parent row surfaces as [shared.ErrCatalogWriteFailed].
func (r *MembershipRepository) Add(playlistName, songID string) error {
	_, err := r.db.Exec(
		`INSERT INTO playlist_songs (playlist_name, song_id, created_at) VALUES (?, ?, ?)`,
		playlistName, songID, time.Now().UTC(),
	)
	return classify(err, shared.ErrDuplicateMembership, shared.ErrCatalogWriteFailed,
		fmt.Sprintf("song %s in playlist %s", songID, playlistName))
}

// Remove deletes exactly one membership row, or returns [shared.ErrNotFound]
func (r *MembershipRepository) Remove(playlistName, songID string) error {
	subject := fmt.Sprintf("song %s in playlist %s", songID, playlistName)

	result, err := r.db.Exec(`DELETE FROM playlist_songs WHERE playlist_name = ? AND song_id = ?`, playlistName, songID)
	if err != nil {
		return classify(err, nil, shared.ErrCatalogDeleteFailed, subject)
	}
	return affected(result, subject)
}

// ListByPlaylist returns the memberships of a playlist in insertion order
func (r *MembershipRepository) ListByPlaylist(playlistName string) ([]*models.Membership, error) {
	rows, err := r.db.Query(
		`SELECT playlist_name, song_id, created_at FROM playlist_songs WHERE playlist_name = ? ORDER BY rowid`,
		playlistName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.PlaylistName, &m.SongID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return memberships, nil
}

// ListSongs joins the memberships of a playlist with their song rows, in insertion order
func (r *MembershipRepository) ListSongs(playlistName string) ([]*models.Song, error) {
	rows, err := r.db.Query(`
		SELECT s.id, s.name, s.artist, s.created_at
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_name = ?
		ORDER BY ps.rowid
	`, playlistName)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist songs: %w", err)
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
