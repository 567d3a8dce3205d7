// Package repositories implements SQLite persistence for the catalog.
//
// Key Implementations:
//   - [SongRepository] : songs keyed by their caller-supplied identifier, looked up by display name
//   - [PlaylistRepository] : playlists keyed by name
//   - [MembershipRepository] : the playlist × song junction table
//
// Repositories hold no business rules. Every lookup returns either a complete row or an error
// wrapping [shared.ErrNotFound]; writes translate SQLite constraint violations into
// [shared.ErrDuplicateIdentifier], [shared.ErrDuplicateMembership] or [shared.ErrCatalogWriteFailed].
//
// Foreign keys must be enabled on the connection (see [shared.NewDatabase]): deleting a playlist
// cascades to its memberships, while deleting a song that is still a member is rejected.
package repositories
