// Package models defines the catalog entities and the playback views shared by the yap packages.
//
// Catalog entities, persisted by the repositories package:
//   - [Song] : a registered track, keyed by the identifier that also names its media file and queue token
//   - [Playlist] : a named collection, the name doubles as the key
//   - [Membership] : one playlist × song join row
//
// Playback views, read from the daemon and never persisted:
//   - [DaemonStatus] : transport flags and elapsed/total time
//   - [NowPlaying] : the current song joined with its catalog row
//   - [Intent] : explicit on/off or toggle requested for a transport flag
package models
