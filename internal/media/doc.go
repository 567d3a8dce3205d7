// Package media owns the on-disk artifacts of the library.
//
// Each song has exactly one audio artifact, "<music dir>/<identifier>.<audio format>", produced by an
// external extractor (yt-dlp by default) and removed when the song is deregistered. The same
// "<identifier>.<audio format>" string is the media reference the playback daemon indexes and queues.
//
// When thumbnails are enabled, [Cache.Fetch] also downloads a cover image keyed by the song's display
// name into a second directory. Thumbnail failures never fail the fetch.
package media
