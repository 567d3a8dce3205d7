// package tasks implements the user-facing operations of yap.
//
// The core abstraction is Engine, which coordinates three stores that cannot see or roll back one another:
// the SQLite catalog, the media cache on disk and the MPD queue. Each operation fixes the order in which
// the stores are touched and which failures stop the sequence. Nothing is compensated: a step that
// succeeded before a later failure stays applied, and the first failure is the one reported.
//
// The song identifier is the one key shared by all three stores. It is the catalog primary key, the
// artifact file name stem and, with the audio extension appended, the daemon's queue token.
//
// Engine holds no state between calls. Operations that talk to the daemon dial one connection when
// they first need it and close it before returning.
package tasks
