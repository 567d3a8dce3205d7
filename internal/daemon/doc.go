// Package daemon drives an MPD server through github.com/fhs/gompd.
//
// The adapter never holds a session: [Client.Connect] dials a fresh connection that the caller closes
// when its command is done. Queue entries and the current song are reported as media references
// ("<identifier>.<format>"), exactly as MPD indexes them under its music directory.
package daemon
