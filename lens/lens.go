// Package lens is an object model over a live optical design host. It views
// the host's surface list as a sequence of typed surface handles whose
// fields read and write through the connection on every access, so the
// in-memory model is never a stale copy.
//
// Handles identify surfaces by a durable random label rather than by
// position, which keeps them valid across inserts and deletes. Fields can
// hold literal values, optimisation variables or pickup solves tracking
// other fields.
package lens
