// Package pathcursor scans restricted XPath instance-identifier
// expressions — paths of the form
//
//	/example-module:container/list[key1='keyA'][key2='keyB']/leaf
//
// — into node names, namespace prefixes, and predicate key/value pairs,
// without allocating and without permanently mutating the caller's
// buffer.
//
// # Quick start
//
//	var c pathcursor.Cursor
//	buf := []byte("/example-module:container/list[key1='keyA']/leaf\x00")
//	name, ok := c.NextNode(buf)   // "container", true
//	name, ok = c.NextNode(nil)    // "list", true
//	val, ok := c.NodeKeyValue(nil, "key1") // "keyA", true
//	c.Recover()                   // buf is back to its original bytes
//
// A zero Cursor is immediately usable; no constructor is needed. Pass a
// buffer to seed or reseed a scan; pass nil to continue a scan already
// in progress. Every query method returns either a slice borrowed from
// the caller's buffer or (nil, false) — no method returns an error; the
// package's own internal bugs surface as a panic carrying an [Error].
//
// Every method that returns a non-absent result does so by overwriting
// the byte immediately after the token with NUL and remembering what it
// replaced; the next mutating call on the same Cursor, or a call to
// [Cursor.Recover], restores it. At most one byte of the buffer is ever
// outstanding this way. [Cursor.Recover] leaves the buffer byte-identical
// to what it was before the first call.
//
// [NodeName] and [NodeNameEq] are plain functions, not Cursor methods:
// they never mutate their input and need no cursor.
//
// A Cursor is not safe for concurrent use by multiple goroutines; two
// Cursors bound to different buffers are fully independent.
package pathcursor
