package pathcursor

import (
	"bytes"
	"strings"
)

func terminatorIndex(path []byte) int {
	for i, b := range path {
		if b == 0 {
			return i
		}
	}
	return len(path)
}

func lastSlash(path []byte, end int) int {
	for i := end - 1; i >= 0; i-- {
		if path[i] == '/' {
			return i
		}
	}
	return -1
}

// NodeName returns the final segment of path, including any predicate
// suffix, without mutating path or taking a Cursor. The returned slice
// ends at path's NUL terminator (or at len(path) if it has none).
func NodeName(path []byte) []byte {
	end := terminatorIndex(path)
	slash := lastSlash(path, end)
	if slash < 0 {
		return path[:end]
	}
	return path[slash+1 : end]
}

// NodeNameEq reports whether path's final segment, with any namespace
// prefix and predicate suffix stripped, is byte-equal to candidate. A
// candidate beginning with '/' always fails.
func NodeNameEq(path []byte, candidate string) bool {
	if strings.HasPrefix(candidate, "/") {
		return false
	}
	name := NodeName(path)
	if i := bytes.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := bytes.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	return string(name) == candidate
}
