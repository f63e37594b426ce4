package pathcursor

import "sysrepo.io/pathcursor/internal/trace"

// Cursor scans a NUL-terminated path expression of the form
//
//	'/' Segment ( '/' Segment )*
//	Segment := [ Namespace ':' ] NodeName ( '[' KeyName "='" KeyValue "']" )*
//
// in place, over a caller-owned byte buffer. It borrows the buffer rather
// than copying out of it: every returned slice points directly into buf,
// terminated by a NUL the cursor installs at the delimiter immediately
// following the token. At most one such installed byte is ever
// outstanding; it is restored before the next mutating call and by
// Recover.
//
// The zero value is a ready-to-use, unseeded cursor. A buffer is bound to
// it by passing it (non-nil) to any method; passing nil thereafter means
// "continue from where the cursor left off." Calling a method with nil
// before any buffer has been bound returns the zero value and false.
//
// A Cursor is not safe for concurrent use. Two Cursors over different
// buffers are fully independent.
type Cursor struct {
	buf             []byte
	pos             int
	seeded          bool
	predRegionStart int

	hasReplacement bool
	replacedAt     int
	replacedByte   byte

	hasNode   bool
	nodeIndex int

	keyNameCalls  int
	keyValueCalls int
}

func atEnd(buf []byte, p int) bool {
	return p >= len(buf) || buf[p] == 0
}

// restore undoes any outstanding one-byte overwrite. Every exported
// method calls this before doing anything else, so invariant 2 (at most
// one outstanding edit) holds on entry to every call.
func (c *Cursor) restore() {
	if !c.hasReplacement {
		return
	}
	if c.replacedAt < 0 || c.replacedAt >= len(c.buf) {
		panic(newInvariantError("replacedAt out of buffer bounds"))
	}
	c.buf[c.replacedAt] = c.replacedByte
	c.hasReplacement = false
}

func (c *Cursor) commitReplacement(at int) {
	if c.hasReplacement {
		panic(newInvariantError("commitReplacement called with an outstanding edit"))
	}
	c.replacedByte = c.buf[at]
	c.buf[at] = 0
	c.replacedAt = at
	c.hasReplacement = true
}

// prepareContinuation restores any outstanding edit and, if buf is
// non-nil, rebinds the cursor to it from byte zero. It reports whether
// the cursor is now seeded (false only when buf is nil and no prior
// buffer was ever bound).
func (c *Cursor) prepareContinuation(buf []byte) bool {
	c.restore()
	if buf != nil {
		c.buf = buf
		c.seeded = true
		c.pos = 0
		c.predRegionStart = 0
		c.hasNode = false
		c.nodeIndex = 0
		c.keyNameCalls = 0
		c.keyValueCalls = 0
	}
	return c.seeded
}

// skipPredicates advances p past zero or more well-formed
// "[key='value']" clauses starting at p, stopping at the first byte that
// isn't '[' (or at end of buffer, or on malformed input it can't make
// sense of).
func (c *Cursor) skipPredicates(p int) int {
	for !atEnd(c.buf, p) && c.buf[p] == '[' {
		p++
		for !atEnd(c.buf, p) && c.buf[p] != '=' {
			p++
		}
		if atEnd(c.buf, p) {
			return p
		}
		p++ // '='
		if atEnd(c.buf, p) || c.buf[p] != '\'' {
			return p
		}
		p++ // opening quote
		for !atEnd(c.buf, p) && c.buf[p] != '\'' {
			p++
		}
		if atEnd(c.buf, p) {
			return p
		}
		p++ // closing quote
		if atEnd(c.buf, p) || c.buf[p] != ']' {
			return p
		}
		p++
	}
	return p
}

// nodeSeg describes one segment found while walking the buffer.
// nameStart is the bare-name start (past any "namespace:" prefix);
// rawNameStart is the start including the namespace, if any.
type nodeSeg struct {
	ordinal      int
	start        int
	rawNameStart int
	nameStart    int
	delim        int
}

// walkNodesFrom walks every segment starting at byte startByte (which
// must point at a '/', or at the end of the buffer), numbering the
// first one startOrdinal, calling fn for each in order. fn returns false
// to stop the walk early.
func (c *Cursor) walkNodesFrom(startByte, startOrdinal int, fn func(nodeSeg) bool) {
	p := startByte
	ordinal := startOrdinal
	for !atEnd(c.buf, p) {
		if c.buf[p] != '/' {
			return
		}
		start := p
		p++
		rawNameStart := p
		colon := -1
		for !atEnd(c.buf, p) && c.buf[p] != '/' && c.buf[p] != '[' {
			if c.buf[p] == ':' && colon == -1 {
				colon = p
			}
			p++
		}
		delim := p
		bare := rawNameStart
		if colon >= 0 {
			bare = colon + 1
		}
		seg := nodeSeg{ordinal: ordinal, start: start, rawNameStart: rawNameStart, nameStart: bare, delim: delim}
		if !fn(seg) {
			return
		}
		p = c.skipPredicates(delim)
		ordinal++
	}
}

// forEachNode walks every segment of the buffer from byte zero, in
// order, calling fn for each. fn returns false to stop the walk early.
func (c *Cursor) forEachNode(fn func(nodeSeg) bool) {
	c.walkNodesFrom(0, 0, fn)
}

// predicateClause describes one "[key='value']" clause found while
// walking a node's predicate region. keyEnd is the index of the '=';
// valEnd is the index of the closing quote — both are the byte each
// corresponding query overwrites with NUL to terminate its result.
type predicateClause struct {
	ordinal  int
	keyStart, keyEnd int
	valStart, valEnd int
}

func (c *Cursor) forEachPredicate(start int, fn func(predicateClause) bool) {
	p := start
	ordinal := 0
	for !atEnd(c.buf, p) && c.buf[p] == '[' {
		p++
		keyStart := p
		for !atEnd(c.buf, p) && c.buf[p] != '=' {
			p++
		}
		keyEnd := p
		if atEnd(c.buf, p) {
			return
		}
		p++ // '='
		if atEnd(c.buf, p) || c.buf[p] != '\'' {
			return
		}
		p++ // opening quote
		valStart := p
		for !atEnd(c.buf, p) && c.buf[p] != '\'' {
			p++
		}
		valEnd := p
		if atEnd(c.buf, p) {
			return
		}
		clause := predicateClause{ordinal: ordinal, keyStart: keyStart, keyEnd: keyEnd, valStart: valStart, valEnd: valEnd}
		if !fn(clause) {
			return
		}
		p++ // closing quote
		if atEnd(c.buf, p) || c.buf[p] != ']' {
			return
		}
		p++
		ordinal++
	}
}

func (c *Cursor) commitNode(seg nodeSeg, withNS bool) []byte {
	start := seg.nameStart
	if withNS {
		start = seg.rawNameStart
	}
	c.commitReplacement(seg.delim)
	c.pos = seg.delim
	c.predRegionStart = seg.delim
	c.hasNode = true
	c.nodeIndex = seg.ordinal
	c.keyNameCalls = 0
	c.keyValueCalls = 0
	return c.buf[start:seg.delim]
}

func (c *Cursor) nextNode(buf []byte, withNS bool) ([]byte, bool) {
	trace.Entry("NextNode")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	startByte := c.skipPredicates(c.pos)
	startOrdinal := 0
	if c.hasNode {
		startOrdinal = c.nodeIndex + 1
	}
	var match nodeSeg
	found := false
	c.walkNodesFrom(startByte, startOrdinal, func(seg nodeSeg) bool {
		match = seg
		found = true
		return false
	})
	if !found {
		return nil, false
	}
	return c.commitNode(match, withNS), true
}

// NextNode advances to the next NodeName, discarding any namespace
// prefix from the returned slice. Pass buf to start a scan, or nil to
// continue from the cursor's current position.
func (c *Cursor) NextNode(buf []byte) ([]byte, bool) {
	return c.nextNode(buf, false)
}

// NextNodeWithNS is NextNode, except the returned slice includes the
// "namespace:" prefix, if present.
func (c *Cursor) NextNodeWithNS(buf []byte) ([]byte, bool) {
	return c.nextNode(buf, true)
}

// NextKeyName returns the key name of the next predicate clause attached
// to the most recently returned node, independent of NextKeyValue's own
// position. Returns absent once the current node's predicate list is
// exhausted, or if no node has yet been returned.
func (c *Cursor) NextKeyName(buf []byte) ([]byte, bool) {
	trace.Entry("NextKeyName")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	if !c.hasNode {
		return nil, false
	}
	target := c.keyNameCalls
	var found predicateClause
	ok := false
	c.forEachPredicate(c.predRegionStart, func(cl predicateClause) bool {
		if cl.ordinal == target {
			found = cl
			ok = true
			return false
		}
		return true
	})
	if !ok {
		return nil, false
	}
	c.keyNameCalls++
	c.commitReplacement(found.keyEnd)
	return c.buf[found.keyStart:found.keyEnd], true
}

// NextKeyValue returns the key value of the next predicate clause
// attached to the most recently returned node, independent of
// NextKeyName's own position.
func (c *Cursor) NextKeyValue(buf []byte) ([]byte, bool) {
	trace.Entry("NextKeyValue")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	if !c.hasNode {
		return nil, false
	}
	target := c.keyValueCalls
	var found predicateClause
	ok := false
	c.forEachPredicate(c.predRegionStart, func(cl predicateClause) bool {
		if cl.ordinal == target {
			found = cl
			ok = true
			return false
		}
		return true
	})
	if !ok {
		return nil, false
	}
	c.keyValueCalls++
	c.commitReplacement(found.valEnd)
	return c.buf[found.valStart:found.valEnd], true
}

// Node finds the first node in the expression whose bare name equals
// name, searching from segment zero regardless of the cursor's current
// position. A failed search leaves the cursor untouched.
func (c *Cursor) Node(buf []byte, name string) ([]byte, bool) {
	trace.Entry("Node")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	var match nodeSeg
	found := false
	c.forEachNode(func(seg nodeSeg) bool {
		if string(c.buf[seg.nameStart:seg.delim]) == name {
			match = seg
			found = true
			return false
		}
		return true
	})
	if !found {
		return nil, false
	}
	return c.commitNode(match, false), true
}

// NodeRel is Node, except the search begins at the cursor's current
// position and proceeds forward only.
func (c *Cursor) NodeRel(buf []byte, name string) ([]byte, bool) {
	trace.Entry("NodeRel")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	base := c.pos
	var match nodeSeg
	found := false
	c.forEachNode(func(seg nodeSeg) bool {
		if seg.start < base {
			return true
		}
		if string(c.buf[seg.nameStart:seg.delim]) == name {
			match = seg
			found = true
			return false
		}
		return true
	})
	if !found {
		return nil, false
	}
	return c.commitNode(match, false), true
}

// NodeIdx returns the idx-th node counting from zero at the root.
func (c *Cursor) NodeIdx(buf []byte, idx int) ([]byte, bool) {
	trace.Entry("NodeIdx")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	if idx < 0 {
		return nil, false
	}
	var match nodeSeg
	found := false
	c.forEachNode(func(seg nodeSeg) bool {
		if seg.ordinal == idx {
			match = seg
			found = true
			return false
		}
		return seg.ordinal < idx
	})
	if !found {
		return nil, false
	}
	return c.commitNode(match, false), true
}

// NodeIdxRel returns the n-th node forward from the current position. 0
// means the node right after the current one when one has been
// yielded, or the first node on a freshly seeded cursor.
func (c *Cursor) NodeIdxRel(buf []byte, n int) ([]byte, bool) {
	trace.Entry("NodeIdxRel")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	target := n
	if c.hasNode {
		target += c.nodeIndex + 1
	}
	if target < 0 {
		return nil, false
	}
	var match nodeSeg
	found := false
	c.forEachNode(func(seg nodeSeg) bool {
		if seg.ordinal == target {
			match = seg
			found = true
			return false
		}
		return seg.ordinal < target
	})
	if !found {
		return nil, false
	}
	return c.commitNode(match, false), true
}

// NodeKeyValue returns the value of keyName within the most recently
// returned node's predicate list. It does not advance the node cursor.
func (c *Cursor) NodeKeyValue(buf []byte, keyName string) ([]byte, bool) {
	trace.Entry("NodeKeyValue")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	if !c.hasNode {
		return nil, false
	}
	var found predicateClause
	ok := false
	c.forEachPredicate(c.predRegionStart, func(cl predicateClause) bool {
		if string(c.buf[cl.keyStart:cl.keyEnd]) == keyName {
			found = cl
			ok = true
			return false
		}
		return true
	})
	if !ok {
		return nil, false
	}
	c.commitReplacement(found.valEnd)
	return c.buf[found.valStart:found.valEnd], true
}

// NodeKeyValueIdx returns the value of the idx-th predicate (zero-based)
// of the most recently returned node.
func (c *Cursor) NodeKeyValueIdx(buf []byte, idx int) ([]byte, bool) {
	trace.Entry("NodeKeyValueIdx")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	if !c.hasNode || idx < 0 {
		return nil, false
	}
	var found predicateClause
	ok := false
	c.forEachPredicate(c.predRegionStart, func(cl predicateClause) bool {
		if cl.ordinal == idx {
			found = cl
			ok = true
			return false
		}
		return cl.ordinal < idx
	})
	if !ok {
		return nil, false
	}
	c.commitReplacement(found.valEnd)
	return c.buf[found.valStart:found.valEnd], true
}

// KeyValue locates the first node named nodeName, then returns the
// value of keyName within its predicates. It leaves the cursor's node
// position untouched, and mutates nothing unless both lookups succeed.
func (c *Cursor) KeyValue(buf []byte, nodeName, keyName string) ([]byte, bool) {
	trace.Entry("KeyValue")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	var nodeDelim int
	foundNode := false
	c.forEachNode(func(seg nodeSeg) bool {
		if string(c.buf[seg.nameStart:seg.delim]) == nodeName {
			nodeDelim = seg.delim
			foundNode = true
			return false
		}
		return true
	})
	if !foundNode {
		return nil, false
	}
	var found predicateClause
	ok := false
	c.forEachPredicate(nodeDelim, func(cl predicateClause) bool {
		if string(c.buf[cl.keyStart:cl.keyEnd]) == keyName {
			found = cl
			ok = true
			return false
		}
		return true
	})
	if !ok {
		return nil, false
	}
	c.commitReplacement(found.valEnd)
	return c.buf[found.valStart:found.valEnd], true
}

// KeyValueIdx is KeyValue, selecting the nodeIdx-th node's keyIdx-th
// predicate by ordinal instead of by name.
func (c *Cursor) KeyValueIdx(buf []byte, nodeIdx, keyIdx int) ([]byte, bool) {
	trace.Entry("KeyValueIdx")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	if nodeIdx < 0 || keyIdx < 0 {
		return nil, false
	}
	var nodeDelim int
	foundNode := false
	c.forEachNode(func(seg nodeSeg) bool {
		if seg.ordinal == nodeIdx {
			nodeDelim = seg.delim
			foundNode = true
			return false
		}
		return seg.ordinal < nodeIdx
	})
	if !foundNode {
		return nil, false
	}
	var found predicateClause
	ok := false
	c.forEachPredicate(nodeDelim, func(cl predicateClause) bool {
		if cl.ordinal == keyIdx {
			found = cl
			ok = true
			return false
		}
		return cl.ordinal < keyIdx
	})
	if !ok {
		return nil, false
	}
	c.commitReplacement(found.valEnd)
	return c.buf[found.valStart:found.valEnd], true
}

// LastNode returns the bare name of the expression's final segment.
// Repeated calls are idempotent and never advance the cursor's forward
// scan.
func (c *Cursor) LastNode(buf []byte) ([]byte, bool) {
	trace.Entry("LastNode")
	if !c.prepareContinuation(buf) {
		return nil, false
	}
	var last nodeSeg
	found := false
	c.forEachNode(func(seg nodeSeg) bool {
		last = seg
		found = true
		return true
	})
	if !found {
		return nil, false
	}
	c.commitReplacement(last.delim)
	return c.buf[last.nameStart:last.delim], true
}

// Recover restores any outstanding overwritten byte and resets the
// cursor to its zero value. After Recover, the buffer is byte-identical
// to its original contents.
func (c *Cursor) Recover() {
	trace.Entry("Recover")
	c.restore()
	*c = Cursor{}
}
