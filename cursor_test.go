package pathcursor

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

const p1 = "/example-module:container/list[key1='keyA'][key2='keyB']/leaf"
const p2 = "/ietf-interfaces:interfaces/interface[name='eth0']/ietf-ip:ipv4/address[ip='192.168.2.100']/prefix-length"

func nulBuf(s string) []byte {
	return append([]byte(s), 0)
}

// requireRecovered asserts that, after Recover, buf is byte-identical to
// the original path expression.
func requireRecovered(t *testing.T, buf []byte, original string) {
	t.Helper()
	assert.Equal(t, nulBuf(original), buf)
}

func TestNextNode(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	name, ok := c.NextNode(buf)
	assert.True(t, ok)
	assert.Equal(t, "container", string(name))

	name, ok = c.NextNode(nil)
	assert.True(t, ok)
	assert.Equal(t, "list", string(name))

	name, ok = c.NextNode(nil)
	assert.True(t, ok)
	assert.Equal(t, "leaf", string(name))

	_, ok = c.NextNode(nil)
	assert.False(t, ok)

	c.Recover()
	requireRecovered(t, buf, p1)
}

func TestNextNodeWithNS(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	name, ok := c.NextNodeWithNS(buf)
	assert.True(t, ok)
	assert.Equal(t, "example-module:container", string(name))

	name, ok = c.NextNodeWithNS(nil)
	assert.True(t, ok)
	assert.Equal(t, "list", string(name))

	name, ok = c.NextNodeWithNS(nil)
	assert.True(t, ok)
	assert.Equal(t, "leaf", string(name))

	c.Recover()
	requireRecovered(t, buf, p1)
}

func TestNextKeyName(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	_, ok := c.NextNode(buf)
	assert.True(t, ok)

	_, ok = c.NextKeyName(nil)
	assert.False(t, ok, "container has no predicates")

	_, ok = c.NextNode(nil)
	assert.True(t, ok, "advance to list")

	key, ok := c.NextKeyName(nil)
	assert.True(t, ok)
	assert.Equal(t, "key1", string(key))

	key, ok = c.NextKeyName(nil)
	assert.True(t, ok)
	assert.Equal(t, "key2", string(key))

	_, ok = c.NextKeyName(nil)
	assert.False(t, ok)

	c.Recover()
	requireRecovered(t, buf, p1)
}

func TestNode(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	name, ok := c.Node(buf, "leaf")
	assert.True(t, ok)
	assert.Equal(t, "leaf", string(name))

	name, ok = c.Node(nil, "container")
	assert.True(t, ok)
	assert.Equal(t, "container", string(name))

	_, ok = c.Node(nil, "unknown")
	assert.False(t, ok, "failed lookup must not disturb cursor state")

	name, ok = c.NextNode(nil)
	assert.True(t, ok, "prior failure did not disturb state")
	assert.Equal(t, "list", string(name))

	c.Recover()
	requireRecovered(t, buf, p1)
}

func TestNodeIdx(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	name, ok := c.NodeIdx(buf, 0)
	assert.True(t, ok)
	assert.Equal(t, "container", string(name))

	_, ok = c.NodeIdx(nil, 100)
	assert.False(t, ok)

	name, ok = c.NodeIdx(nil, 1)
	assert.True(t, ok)
	assert.Equal(t, "list", string(name))

	c.Recover()
	requireRecovered(t, buf, p1)
}

func TestNodeIdxRel(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	name, ok := c.NodeIdxRel(buf, 0)
	assert.True(t, ok)
	assert.Equal(t, "container", string(name))

	name, ok = c.NodeIdxRel(nil, 1)
	assert.True(t, ok)
	assert.Equal(t, "leaf", string(name))

	_, ok = c.NodeIdxRel(nil, 0)
	assert.False(t, ok, "leaf is the last node; nothing comes right after it")

	c.Recover()
	requireRecovered(t, buf, p1)

	_, ok = c.NodeIdxRel(buf, 100)
	assert.False(t, ok)

	name, ok = c.NodeIdxRel(nil, 0)
	assert.True(t, ok, "a failed lookup on a freshly seeded cursor leaves hasNode false, so 0 still means the first node")
	assert.Equal(t, "container", string(name))

	c.Recover()
	requireRecovered(t, buf, p1)
}

func TestKeyValue(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	val, ok := c.KeyValue(buf, "list", "key1")
	assert.True(t, ok)
	assert.Equal(t, "keyA", string(val))

	val, ok = c.KeyValue(nil, "list", "key2")
	assert.True(t, ok)
	assert.Equal(t, "keyB", string(val))

	_, ok = c.KeyValue(nil, "list", "key3")
	assert.False(t, ok)

	c.Recover()
	requireRecovered(t, buf, p1)
}

func TestScenario7(t *testing.T) {
	buf := nulBuf(p2)
	var c Cursor

	name, ok := c.NextNode(buf)
	assert.True(t, ok)
	assert.Equal(t, "interfaces", string(name))

	val, ok := c.KeyValue(nil, "address", "ip")
	assert.True(t, ok)
	assert.Equal(t, "192.168.2.100", string(val))

	name, ok = c.Node(nil, "interface")
	assert.True(t, ok)
	assert.Equal(t, "interface", string(name))

	name, ok = c.NextNodeWithNS(nil)
	assert.True(t, ok)
	assert.Equal(t, "ietf-ip:ipv4", string(name))

	name, ok = c.LastNode(nil)
	assert.True(t, ok)
	assert.Equal(t, "prefix-length", string(name))

	c.Recover()
	requireRecovered(t, buf, p2)
}

func TestNodeNamePure(t *testing.T) {
	assert.Equal(t, "leaf", string(NodeName(nulBuf(p1))))
	assert.Equal(t, "list[k='v']", string(NodeName(nulBuf("/x:c/list[k='v']"))))
	assert.True(t, NodeNameEq(nulBuf(p1), "leaf"))
	assert.False(t, NodeNameEq(nulBuf(p1), "/leaf"))
}

// TestInvariantRestoration covers spec invariant 1: after Recover the
// buffer equals the original byte for byte, for a variety of operation
// sequences.
func TestInvariantRestoration(t *testing.T) {
	paths := []string{p1, p2, "/a/b/c", "/a[k='v']"}
	for _, p := range paths {
		buf := nulBuf(p)
		var c Cursor
		next := buf
		for {
			_, ok := c.NextNode(next)
			next = nil
			if !ok {
				break
			}
			c.NextKeyName(nil)
			c.NextKeyValue(nil)
		}
		c.Recover()
		assert.Equal(t, nulBuf(p), buf, "path %q", p)
	}
}

// TestInvariantBoundedEdit covers spec invariant 2: between calls at
// most one byte differs from the original.
func TestInvariantBoundedEdit(t *testing.T) {
	orig := nulBuf(p1)
	buf := nulBuf(p1)
	var c Cursor

	_, ok := c.NextNode(buf)
	assert.True(t, ok)
	diffs := 0
	for i := range orig {
		if orig[i] != buf[i] {
			diffs++
		}
	}
	assert.LessOrEqual(t, diffs, 1)

	_, ok = c.NextNode(nil)
	assert.True(t, ok)
	diffs = 0
	for i := range orig {
		if orig[i] != buf[i] {
			diffs++
		}
	}
	assert.LessOrEqual(t, diffs, 1)

	c.Recover()
}

// TestInvariantSliceFraming covers spec invariant 3: every non-absent
// result is NUL-terminated at the byte immediately following it.
func TestInvariantSliceFraming(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	name, ok := c.NextNode(buf)
	assert.True(t, ok)
	terminated := name[:len(name)+1] // reslice into the installed NUL, still backed by buf
	assert.Equal(t, byte(0), terminated[len(name)])

	c.Recover()
}

// TestInvariantOrdinalConsistency covers spec invariant 4: node_idx(i)
// and node(name) targeting the same segment yield pointers to the same
// address.
func TestInvariantOrdinalConsistency(t *testing.T) {
	buf := nulBuf(p1)
	var c Cursor

	byIdx, ok := c.NodeIdx(buf, 1)
	assert.True(t, ok)
	byName, ok := c.Node(buf, "list")
	assert.True(t, ok)
	assert.Equal(t, string(byIdx), string(byName))
	assert.Same(t, &byIdx[0], &byName[0])

	c.Recover()
}

// TestInvariantPureOperationsDoNotMutate covers spec invariant 5:
// NodeName and NodeNameEq never mutate their input.
func TestInvariantPureOperationsDoNotMutate(t *testing.T) {
	buf := nulBuf(p1)
	orig := nulBuf(p1)

	NodeName(buf)
	NodeNameEq(buf, "leaf")
	assert.Equal(t, orig, buf)
}
