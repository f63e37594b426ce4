package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysrepo.io/pathcursor"
)

// pathBuf returns a NUL-terminated, mutable copy of s suitable for
// seeding a pathcursor.Cursor. The CLI always works on its own copy —
// cobra's argument strings are not buffers callers expect pathnav to
// mutate in place.
func pathBuf(s string) []byte {
	return append([]byte(s), 0)
}

func newNodeCmd() *cobra.Command {
	var name string
	var idx int
	var rel bool

	cmd := &cobra.Command{
		Use:   "node PATH",
		Short: "find one node by name or index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c pathcursor.Cursor
			buf := pathBuf(args[0])
			var result []byte
			var ok bool
			switch {
			case name != "" && rel:
				result, ok = c.NodeRel(buf, name)
			case name != "":
				result, ok = c.Node(buf, name)
			case rel:
				result, ok = c.NodeIdxRel(buf, idx)
			default:
				result, ok = c.NodeIdx(buf, idx)
			}
			if !ok {
				return fmt.Errorf("no matching node")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(result))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "node name to search for")
	cmd.Flags().IntVar(&idx, "idx", 0, "node ordinal to search for")
	cmd.Flags().BoolVar(&rel, "rel", false, "use the relative lookup; each run starts a fresh scan, so it begins at the first node")
	return cmd
}

func newNodesCmd() *cobra.Command {
	withNS := false
	cmd := &cobra.Command{
		Use:   "nodes PATH",
		Short: "list every node name in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c pathcursor.Cursor
			buf := pathBuf(args[0])
			first := true
			for {
				var name []byte
				var ok bool
				if withNS {
					name, ok = c.NextNodeWithNS(bufOrNil(buf, &first))
				} else {
					name, ok = c.NextNode(bufOrNil(buf, &first))
				}
				if !ok {
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(name))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withNS, "ns", false, "include namespace prefixes")
	return cmd
}

// bufOrNil returns buf the first time it's called for a given scan, and
// nil (the "continue" sentinel) thereafter, flipping *first to false.
func bufOrNil(buf []byte, first *bool) []byte {
	if !*first {
		return nil
	}
	*first = false
	return buf
}

func newKeyCmd() *cobra.Command {
	var node, key string
	var nodeIdx, keyIdx int
	byIdx := false

	cmd := &cobra.Command{
		Use:   "key PATH",
		Short: "look up one predicate value across the whole path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c pathcursor.Cursor
			buf := pathBuf(args[0])
			var val []byte
			var ok bool
			if byIdx {
				val, ok = c.KeyValueIdx(buf, nodeIdx, keyIdx)
			} else {
				val, ok = c.KeyValue(buf, node, key)
			}
			if !ok {
				return fmt.Errorf("no matching key")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(val))
			return nil
		},
	}
	cmd.Flags().StringVar(&node, "node", "", "node name")
	cmd.Flags().StringVar(&key, "key", "", "key name")
	cmd.Flags().IntVar(&nodeIdx, "node-idx", 0, "node ordinal, used with --by-idx")
	cmd.Flags().IntVar(&keyIdx, "key-idx", 0, "key ordinal, used with --by-idx")
	cmd.Flags().BoolVar(&byIdx, "by-idx", false, "select node/key by ordinal instead of by name")
	return cmd
}

func newKeysCmd() *cobra.Command {
	var node string
	cmd := &cobra.Command{
		Use:   "keys PATH",
		Short: "list every key/value pair of one node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c pathcursor.Cursor
			buf := pathBuf(args[0])
			if _, ok := c.Node(buf, node); !ok {
				return fmt.Errorf("no such node %q", node)
			}
			for i := 0; ; i++ {
				key, ok := c.NextKeyName(nil)
				if !ok {
					break
				}
				val, ok := c.NodeKeyValueIdx(nil, i)
				if !ok {
					break
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", string(key), string(val))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&node, "node", "", "node name")
	return cmd
}

func newLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last PATH",
		Short: "print the path's final node name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c pathcursor.Cursor
			name, ok := c.LastNode(pathBuf(args[0]))
			if !ok {
				return fmt.Errorf("empty path")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(name))
			return nil
		},
	}
}

func newEqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eq PATH CANDIDATE",
		Short: "report whether PATH's final bare node name equals CANDIDATE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eq := pathcursor.NodeNameEq(pathBuf(args[0]), args[1])
			fmt.Fprintln(cmd.OutOrStdout(), eq)
			return nil
		},
	}
}
