package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sysrepo.io/pathcursor"
)

// batchQuery is one line of a batch file: a path expression plus the
// query to run against it and whatever arguments that query needs.
type batchQuery struct {
	Path    string `yaml:"path"`
	Op      string `yaml:"op"`
	Node    string `yaml:"node,omitempty"`
	Key     string `yaml:"key,omitempty"`
	NodeIdx int    `yaml:"node_idx,omitempty"`
	KeyIdx  int    `yaml:"key_idx,omitempty"`
	Name    string `yaml:"name,omitempty"`
}

type batchFile struct {
	Queries []batchQuery `yaml:"queries"`
}

// batchResult is what running one batchQuery produces; it's also the
// shape internal/pathnavtest diffs batch output against.
type batchResult struct {
	Path  string `yaml:"path"`
	Op    string `yaml:"op"`
	Value string `yaml:"value,omitempty"`
	Found bool   `yaml:"found"`
}

func runBatch(q batchQuery) batchResult {
	result := batchResult{Path: q.Path, Op: q.Op}
	var c pathcursor.Cursor
	buf := pathBuf(q.Path)

	switch q.Op {
	case "last_node":
		v, ok := c.LastNode(buf)
		result.Value, result.Found = string(v), ok
	case "node":
		v, ok := c.Node(buf, q.Node)
		result.Value, result.Found = string(v), ok
	case "node_idx":
		v, ok := c.NodeIdx(buf, q.NodeIdx)
		result.Value, result.Found = string(v), ok
	case "key_value":
		v, ok := c.KeyValue(buf, q.Node, q.Key)
		result.Value, result.Found = string(v), ok
	case "key_value_idx":
		v, ok := c.KeyValueIdx(buf, q.NodeIdx, q.KeyIdx)
		result.Value, result.Found = string(v), ok
	case "node_name_eq":
		result.Found = pathcursor.NodeNameEq(buf, q.Name)
		result.Value = fmt.Sprintf("%v", result.Found)
	default:
		result.Value = fmt.Sprintf("unknown op %q", q.Op)
	}
	return result
}

func newBatchCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "run a batch of queries described in a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("-f is required")
			}
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var bf batchFile
			if err := yaml.Unmarshal(raw, &bf); err != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}
			out := make([]batchResult, 0, len(bf.Queries))
			for _, q := range bf.Queries {
				out = append(out, runBatch(q))
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file listing queries to run")
	return cmd
}
