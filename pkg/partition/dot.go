package partition

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT digraph that chains the partitions in
// enumeration order, one node per partition, edges following each
// transition.
//
// If limit > 0, at most limit partitions are drawn and a trailing ellipsis
// node marks the truncation. If limit <= 0, every partition is drawn.
func (p *Partitioner) ToDOT(limit int) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Partitions {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")
	fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n\n", p.String())

	n := 0
	c := p.Cursor()
	for c.Next() {
		if limit > 0 && n == limit {
			fmt.Fprintf(&buf, "  more [label=\"…\", shape=plaintext, style=\"\"];\n")
			fmt.Fprintf(&buf, "  n%d -> more;\n", n-1)
			break
		}
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", n, FormatSum(c.Partition().Slice()))
		if n > 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n-1, n)
		}
		n++
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the ToDOT output as an SVG document.
//
// All errors are wrapped with context using fmt.Errorf with %w.
func (p *Partitioner) RenderSVG(ctx context.Context, limit int) ([]byte, error) {
	dot := p.ToDOT(limit)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
