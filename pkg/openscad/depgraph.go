package openscad

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-graphviz"
)

// DOT converts the graph to Graphviz DOT format. Node labels are paths
// relative to the root script's directory. Include edges are drawn solid,
// use edges dashed, unresolved files in grey.
func (g *DepGraph) DOT() string {
	base := filepath.Dir(g.Root)
	label := func(p string) string {
		if rel, err := filepath.Rel(base, p); err == nil {
			return rel
		}
		return p
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, f := range g.Files {
		attrs := fmt.Sprintf("label=%q", label(f))
		if f == g.Root {
			attrs += ", penwidth=2"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", f, attrs)
	}
	for _, f := range g.Missing() {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightgrey, style=\"rounded,filled,dashed\"];\n", f, label(f))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Include {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
