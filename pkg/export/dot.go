// Package export renders the topology of a road network: cities as nodes
// and roads as edges between the cities that hold them on a port.
//
// Roads not held by any city at one or both ends get a small point node per
// free end, so every road appears exactly once as an edge. [ToDOT] produces
// Graphviz DOT text and [RenderSVG] lays it out with Graphviz.
package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/network"
)

// Supported output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidateFormat checks that format is "dot" or "svg".
func ValidateFormat(format string) error {
	switch format {
	case FormatDOT, FormatSVG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", format)
}

// Options configures DOT output.
type Options struct {
	// Detailed labels edges with road length and endpoints.
	Detailed bool
}

// Render produces the network topology in the given format.
func Render(ctx context.Context, net *network.Network, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	dot := ToDOT(net, Options{Detailed: true})
	if format == FormatDOT {
		return []byte(dot), nil
	}
	return RenderSVG(ctx, dot)
}

// ToDOT converts the network topology to an undirected Graphviz graph.
func ToDOT(net *network.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i, c := range net.Cities {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", cityID(i), c.Point.String())
	}

	buf.WriteString("\n")
	for i, r := range net.Roads {
		ends := [2]string{}
		for j, c := range net.Cities {
			for _, d := range c.OccupiedPorts() {
				if port, _ := c.Port(d); port.Equal(r) {
					if r.Start() == c.Point.Step(d) && ends[0] == "" {
						ends[0] = cityID(j)
					} else {
						ends[1] = cityID(j)
					}
				}
			}
		}
		for k, e := range ends {
			if e == "" {
				ends[k] = fmt.Sprintf("r%d_%d", i, k)
				fmt.Fprintf(&buf, "  %q [shape=point, width=0.08];\n", ends[k])
			}
		}

		attrs := []string{}
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", strconv.Itoa(r.Len())))
			attrs = append(attrs, fmt.Sprintf("tooltip=%q", r.String()))
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", ends[0], ends[1], strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -- %q;\n", ends[0], ends[1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func cityID(i int) string { return fmt.Sprintf("c%d", i) }

// RenderSVG lays out DOT text with Graphviz and returns SVG.
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg header with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
