package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/roadnet/pkg/geom"
	"github.com/matzehuels/roadnet/pkg/network"
	"github.com/matzehuels/roadnet/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleCity = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints network statistics on a single line.
func printStats(stats pipeline.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d boxes", stats.Boxes),
		fmt.Sprintf("%d roads", stats.Roads),
		fmt.Sprintf("%d cities", stats.Cities),
		fmt.Sprintf("%d points", stats.Points),
	}
	fmt.Println(statsLine(parts, cached))
}

func statsLine(parts []string, cached bool) string {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + statusStyle.Render(status)
}

// =============================================================================
// Network Display
// =============================================================================

// roadTable renders one row per road, naming the cities whose ports hold it.
func roadTable(net *network.Network) string {
	holders := make([][]string, len(net.Roads))
	for ci, c := range net.Cities {
		for _, d := range c.OccupiedPorts() {
			r, _ := c.Port(d)
			for ri, road := range net.Roads {
				if road.Equal(r) {
					holders[ri] = append(holders[ri], fmt.Sprintf("c%d %s", ci, d))
				}
			}
		}
	}

	rows := make([][]string, 0, len(net.Roads))
	for i, r := range net.Roads {
		dir := "·"
		if d, ok := r.Direction(); ok {
			dir = d.String()
		}
		cities := strings.Join(holders[i], ", ")
		if cities == "" {
			cities = "—"
		}
		rows = append(rows, []string{
			strconv.Itoa(i), r.Start().String(), r.End().String(), dir, strconv.Itoa(r.Len()), cities,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Start", "End", "Dir", "Len", "Cities").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 4:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 5 && holders[row] != nil:
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// roadMap draws the network as text, one cell per grid point, with the
// smallest y on the first line unless yUp is set.
func roadMap(net *network.Network, yUp bool) string {
	var pts []geom.Point
	for _, r := range net.Roads {
		pts = append(pts, r.Points()...)
	}
	for _, c := range net.Cities {
		pts = append(pts, c.Point)
	}
	if len(pts) == 0 {
		return ""
	}

	lo, hi := pts[0], pts[0]
	for _, p := range pts {
		lo = geom.Pt(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = geom.Pt(max(hi.X, p.X), max(hi.Y, p.Y))
	}

	w, h := hi.X-lo.X+1, hi.Y-lo.Y+1
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
	}
	set := func(p geom.Point, ch rune) {
		grid[p.Y-lo.Y][p.X-lo.X] = ch
	}

	for _, r := range net.Roads {
		for i := range r.Len() {
			var horiz, vert bool
			for _, j := range []int{i - 1, i + 1} {
				if j < 0 || j >= r.Len() {
					continue
				}
				if r.At(j).Y == r.At(i).Y {
					horiz = true
				} else {
					vert = true
				}
			}
			switch {
			case horiz && vert:
				set(r.At(i), '+')
			case horiz:
				set(r.At(i), '─')
			case vert:
				set(r.At(i), '│')
			default:
				set(r.At(i), '•')
			}
		}
	}
	for _, c := range net.Cities {
		set(c.Point, '●')
	}

	lines := make([]string, h)
	for y, row := range grid {
		var b strings.Builder
		for _, seg := range strings.SplitAfter(strings.TrimRight(string(row), " "), "●") {
			if road, ok := strings.CutSuffix(seg, "●"); ok {
				b.WriteString(StyleDim.Render(road) + styleCity.Render("●"))
			} else {
				b.WriteString(StyleDim.Render(seg))
			}
		}
		line := b.String()
		if yUp {
			lines[h-1-y] = line
		} else {
			lines[y] = line
		}
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
