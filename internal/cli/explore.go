package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadnet/pkg/pipeline"
)

var exploreHelpStyle = lipgloss.NewStyle().Foreground(colorDim)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	flags := generateFlags{}

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse seeds interactively",
		Long: `Browse generated networks interactively.

Step through seeds and adjust box and city counts while the road map
redraws. Press enter to keep the current network.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), opts, &flags)
		},
	}

	flags.registerOptions(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the selected network record as JSON")
	flags.cache.register(cmd)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, flags *generateFlags) error {
	runner, err := c.newRunner(ctx, flags.cache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()
	// The runner logs each generation; keep it off the terminal the TUI owns.
	runner.Logger = log.New(io.Discard)

	p := tea.NewProgram(newExploreModel(ctx, runner, opts), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := final.(exploreModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}

	res := fm.Selected
	printSuccess("Network %s (seed %d)", StyleHighlight.Render(res.ID.String()), res.Options.Seed)
	printStats(res.Stats, false)
	if flags.output != "" {
		data, err := pipeline.MarshalRecord(res)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.output, data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		printFile(flags.output)
		return nil
	}
	printNextStep("Reproduce it", fmt.Sprintf("%s generate --seed %d --boxes %d --cities %d",
		appName, res.Options.Seed, res.Options.Boxes, res.Options.Cities))
	return nil
}

// =============================================================================
// exploreModel - Interactive seed browser
// =============================================================================

type generatedMsg struct {
	res    *pipeline.Result
	cached bool
	err    error
}

// exploreModel is the bubbletea model for browsing networks.
type exploreModel struct {
	ctx    context.Context
	runner *pipeline.Runner

	Opts      pipeline.Options
	Current   *pipeline.Result
	Cached    bool
	Err       error
	Loading   bool
	ShowTable bool
	Selected  *pipeline.Result
}

func newExploreModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) exploreModel {
	return exploreModel{ctx: ctx, runner: runner, Opts: opts, Loading: true}
}

func (m exploreModel) Init() tea.Cmd {
	return m.generate()
}

// generate runs the pipeline for the current options off the UI loop.
func (m exploreModel) generate() tea.Cmd {
	ctx, runner, opts := m.ctx, m.runner, m.Opts
	return func() tea.Msg {
		res, cached, err := runner.GenerateWithCacheInfo(ctx, opts)
		return generatedMsg{res: res, cached: cached, err: err}
	}
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.Loading = false
		m.Err = msg.err
		if msg.err == nil {
			m.Current, m.Cached = msg.res, msg.cached
		}
		return m, nil

	case tea.KeyMsg:
		regen := true
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.Current != nil && !m.Loading {
				m.Selected = m.Current
				return m, tea.Quit
			}
			return m, nil
		case "t":
			m.ShowTable = !m.ShowTable
			return m, nil
		case "right", "l", "n":
			m.Opts.Seed++
		case "left", "h", "p":
			if m.Opts.Seed <= 1 {
				return m, nil
			}
			m.Opts.Seed--
		case "up", "k", "+":
			m.Opts.Cities++
			m.Opts.NoCities = false
		case "down", "j", "-":
			if m.Opts.Cities == 0 {
				return m, nil
			}
			m.Opts.Cities--
			m.Opts.NoCities = m.Opts.Cities == 0
		case "b":
			if m.Opts.Boxes >= pipeline.MaxBoxes || len(m.Opts.Stack) > 0 {
				return m, nil
			}
			m.Opts.Boxes++
		case "B":
			if m.Opts.Boxes <= 1 || len(m.Opts.Stack) > 0 {
				return m, nil
			}
			m.Opts.Boxes--
		case "y":
			m.Opts.YUp = !m.Opts.YUp
		default:
			regen = false
		}
		if regen {
			m.Loading = true
			return m, m.generate()
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Road Network Explorer"))
	b.WriteString("\n")
	b.WriteString(exploreHelpStyle.Render("←/→ seed  ↑/↓ cities  b/B boxes  y flip  t table  ⏎ keep  q quit"))
	b.WriteString("\n\n")

	header := fmt.Sprintf("seed %d", m.Opts.Seed)
	if m.Loading {
		header += StyleDim.Render("  generating…")
	}
	b.WriteString(StyleValue.Render(header))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(StyleWarning.Render(m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.Current == nil {
		return b.String()
	}

	s := m.Current.Stats
	b.WriteString(statsLine([]string{
		fmt.Sprintf("%d boxes", s.Boxes),
		fmt.Sprintf("%d roads", s.Roads),
		fmt.Sprintf("%d cities", s.Cities),
		fmt.Sprintf("%d points", s.Points),
	}, m.Cached))
	b.WriteString("\n\n")
	b.WriteString(roadMap(m.Current.Network, m.Current.Options.YUp))
	b.WriteString("\n")
	if m.ShowTable {
		b.WriteString("\n")
		b.WriteString(roadTable(m.Current.Network))
		b.WriteString("\n")
	}
	return b.String()
}
