package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadnet/pkg/errors"
	"github.com/matzehuels/roadnet/pkg/export"
	"github.com/matzehuels/roadnet/pkg/pipeline"
)

// generateFlags holds flags for the generate command.
type generateFlags struct {
	cache   cacheFlags
	config  string
	boxes   []string
	output  string
	dot     string
	svg     string
	table   bool
	noMap   bool
	refresh bool
	opts    pipeline.Options
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	flags := generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a road network",
		Long: `Generate a road network from a seed.

A footprint of overlapping boxes is grown from a seed box (or taken from
--box / the config file), its layered boundary is traced into straight
roads and cities are spliced in as junctions.

Flags override values from --config.`,
		Example: `  roadnet generate --seed 7 --cities 6
  roadnet generate --box 0,0,10,10 --box 5,5,15,15 --table
  roadnet generate --config city.toml -o city.json --svg city.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, &flags)
		},
	}

	flags.registerOptions(cmd)
	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Write the network record as JSON (- for stdout)")
	f.StringVar(&flags.dot, "dot", "", "Write the topology as Graphviz DOT")
	f.StringVar(&flags.svg, "svg", "", "Write the topology as SVG")
	f.BoolVar(&flags.table, "table", false, "Print a table of roads")
	f.BoolVar(&flags.noMap, "no-map", false, "Do not print the road map")
	f.BoolVar(&flags.refresh, "refresh", false, "Regenerate even if cached")
	flags.cache.register(cmd)

	return cmd
}

// registerOptions registers the flags that map onto pipeline.Options.
func (flags *generateFlags) registerOptions(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "TOML file with generation options")
	f.Uint64Var(&flags.opts.Seed, "seed", pipeline.DefaultSeed, "Random seed")
	f.IntVar(&flags.opts.Boxes, "boxes", pipeline.DefaultBoxes, "Number of boxes in the footprint")
	f.IntVar(&flags.opts.Width, "width", pipeline.DefaultWidth, "Seed box width")
	f.IntVar(&flags.opts.Height, "height", pipeline.DefaultHeight, "Seed box height")
	f.Float64Var(&flags.opts.MinScale, "min-scale", pipeline.DefaultMinScale, "Smallest grown box relative to the seed box")
	f.Float64Var(&flags.opts.MaxScale, "max-scale", pipeline.DefaultMaxScale, "Largest grown box relative to the seed box")
	f.IntVar(&flags.opts.Cities, "cities", pipeline.DefaultCities, "Number of cities to place (0 for none)")
	f.IntVar(&flags.opts.MinCitySpacing, "spacing", pipeline.DefaultMinCitySpacing, "Minimum Manhattan distance between cities")
	f.BoolVar(&flags.opts.YUp, "y-up", false, "Treat larger y as up")
	f.IntVar(&flags.opts.MaxAttempts, "max-attempts", 0, "Placement attempts per box (0 for default)")
	f.StringArrayVar(&flags.boxes, "box", nil, "Explicit footprint box as left,top,right,bottom (repeatable, topmost first)")
}

// buildOptions merges the config file with explicitly set flags.
func buildOptions(cmd *cobra.Command, flags *generateFlags) (pipeline.Options, error) {
	opts := flags.opts
	if flags.config != "" {
		cfg, err := pipeline.LoadConfig(flags.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = mergeFlags(cmd, cfg, flags.opts)
	}

	if len(flags.boxes) > 0 {
		opts.Stack = opts.Stack[:0:0]
		for _, raw := range flags.boxes {
			spec, err := parseBoxFlag(raw)
			if err != nil {
				return pipeline.Options{}, err
			}
			opts.Stack = append(opts.Stack, spec)
		}
	}

	if cmd.Flags().Changed("cities") && opts.Cities == 0 {
		opts.NoCities = true
	}
	opts.Refresh = flags.refresh
	return opts, nil
}

// mergeFlags overlays flag values the user set explicitly onto cfg.
func mergeFlags(cmd *cobra.Command, cfg, fl pipeline.Options) pipeline.Options {
	changed := cmd.Flags().Changed
	if changed("seed") {
		cfg.Seed = fl.Seed
	}
	if changed("boxes") {
		cfg.Boxes = fl.Boxes
	}
	if changed("width") {
		cfg.Width = fl.Width
	}
	if changed("height") {
		cfg.Height = fl.Height
	}
	if changed("min-scale") {
		cfg.MinScale = fl.MinScale
	}
	if changed("max-scale") {
		cfg.MaxScale = fl.MaxScale
	}
	if changed("cities") {
		cfg.Cities = fl.Cities
	}
	if changed("spacing") {
		cfg.MinCitySpacing = fl.MinCitySpacing
	}
	if changed("y-up") {
		cfg.YUp = fl.YUp
	}
	if changed("max-attempts") {
		cfg.MaxAttempts = fl.MaxAttempts
	}
	return cfg
}

// parseBoxFlag parses "left,top,right,bottom".
func parseBoxFlag(raw string) (pipeline.BoxSpec, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return pipeline.BoxSpec{}, errors.New(errors.ErrCodeInvalidInput, "box %q: want left,top,right,bottom", raw)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return pipeline.BoxSpec{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "box %q", raw)
		}
		v[i] = n
	}
	return pipeline.BoxSpec{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, flags *generateFlags) error {
	runner, err := c.newRunner(ctx, flags.cache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, cached, err := runner.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Generated network")

	if flags.output == "-" {
		data, err := pipeline.MarshalRecord(res)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	printSuccess("Network %s", StyleHighlight.Render(res.ID.String()))
	printStats(res.Stats, cached)
	if res.Stats.Cities < res.Options.Cities {
		printWarning("placed %d of %d cities", res.Stats.Cities, res.Options.Cities)
	}
	if !flags.noMap {
		printNewline()
		fmt.Println(roadMap(res.Network, res.Options.YUp))
	}
	if flags.table {
		printNewline()
		fmt.Println(roadTable(res.Network))
	}

	var written []string
	if flags.output != "" {
		data, err := pipeline.MarshalRecord(res)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.output, data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		written = append(written, flags.output)
	}
	for _, out := range []struct{ path, format string }{
		{flags.dot, export.FormatDOT},
		{flags.svg, export.FormatSVG},
	} {
		if out.path == "" {
			continue
		}
		var data []byte
		err := withSpinner(ctx, "Rendering "+out.format+"...", func() error {
			var err error
			data, err = runner.Render(ctx, res, out.format)
			return err
		})
		if err != nil {
			return err
		}
		if err := os.WriteFile(out.path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out.format, err)
		}
		written = append(written, out.path)
	}

	if len(written) > 0 {
		printNewline()
		for _, p := range written {
			printFile(p)
		}
	} else if flags.output == "" {
		printNewline()
		printNextStep("Save it", fmt.Sprintf("%s generate --seed %d -o network.json --svg network.svg", appName, res.Options.Seed))
	}
	return nil
}
