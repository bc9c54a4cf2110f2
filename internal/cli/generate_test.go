package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadnet/pkg/pipeline"
)

func parseOptionFlags(t *testing.T, args ...string) (pipeline.Options, error) {
	t.Helper()
	flags := generateFlags{}
	cmd := &cobra.Command{Use: "test"}
	flags.registerOptions(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return buildOptions(cmd, &flags)
}

func TestBuildOptionsDefaults(t *testing.T) {
	opts, err := parseOptionFlags(t)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Seed != pipeline.DefaultSeed || opts.Boxes != pipeline.DefaultBoxes || opts.Cities != pipeline.DefaultCities {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.NoCities {
		t.Error("NoCities set without --cities 0")
	}
}

func TestBuildOptionsConfigAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.toml")
	cfg := "seed = 7\ncities = 6\nboxes = 3\n\n[[box]]\nleft = 0\ntop = 0\nright = 10\nbottom = 10\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := parseOptionFlags(t, "--config", path, "--cities", "2")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Seed != 7 {
		t.Errorf("Seed = %d, want 7 from config", opts.Seed)
	}
	if opts.Boxes != 3 {
		t.Errorf("Boxes = %d, want 3 from config", opts.Boxes)
	}
	if opts.Cities != 2 {
		t.Errorf("Cities = %d, want 2 from flag", opts.Cities)
	}
	if len(opts.Stack) != 1 || opts.Stack[0].Right != 10 {
		t.Errorf("Stack = %+v, want one box from config", opts.Stack)
	}
}

func TestBuildOptionsBoxFlagReplacesConfigStack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.toml")
	if err := os.WriteFile(path, []byte("[[box]]\nleft = 0\ntop = 0\nright = 4\nbottom = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := parseOptionFlags(t, "--config", path, "--box", "0,0,10,10", "--box", "5,5,15,15", "--cities", "0")
	if err != nil {
		t.Fatal(err)
	}
	want := []pipeline.BoxSpec{
		{Left: 0, Top: 0, Right: 10, Bottom: 10},
		{Left: 5, Top: 5, Right: 15, Bottom: 15},
	}
	if len(opts.Stack) != len(want) {
		t.Fatalf("Stack = %+v, want %+v", opts.Stack, want)
	}
	for i := range want {
		if opts.Stack[i] != want[i] {
			t.Errorf("Stack[%d] = %+v, want %+v", i, opts.Stack[i], want[i])
		}
	}
	if !opts.NoCities {
		t.Error("--cities 0 should set NoCities")
	}
}

func TestBuildOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "missing.toml")}},
		{"short box", []string{"--box", "1,2,3"}},
		{"non-numeric box", []string{"--box", "a,0,1,1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseOptionFlags(t, tt.args...); err == nil {
				t.Errorf("buildOptions(%v) expected error", tt.args)
			}
		})
	}
}

func TestParseBoxFlag(t *testing.T) {
	got, err := parseBoxFlag(" 1, 2 ,3,4")
	if err != nil {
		t.Fatal(err)
	}
	if want := (pipeline.BoxSpec{Left: 1, Top: 2, Right: 3, Bottom: 4}); got != want {
		t.Errorf("parseBoxFlag() = %+v, want %+v", got, want)
	}
}

func TestGenerateCommandWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "net.json")
	dot := filepath.Join(dir, "net.dot")

	cmd := New(&bytes.Buffer{}, LogInfo).RootCommand()
	cmd.SetArgs([]string{
		"generate", "--no-cache", "--no-map",
		"--box", "0,0,10,10", "--cities", "0",
		"-o", out, "--dot", dot,
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	res, err := pipeline.UnmarshalRecord(data)
	if err != nil {
		t.Fatalf("UnmarshalRecord: %v", err)
	}
	if res.Stats.Roads != 4 || res.Stats.Points != 40 || res.Stats.Cities != 0 {
		t.Errorf("stats = %+v, want 4 roads, 40 points, no cities", res.Stats)
	}

	dotData, err := os.ReadFile(dot)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(dotData, []byte("graph G {")) {
		t.Errorf("dot output starts with %q", dotData[:min(len(dotData), 20)])
	}
}

func TestGenerateCommandInvalidOptions(t *testing.T) {
	cmd := New(&bytes.Buffer{}, LogInfo).RootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "--no-cache", "--boxes", "1000"})
	if err := cmd.Execute(); err == nil {
		t.Error("generate with too many boxes should fail")
	}
}
