package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/favicon-tools-mcp/internal/favicon"
	"github.com/ironsheep/favicon-tools-mcp/internal/imaging"
	"github.com/ironsheep/favicon-tools-mcp/internal/server"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "favicon-mcp",
		Short: "Turn a colored logo into white-on-transparent favicons",
		Long: `favicon-mcp removes the green accent from a logo, thickens the remaining
strokes, and writes logo_white.png, favicon.png, favicon-WxH.png files and
favicon.ico.

Run without a subcommand it serves the MCP protocol over stdin/stdout.

Environment variables:
  FAVICON_MCP_LOG_LEVEL=debug    Enable debug logging`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve MCP tools over stdin/stdout",
			RunE:  runServe,
		},
		newGenerateCmd(),
		newAnalyzeCmd(),
		&cobra.Command{
			Use:   "presets",
			Short: "Print the named presets as JSON",
			RunE:  runPresets,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("favicon-mcp %s\n", Version)
				fmt.Printf("  Build time: %s\n", BuildTime)
				fmt.Printf("  Git commit: %s\n", GitCommit)
			},
		},
	)
	return root
}

func runServe(cmd *cobra.Command, args []string) error {
	if os.Getenv("FAVICON_MCP_LOG_LEVEL") == "debug" {
		log.Printf("Favicon MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}
	return server.New(log.Default()).Run()
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := make(map[string]favicon.Config)
	for _, name := range favicon.PresetNames() {
		cfg, err := favicon.Preset(name)
		if err != nil {
			return err
		}
		out[name] = cfg
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// addTuningFlags registers the flags shared by generate and analyze.
func addTuningFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "JSON config file")
	cmd.Flags().String("preset", "", "Preset to start from (favicon, shield, luminance)")
	cmd.Flags().StringP("source", "s", "", "Source logo image")
	cmd.Flags().Int("margin", 0, "Accent dominance margin D")
	cmd.Flags().Int("alpha-cutoff", 0, "Treat alpha <= this as transparent")
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the white logo and favicon set",
		RunE:  runGenerate,
	}
	addTuningFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Output directory (created if missing)")
	cmd.Flags().String("strategy", "", "binary or luminance")
	cmd.Flags().Int("kernel", 0, "Dilation kernel size (odd, 1 disables)")
	cmd.Flags().Int("mask-cutoff", 0, "Keep thickened mask cells above this")
	cmd.Flags().String("alpha-mode", "", "opaque or preserve")
	cmd.Flags().StringSlice("size", nil, "Target sizes as WxH (repeatable)")
	cmd.Flags().IntSlice("icon-size", nil, "Square sizes embedded in favicon.ico")
	cmd.Flags().Bool("no-ico", false, "Skip favicon.ico")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report color and accent statistics for a logo",
		RunE:  runAnalyze,
	}
	addTuningFlags(cmd)
	cmd.Flags().Int("top", 20, "Number of most common colors to list")
	return cmd
}

// loadConfig builds a Config from --config, then --preset, then the
// individual flags the user actually set.
func loadConfig(cmd *cobra.Command) (favicon.Config, error) {
	flags := cmd.Flags()
	cfg := favicon.DefaultConfig()

	if path, _ := flags.GetString("config"); path != "" {
		c, err := favicon.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	if name, _ := flags.GetString("preset"); name != "" {
		p, err := favicon.Preset(name)
		if err != nil {
			return cfg, err
		}
		p.SourcePath, p.OutputDir = cfg.SourcePath, cfg.OutputDir
		cfg = p
	}

	if flags.Changed("source") {
		cfg.SourcePath, _ = flags.GetString("source")
	}
	if flags.Changed("margin") {
		cfg.DominanceMargin, _ = flags.GetInt("margin")
	}
	if flags.Changed("alpha-cutoff") {
		cfg.AlphaCutoff, _ = flags.GetInt("alpha-cutoff")
	}
	if flags.Lookup("out") == nil {
		return cfg, nil
	}

	if flags.Changed("out") {
		cfg.OutputDir, _ = flags.GetString("out")
	}
	if flags.Changed("strategy") {
		s, _ := flags.GetString("strategy")
		cfg.Strategy = favicon.Strategy(s)
	}
	if flags.Changed("kernel") {
		cfg.DilationKernelSize, _ = flags.GetInt("kernel")
	}
	if flags.Changed("mask-cutoff") {
		cfg.MaskCutoff, _ = flags.GetInt("mask-cutoff")
	}
	if flags.Changed("alpha-mode") {
		m, _ := flags.GetString("alpha-mode")
		cfg.AlphaMode = favicon.AlphaMode(m)
	}
	if flags.Changed("size") {
		raw, _ := flags.GetStringSlice("size")
		sizes := make([]favicon.Size, 0, len(raw))
		for _, r := range raw {
			var s favicon.Size
			if _, err := fmt.Sscanf(r, "%dx%d", &s.Width, &s.Height); err != nil {
				return cfg, &favicon.ConfigError{Field: "target_sizes", Reason: fmt.Sprintf("bad size %q", r)}
			}
			sizes = append(sizes, s)
		}
		cfg.TargetSizes = sizes
	}
	if flags.Changed("icon-size") {
		cfg.IconSizes, _ = flags.GetIntSlice("icon-size")
	}
	if noICO, _ := flags.GetBool("no-ico"); noICO {
		cfg.ExportContainer = false
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := favicon.Run(cfg, imaging.NewImageCache(), log.Default())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %dx%d logo (%s)\n", res.Width, res.Height, res.Stats)
	for _, f := range res.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}
	return nil
}

// analyzeReport is printed by the analyze command.
type analyzeReport struct {
	Source string                     `json:"source"`
	Census *imaging.ColorCensusResult `json:"census"`
	Stats  favicon.Stats              `json:"stats"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.SourcePath == "" {
		return &favicon.ConfigError{Field: "source_path", Reason: "required"}
	}
	top, _ := cmd.Flags().GetInt("top")

	img, err := imaging.NewImageCache().Load(cfg.SourcePath)
	if err != nil {
		return &favicon.DecodeError{Path: cfg.SourcePath, Err: err}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(analyzeReport{
		Source: cfg.SourcePath,
		Census: imaging.ColorCensus(img, top),
		Stats:  favicon.Analyze(img, cfg.Classifier()),
	})
}
