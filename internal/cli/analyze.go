package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lazypower/rapport/internal/config"
	"github.com/lazypower/rapport/internal/engine"
	"github.com/lazypower/rapport/internal/export"
	"github.com/lazypower/rapport/internal/records"
	"github.com/lazypower/rapport/internal/report"
)

var (
	analyzeData    string
	analyzeExample bool
	analyzeTarget  string
	analyzeOut     string
	analyzeAsOf    string
	analyzeConfig  string
	analyzeRender  bool
)

var (
	headlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze an export and write a markdown report",
	Long: "Analyze parses the CSV files of a connection-data export, scores every " +
		"connection, and writes a markdown intelligence report. With --target it writes " +
		"a warm-path report toward that company instead.",
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeData, "data", "d", "", "Path to the export directory")
	analyzeCmd.Flags().BoolVarP(&analyzeExample, "example", "e", false, "Generate and analyze sample data")
	analyzeCmd.Flags().StringVarP(&analyzeTarget, "target", "t", "", "Target company for warm-path ranking")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Report output path")
	analyzeCmd.Flags().StringVar(&analyzeAsOf, "as-of", "", "Analysis date (YYYY-MM-DD, default today)")
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "Config file path")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false, "Render the report in the terminal")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfgPath := analyzeConfig
	required := cfgPath != ""
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath, required)
	if err != nil {
		return err
	}

	logger, closeLog := config.SetupLogger(cfg.Log)
	defer closeLog()
	slog.SetDefault(logger)

	if analyzeTarget != "" {
		cfg.Engine.TargetCompany = strings.TrimSpace(analyzeTarget)
	}

	asOf := time.Now().UTC()
	if analyzeAsOf != "" {
		asOf, err = time.Parse("2006-01-02", analyzeAsOf)
		if err != nil {
			return fmt.Errorf("parse --as-of: %w", err)
		}
	}

	dataDir := analyzeData
	if analyzeExample {
		dataDir = filepath.Join(os.TempDir(), "rapport-sample-export")
		if err := export.WriteSample(dataDir); err != nil {
			return err
		}
		logger.Info("generated sample export", "dir", dataDir)
	}
	if dataDir == "" {
		return fmt.Errorf("no export directory: pass --data <dir> or --example")
	}

	ex, err := export.Load(dataDir)
	if err != nil {
		return err
	}
	snap := records.BuildSnapshot(ex)

	connections, messages := snap.Counts()
	logger.Info("export loaded", "dir", dataDir, "connections", connections, "messages", messages)
	if dups := snap.DuplicateKeys(); len(dups) > 0 {
		logger.Warn("duplicate names collapsed into single identities", "names", strings.Join(dups, ", "))
	}

	res, err := engine.Analyze(snap, cfg.Engine, asOf)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	var md string
	if cfg.Engine.TargetCompany != "" {
		md = report.WarmPath(res, runID)
	} else {
		md = report.Assemble(res, runID)
	}

	outPath := analyzeOut
	if outPath == "" {
		outPath = defaultReportPath(cfg.Engine.TargetCompany)
	}
	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if analyzeRender {
		rendered, err := glamour.Render(md, "dark")
		if err != nil {
			logger.Warn("terminal render failed, report written unrendered", "error", err)
		} else {
			fmt.Print(rendered)
		}
	}

	fmt.Fprintln(os.Stderr, headlineStyle.Render("report written"), pathStyle.Render(outPath))
	return nil
}

func defaultReportPath(target string) string {
	if target == "" {
		return "network_intelligence_report.md"
	}
	slug := strings.ReplaceAll(strings.ToLower(target), " ", "_")
	return fmt.Sprintf("warm_path_%s.md", slug)
}
