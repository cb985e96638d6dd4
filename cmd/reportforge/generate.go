package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/mrsinham/reportforge/internal/layout"
	"github.com/mrsinham/reportforge/internal/record"
	"github.com/mrsinham/reportforge/internal/report"
)

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	templatePath := fs.String("template", "", "Template PDF file (required)")
	csvPath := fs.String("csv", "", "Patient records CSV file (required)")
	output := fs.String("output", "reports", "Output directory")
	layoutsDir := fs.String("layouts", "", "Layout store directory (default: user config dir)")
	workers := fs.Int("workers", 0, fmt.Sprintf("Number of parallel workers (default: %d = CPU cores)", runtime.NumCPU()))
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	configFile := fs.String("config", "", "Load run configuration from YAML file")
	saveConfig := fs.String("save-config", "", "Save run configuration to YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := RunConfig{Output: "reports"}
	if *configFile != "" {
		loaded, err := loadRunConfig(*configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
		if cfg.Output == "" {
			cfg.Output = "reports"
		}
	}

	// Explicit flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "template":
			cfg.Template = *templatePath
		case "csv":
			cfg.CSV = *csvPath
		case "output":
			cfg.Output = *output
		case "layouts":
			cfg.Layouts = *layoutsDir
		case "workers":
			cfg.Workers = *workers
		case "quiet":
			cfg.Quiet = *quiet
		}
	})

	if cfg.Template == "" {
		return fmt.Errorf("--template is required")
	}
	if cfg.CSV == "" {
		return fmt.Errorf("--csv is required")
	}

	storeDir := cfg.Layouts
	if storeDir == "" {
		var err error
		storeDir, err = layout.DefaultDir()
		if err != nil {
			return err
		}
	}

	tpl, err := report.LoadTemplate(cfg.Template)
	if err != nil {
		return err
	}

	records, err := record.ReadFile(cfg.CSV)
	if err != nil {
		return err
	}

	lay := layout.NewStore(storeDir).Load(tpl.ID, tpl.Path, tpl.PageWidth, tpl.PageHeight)

	if !cfg.Quiet {
		fmt.Println("reportforge")
		fmt.Println("===========")
		fmt.Printf("Template: %s (%gx%g pt)\n", cfg.Template, tpl.PageWidth, tpl.PageHeight)
		fmt.Printf("Records:  %d from %s\n", len(records), cfg.CSV)
		fmt.Println()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	reports, runErr := report.Run(ctx, tpl, lay, records, report.RunOptions{
		OutputDir: cfg.Output,
		Workers:   cfg.Workers,
		Quiet:     cfg.Quiet,
	})
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	if !cfg.Quiet {
		for _, rep := range reports {
			switch {
			case rep.Status.Failed():
				fmt.Printf("  %s: %s\n", rep.Identity, rep.Status)
			case rep.Status == report.StatusSkippedMissingImage:
				fmt.Printf("  Warning: no usable photo for %s\n", displayIdentity(rep.Identity))
			}
		}
	}

	s := report.Summarize(reports, time.Since(start))
	fmt.Printf("\n✓ Generated %d/%d reports in %s\n", s.Written, s.Total, s.Duration.Round(time.Millisecond))
	fmt.Printf("  Output directory: %s\n", cfg.Output)
	if s.Skipped > 0 {
		fmt.Printf("  Without photo: %d\n", s.Skipped)
	}
	if s.Failed > 0 {
		fmt.Printf("  Failed: %d\n", s.Failed)
	}

	if *saveConfig != "" {
		if err := saveRunConfig(&cfg, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else {
			fmt.Printf("  Configuration saved to %s\n", *saveConfig)
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("cancelled after %d of %d reports", len(reports), len(records))
	}
	if s.Total > 0 && s.Written == 0 {
		return fmt.Errorf("no reports could be generated")
	}
	return nil
}

// displayIdentity keeps warning lines readable for records that have no
// name value.
func displayIdentity(identity string) string {
	if identity == "" {
		return "(unnamed record)"
	}
	return identity
}
