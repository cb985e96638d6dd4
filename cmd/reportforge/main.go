package main

import (
	"fmt"
	"os"
	"runtime"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a command")
		printUsage()
		os.Exit(1)
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "edit":
		err = runEdit(os.Args[2:])
	case "fields":
		err = runFields(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("reportforge %s\n", version)
		return
	case "help", "--help", "-h":
		printHelp()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  reportforge <command> [options]")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	fmt.Fprintln(os.Stderr, "  generate   Generate one PDF report per patient record")
	fmt.Fprintln(os.Stderr, "  edit       Position fields on a template interactively")
	fmt.Fprintln(os.Stderr, "  fields     List the recognized fields and their defaults")
	fmt.Fprintln(os.Stderr, "  init       Scaffold a sample workspace")
	fmt.Fprintln(os.Stderr, "  version    Show version")
	fmt.Fprintln(os.Stderr, "\nRun 'reportforge help' for details.")
}

func printHelp() {
	fmt.Println("reportforge")
	fmt.Println("===========")
	fmt.Println()
	fmt.Println("Generate patient PDF reports from a template and a CSV of records.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  reportforge <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println()
	fmt.Println("  generate   Generate one PDF report per patient record")
	fmt.Println("    --template <FILE>    Template PDF (required)")
	fmt.Println("    --csv <FILE>         Patient records CSV (required)")
	fmt.Println("    --output <DIR>       Output directory (default: 'reports')")
	fmt.Println("    --layouts <DIR>      Layout store directory (default: user config dir)")
	fmt.Printf("    --workers <N>        Parallel workers (default: %d = CPU cores)\n", runtime.NumCPU())
	fmt.Println("    --quiet              Suppress progress output")
	fmt.Println("    --config <FILE>      Load run configuration from YAML")
	fmt.Println("    --save-config <FILE> Save run configuration to YAML after the run")
	fmt.Println()
	fmt.Println("  edit       Position fields on a template interactively")
	fmt.Println("    --template <FILE>    Template PDF (required)")
	fmt.Println("    --layouts <DIR>      Layout store directory (default: user config dir)")
	fmt.Println("    --preview <FILE>     Rasterized page image shown behind the fields")
	fmt.Println()
	fmt.Println("  fields     List the recognized fields and their defaults")
	fmt.Println()
	fmt.Println("  init       Scaffold a sample workspace")
	fmt.Println("    --dir <DIR>          Target directory (default: '.')")
	fmt.Println("    --patients <N>       Sample rows to generate (default: 4)")
	fmt.Println("    --seed <N>           Sample data seed (default: derived from directory)")
	fmt.Println("    --force              Overwrite a previously scaffolded workspace")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Scaffold a sample workspace and generate its reports")
	fmt.Println("  reportforge init --dir sample")
	fmt.Println("  reportforge generate --template sample/template.pdf --csv sample/patients.csv --output reports")
	fmt.Println()
	fmt.Println("  # Adjust field positions, then regenerate")
	fmt.Println("  reportforge edit --template sample/template.pdf")
	fmt.Println()
	fmt.Println("  # Save the run settings for the next time")
	fmt.Println("  reportforge generate --template t.pdf --csv p.csv --save-config run.yaml")
	fmt.Println("  reportforge generate --config run.yaml")
	fmt.Println()
	fmt.Println("CSV input:")
	fmt.Println("  The header must carry the recognized columns (see 'reportforge fields').")
	fmt.Println("  image_path may be empty or name a PNG, JPEG, GIF or DICOM file; relative")
	fmt.Println("  paths resolve against the CSV's own directory.")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  One PDF per record, named <name>_report.pdf after the record's name")
	fmt.Println("  column, with numeric suffixes when names collide within a run.")
}
