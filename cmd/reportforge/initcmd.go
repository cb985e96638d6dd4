package main

import (
	"flag"
	"fmt"

	"github.com/mrsinham/reportforge/internal/scaffold"
)

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dir := fs.String("dir", ".", "Target directory")
	patients := fs.Int("patients", 4, "Sample rows to generate")
	seed := fs.Uint64("seed", 0, "Sample data seed (derived from the directory name if 0)")
	force := fs.Bool("force", false, "Overwrite a previously scaffolded workspace")
	if err := fs.Parse(args); err != nil {
		return err
	}

	files, err := scaffold.Write(*dir, scaffold.Options{
		Patients: *patients,
		Seed:     *seed,
		Force:    *force,
	})
	if err != nil {
		return err
	}

	fmt.Println("✓ Sample workspace ready!")
	fmt.Printf("  Template: %s\n", files.TemplatePath)
	fmt.Printf("  Patients: %s\n", files.CSVPath)
	fmt.Printf("  Photos:   %d files\n", len(files.PhotoPaths))
	fmt.Println()
	fmt.Println("Next:")
	fmt.Printf("  reportforge generate --template %s --csv %s --output reports\n", files.TemplatePath, files.CSVPath)
	fmt.Printf("  reportforge edit --template %s\n", files.TemplatePath)
	return nil
}
