package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/mrsinham/reportforge/cmd/reportforge/editor"
	"github.com/mrsinham/reportforge/internal/layout"
	"github.com/mrsinham/reportforge/internal/preview"
	"github.com/mrsinham/reportforge/internal/report"
)

func runEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	templatePath := fs.String("template", "", "Template PDF file (required)")
	layoutsDir := fs.String("layouts", "", "Layout store directory (default: user config dir)")
	previewPath := fs.String("preview", "", "Page image (PNG/JPEG) shown behind the field markers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *templatePath == "" {
		return fmt.Errorf("--template is required")
	}

	storeDir := *layoutsDir
	if storeDir == "" {
		var err error
		storeDir, err = layout.DefaultDir()
		if err != nil {
			return err
		}
	}

	tpl, err := report.LoadTemplate(*templatePath)
	if err != nil {
		return err
	}

	var renderer preview.Renderer = preview.Placeholder{Label: filepath.Base(tpl.Path)}
	if *previewPath != "" {
		bmp, err := preview.LoadBitmap(*previewPath)
		if err != nil {
			return err
		}
		renderer = bmp
	}

	store := layout.NewStore(storeDir)
	lay := store.Load(tpl.ID, tpl.Path, tpl.PageWidth, tpl.PageHeight)

	return editor.Run(editor.Options{
		Template: tpl,
		Layout:   lay,
		Store:    store,
		Renderer: renderer,
	})
}
