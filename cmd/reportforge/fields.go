package main

import (
	"flag"
	"fmt"

	"github.com/mrsinham/reportforge/internal/layout"
)

func runFields(args []string) error {
	fs := flag.NewFlagSet("fields", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("Recognized fields:")
	fmt.Println()
	fmt.Printf("  %-19s %-19s %-6s %s\n", "NAME", "LABEL", "KIND", "DEFAULT POSITION")
	for _, info := range layout.Fields() {
		kind := "text"
		if info.Kind == layout.KindImage {
			kind = "image"
		}
		fmt.Printf("  %-19s %-19s %-6s (%g, %g)\n", info.Name, info.Label, kind, info.Default.X, info.Default.Y)
	}
	fmt.Println()
	fmt.Println("Positions are PDF points with the origin at the bottom-left corner.")
	fmt.Printf("The image field anchors the top-left corner of the %gx%g pt photo box.\n", layout.ImageBoxSide, layout.ImageBoxSide)
	return nil
}
