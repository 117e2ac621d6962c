// Package commands implements dcmctl's subcommands.
package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dcmgo/dcmgo/cmd/dcmctl/internal/config"
	"github.com/dcmgo/dcmgo/dicom"
	"github.com/dcmgo/dcmgo/dicom/tag"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// DumpCmd decodes one or more DICOM files and prints their elements.
type DumpCmd struct {
	Paths []string `arg:"" type:"existingfile" help:"DICOM files to dump"`
}

// Run executes the dump command.
func (c *DumpCmd) Run(cfg *config.GlobalConfig, logger *log.Logger) error {
	dict := tag.Default()

	for i, path := range c.Paths {
		logger.Debug("parsing file", "path", path)

		buf, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read file", "path", path, "error", err)
			continue
		}

		parsed, err := dicom.Parse(buf, dicom.ParseOptions{Dictionary: dict})
		if err != nil {
			logger.Error("failed to parse file", "path", path, "error", err)
			continue
		}

		view := dicom.NewElementsView(parsed.Elements, dict)

		if len(c.Paths) > 1 {
			fmt.Println(headerStyle.Render(path))
		}

		switch cfg.Format {
		case "table":
			renderTable(os.Stdout, view)
		default:
			fmt.Print(view.Dump())
		}

		if i < len(c.Paths)-1 {
			fmt.Println()
		}
	}

	return nil
}

func renderTable(w *os.File, view *dicom.ElementsView) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tVR\tVL\tNAME\tVALUE")
	for _, row := range view.DumpToTable() {
		fmt.Fprintf(tw, "(%s,%s)\t%s\t%s\t%s\t%s\n", row.Group, row.Element, row.VR, row.VL, row.Name, row.Value)
	}
	tw.Flush()
}
