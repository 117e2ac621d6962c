package commands

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dcmgo/dcmgo/cmd/dcmctl/internal/config"
	"github.com/dcmgo/dcmgo/dicom/tag"
)

// LookupCmd resolves a tag or dictionary keyword to its VR/VM/keyword info.
type LookupCmd struct {
	Query string `arg:"" help:"Tag in (GGGG,EEEE) form, or a dictionary keyword"`
}

// Run executes the lookup command.
func (c *LookupCmd) Run(cfg *config.GlobalConfig, logger *log.Logger) error {
	dict := tag.Default()

	if t, err := tag.Parse(c.Query); err == nil {
		info, ok := dict.Find(t)
		if !ok {
			fmt.Printf("%s: not found in dictionary\n", t)
			return nil
		}
		printInfo(t, info)
		return nil
	}

	t, info, ok := dict.FindByKeyword(c.Query)
	if !ok {
		logger.Warn("keyword not found", "query", c.Query)
		fmt.Printf("%q: not found in dictionary\n", c.Query)
		return nil
	}
	printInfo(t, info)
	return nil
}

func printInfo(t tag.Tag, info tag.Info) {
	fmt.Printf("%s %s  VR=%s VM=%s  %s", t, info.Keyword, info.VR, info.VM, info.Name)
	if info.Retired {
		fmt.Print(" (retired)")
	}
	fmt.Println()
}
