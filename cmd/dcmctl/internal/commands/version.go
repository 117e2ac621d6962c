package commands

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dcmgo/dcmgo/cmd/dcmctl/internal/build"
	"github.com/dcmgo/dcmgo/cmd/dcmctl/internal/config"
)

// VersionCmd prints the binary's build-time version metadata.
type VersionCmd struct {
	JSON bool `help:"Print build info as JSON"`
}

// Run executes the version command.
func (c *VersionCmd) Run(cfg *config.GlobalConfig, logger *log.Logger) error {
	info := build.Get()

	if !c.JSON {
		fmt.Println(info.String())
		return nil
	}

	out, err := info.JSON()
	if err != nil {
		logger.Error("failed to marshal build info", "error", err)
		return err
	}
	fmt.Println(out)
	return nil
}
