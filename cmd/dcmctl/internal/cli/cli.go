// Package cli wires dcmctl's Kong command tree and logger.
package cli

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dcmgo/dcmgo/cmd/dcmctl/internal/build"
	"github.com/dcmgo/dcmgo/cmd/dcmctl/internal/commands"
	"github.com/dcmgo/dcmgo/cmd/dcmctl/internal/config"
)

const (
	appName        = "dcmctl"
	appDescription = "DICOM Part-10 file inspection CLI"
)

// CLI is the root command structure.
type CLI struct {
	config.GlobalConfig

	Dump    commands.DumpCmd    `cmd:"" name:"dump" help:"Decode and print DICOM file contents"`
	Lookup  commands.LookupCmd  `cmd:"" name:"lookup" help:"Look up a DICOM tag or dictionary keyword"`
	Version commands.VersionCmd `cmd:"" name:"version" help:"Print dcmctl build version"`
}

// Run parses os.Args and executes the selected subcommand.
func Run(version, commit, date string) error {
	build.SetBuildInfo(version, commit, date)

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name(appName),
		kong.Description(appDescription),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version, "commit": commit, "date": date},
	)

	if err := cli.GlobalConfig.Validate(); err != nil {
		return err
	}

	logger := setupLogger(&cli.GlobalConfig)
	runID := uuid.NewString()
	logger.Debug("dcmctl starting", "run_id", runID, "version", version, "commit", commit, "build_date", date)

	if err := ctx.Run(&cli.GlobalConfig, logger); err != nil {
		logger.Error("command failed", "run_id", runID, "error", err)
		return err
	}
	return nil
}

func setupLogger(cfg *config.GlobalConfig) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	switch cfg.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if !cfg.Pretty {
		logger.SetFormatter(log.JSONFormatter)
	}

	log.SetDefault(logger)
	return logger
}
