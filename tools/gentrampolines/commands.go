package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// paths holds the flags shared by all subcommands.
type paths struct {
	configPath string
	outDir     string
}

func (p *paths) setFlags(f *flag.FlagSet) {
	f.StringVar(&p.configPath, "config", "trampolines.toml", "path to the trampoline definition file")
	f.StringVar(&p.outDir, "out", ".", "directory containing the generated files")
}

// generateCmd implements subcommands.Command for the "generate" command.
type generateCmd struct {
	paths
}

// Name implements subcommands.Command.Name.
func (*generateCmd) Name() string {
	return "generate"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*generateCmd) Synopsis() string {
	return "generate trampoline assembly and Go declarations"
}

// Usage implements subcommands.Command.Usage.
func (*generateCmd) Usage() string {
	return `generate [-config <file>] [-out <dir>]
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (g *generateCmd) SetFlags(f *flag.FlagSet) {
	g.setFlags(f)
}

// Execute implements subcommands.Command.Execute.
func (g *generateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	outputs, err := render(g.configPath)
	if err != nil {
		logrus.WithError(err).Error("failed to generate trampolines")
		return subcommands.ExitFailure
	}

	for _, out := range outputs {
		path := filepath.Join(g.outDir, out.name)
		if err := os.WriteFile(path, out.data, 0644); err != nil {
			logrus.WithError(err).WithField("file", path).Error("failed to write generated file")
			return subcommands.ExitFailure
		}
		logrus.WithField("file", path).WithField("bytes", len(out.data)).Debug("wrote generated file")
	}

	logrus.WithField("config", g.configPath).Info("trampolines generated")
	return subcommands.ExitSuccess
}

// checkCmd implements subcommands.Command for the "check" command.
type checkCmd struct {
	paths
}

// Name implements subcommands.Command.Name.
func (*checkCmd) Name() string {
	return "check"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*checkCmd) Synopsis() string {
	return "verify that the generated trampolines are up to date"
}

// Usage implements subcommands.Command.Usage.
func (*checkCmd) Usage() string {
	return `check [-config <file>] [-out <dir>]
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
}

// Execute implements subcommands.Command.Execute.
func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	outputs, err := render(c.configPath)
	if err != nil {
		logrus.WithError(err).Error("failed to generate trampolines")
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, out := range outputs {
		path := filepath.Join(c.outDir, out.name)
		current, err := os.ReadFile(path)
		if err != nil {
			logrus.WithError(err).WithField("file", path).Error("failed to read generated file")
			status = subcommands.ExitFailure
			continue
		}

		if !bytes.Equal(current, out.data) {
			logrus.WithField("file", path).Error("generated file is stale; run gentrampolines generate")
			status = subcommands.ExitFailure
			continue
		}
		logrus.WithField("file", path).Debug("generated file is up to date")
	}

	return status
}
