// arcball-replay runs a scripted camera session and prints the final state.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/arcball/internal/logger"
	"github.com/Faultbox/arcball/internal/replay"
)

func main() {
	format := flag.String("format", "yaml", "Output format: yaml or table")
	snapshots := flag.Bool("snapshots", false, "Include the camera state after every step")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}

	level := "warn"
	if *debug {
		level = "debug"
	}
	// stdout carries the result.
	logger.Console = zapcore.Lock(os.Stderr)
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	path := flag.Arg(0)
	script, err := replay.Load(path)
	if err != nil {
		logger.Error("failed to load script", zap.Error(err))
		os.Exit(1)
	}
	logger.Debug("script loaded", zap.String("path", path), zap.Int("steps", len(script.Steps)))

	res, err := replay.Run(script, replay.Options{Snapshots: *snapshots})
	if err != nil {
		logger.Error("replay failed", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}

	switch *format {
	case "yaml":
		err = replay.WriteYAML(os.Stdout, res)
	case "table":
		err = replay.WriteTable(os.Stdout, res)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("failed to write result", zap.Error(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `arcball-replay - run an arcball camera script

Usage:
  arcball-replay [options] <script.yaml>

Options:
  -format yaml|table   Output format (default yaml)
  -snapshots           Include the camera state after every step
  -debug               Enable debug logging

Example:
  arcball-replay -format table internal/replay/testdata/orbit.yaml`)
}
