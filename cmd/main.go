package main

import (
	"FileScanner/internal"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "FileScanner",
		Usage:     "Recursively scan a directory for regex matches in text files",
		ArgsUsage: "<destination>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "regex",
				Usage: "Custom regex pattern to use. Overrides the configured default.",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the configuration JSON file containing the default regex",
				Value: "config.json",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output file to write results. If not specified, prints to standard output.",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Write logs into file instead of stderr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress display",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	internal.InitLogger(c.String("logfile"), c.String("log-level"))
	logrus.Info("FileScanner started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := c.Args().First()
	if root == "" {
		return cli.Exit("Destination directory is required", 1)
	}
	if st, err := os.Stat(root); err != nil || !st.IsDir() {
		return cli.Exit(fmt.Sprintf("Not a directory or inaccessible: %s", root), 1)
	}

	cfg, err := internal.LoadConfig(c.String("config"))
	if err != nil {
		logrus.WithError(err).Warn("Config not loaded, using defaults")
	}

	src := c.String("regex")
	if src == "" {
		src = cfg.Regex()
	}
	pattern, err := internal.CompilePattern(src)
	if err != nil {
		// Fail fast: no traversal starts with an uncompilable pattern.
		return cli.Exit(err.Error(), 1)
	}

	scanner := internal.NewFileScanner(pattern, internal.DefaultExecPolicy(runtime.GOOS, cfg.ExecutableExts))
	results, err := scanner.Scan(ctx, root)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	reporter, err := internal.NewReporter(c.String("output"), scanner.Stats(), !c.Bool("no-progress"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for res := range results {
		reporter.Report(res)
	}
	if err := reporter.Close(); err != nil {
		logrus.WithError(err).Error("Failed to finalize output")
	}
	if ctx.Err() != nil {
		logrus.Warn("Scan cancelled")
	}

	stats := scanner.Stats()
	fmt.Fprintf(os.Stderr,
		"\n======= Scan finished in %s =======\nFiles processed: %d\nFiles matched: %d\nFiles skipped: %d\nErrors: %d\n",
		stats.Elapsed(), stats.Visited.Load(), stats.Matched.Load(), stats.Skipped.Load(), stats.Errors.Load(),
	)
	return nil
}
