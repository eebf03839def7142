/*
Package config loads reporting configuration for metrics trees.

# Overview

config declares the file-backed settings that surround a metrics tree:
the report style, the output sink, the snapshot archive location, and
which observability features are enabled. Fields absent from a file keep
their defaults, so minimal configurations stay minimal.

# File Loading

Load configuration from YAML or JSON files:

	cfg, err := config.Load("report.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
	    log.Fatal(err)
	}

A typical file:

	style: classic
	output: stdout
	metrics: true
	snapshot:
	  path: ./reports.db
	logging:
	  level: debug

# Applying a Configuration

The accessors resolve configured names into usable values:

	sty, _ := cfg.ResolveStyle()
	sink, err := cfg.Writer()
	logger := slog.New(slog.NewTextHandler(os.Stderr,
	    &slog.HandlerOptions{Level: cfg.LogLevel()}))

	root := metrictree.NewRoot(
	    metrictree.WithLogger(logger),
	    metrictree.WithMetrics(cfg.Metrics),
	)
	root.Visit(metrictree.WithWriter(sink), metrictree.WithStyle(sty))
*/
package config
