package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/clanko"
	"github.com/fwojciec/clanko/scrape"
)

// Output formats.
const (
	FormatMarkdown = "md"
	FormatPDF      = "pdf"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL     string        `arg:"" optional:"" help:"Article URL to download"`
	Config  string        `short:"C" default:"config.yaml" help:"Path to the YAML config file with credentials"`
	Output  string        `short:"o" default:"." help:"Output directory"`
	Format  string        `short:"f" enum:"md,pdf" default:"pdf" help:"Output format (md, pdf)"`
	Timeout time.Duration `short:"t" help:"Per-request timeout (default: none)"`
	Archive string        `help:"SQLite database to archive rendered articles in"`
	List    bool          `short:"l" help:"List articles in the --archive database instead of downloading"`
	Verbose bool          `short:"v" help:"Log each step to stderr"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Scraper  *scrape.Scraper
	Exporter clanko.Exporter
	Articles clanko.ArticleService
}

// FetchCmd downloads one article and hands it to the exporter.
type FetchCmd struct {
	URL string
}

// ListCmd prints the archived articles, newest first.
type ListCmd struct{}
