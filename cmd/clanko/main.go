package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/clanko"
	"github.com/fwojciec/clanko/fs"
	"github.com/fwojciec/clanko/goquery"
	"github.com/fwojciec/clanko/htmltomarkdown"
	clankohttp "github.com/fwojciec/clanko/http"
	"github.com/fwojciec/clanko/pandoc"
	"github.com/fwojciec/clanko/scrape"
	clankoslog "github.com/fwojciec/clanko/slog"
	"github.com/fwojciec/clanko/sqlite"
	"github.com/fwojciec/clanko/yaml"
	"github.com/joho/godotenv"
)

// DefaultUserAgent is sent unless the config file sets user_agent.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) clanko"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env is fine; credentials may come from the real environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error: failed to load .env: %v\n", err)
		os.Exit(1)
	}

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Sources replaces the built-in source descriptors when set.
	Sources []*clanko.Source

	// PandocRunner replaces the pandoc invocation when set.
	PandocRunner pandoc.Runner

	// SQLite archive, opened only when --archive is given.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Failures are reported on
// stderr as "error: <message>" and returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := m.run(ctx, args, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorMessage(err))
	}
	return err
}

func (m *Main) run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("clanko"),
		kong.Description("Download a paywalled news article and save it as a document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no article URL provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if cli.List {
		if cli.Archive == "" {
			return clanko.Errorf(clanko.EINVALID, "--list requires --archive")
		}
		if err := m.openArchive(cli.Archive); err != nil {
			return err
		}
		defer m.Close()
		return (&ListCmd{}).Run(&Dependencies{
			Ctx:      ctx,
			Stdout:   stdout,
			Stderr:   stderr,
			Articles: sqlite.NewArticleService(m.DB),
		})
	}
	if cli.URL == "" {
		return fmt.Errorf("no article URL provided")
	}

	registry, cfg, err := m.loadSources(cli.Config)
	if err != nil {
		return err
	}

	userAgent := DefaultUserAgent
	if cfg.UserAgent != "" {
		userAgent = cfg.UserAgent
	}
	sessionOpts := []clankohttp.Option{
		clankohttp.WithTimeout(cli.Timeout),
		clankohttp.WithUserAgent(userAgent),
	}
	fetcher := clankohttp.NewFetcher(clankohttp.WithSessionFunc(func(src *clanko.Source) clanko.Session {
		return clankoslog.NewLoggingSession(clankohttp.NewSession(src.Login, sessionOpts...), logger)
	}))

	extractor := goquery.NewExtractor(goquery.WithConverter(htmltomarkdown.NewConverter()))

	scraper := &scrape.Scraper{
		Sources:   clankoslog.NewLoggingRegistry(registry, logger),
		Fetcher:   clankoslog.NewLoggingFetcher(fetcher, logger),
		Extractor: clankoslog.NewLoggingExtractor(extractor, logger),
	}

	if cli.Archive != "" {
		if err := m.openArchive(cli.Archive); err != nil {
			return err
		}
		defer m.Close()
		scraper.Archive = clankoslog.NewLoggingArticleService(sqlite.NewArticleService(m.DB), logger)
	}

	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Scraper:  scraper,
		Exporter: clankoslog.NewLoggingExporter(m.exporter(cli), logger),
	}

	cmd := &FetchCmd{URL: cli.URL}
	return cmd.Run(deps)
}

func (m *Main) openArchive(path string) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return clanko.Errorf(clanko.EINTERNAL, "failed to open archive at %q: %v", path, err)
	}
	return nil
}

// loadSources combines the built-in descriptors with the user's config file
// and validates every selector up front.
func (m *Main) loadSources(configPath string) (*clanko.Registry, *yaml.Config, error) {
	sources := m.Sources
	if sources == nil {
		var err error
		if sources, err = yaml.DefaultSources(); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := yaml.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if sources, err = cfg.Apply(sources); err != nil {
		return nil, nil, err
	}

	for _, src := range sources {
		if err := goquery.ValidateSelectors(src); err != nil {
			return nil, nil, err
		}
	}

	registry, err := clanko.NewRegistry(sources...)
	if err != nil {
		return nil, nil, err
	}
	return registry, cfg, nil
}

func (m *Main) exporter(cli *CLI) clanko.Exporter {
	if cli.Format == FormatMarkdown {
		return fs.NewWriter(cli.Output)
	}

	var opts []pandoc.Option
	if m.PandocRunner != nil {
		opts = append(opts, pandoc.WithRunner(m.PandocRunner))
	}
	return pandoc.NewExporter(cli.Output, append(opts, pandoc.WithExtension(cli.Format))...)
}

// errorMessage returns the user-facing message of err. Unlike
// clanko.ErrorMessage it keeps the text of foreign errors such as flag
// parsing failures.
func errorMessage(err error) string {
	var e *clanko.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
