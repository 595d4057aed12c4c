package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/h0rv/hdesk/internal/auth"
	"github.com/h0rv/hdesk/internal/config"
	"github.com/h0rv/hdesk/internal/domain"
	"github.com/h0rv/hdesk/internal/export"
	"github.com/h0rv/hdesk/internal/helpdesk"
	"github.com/h0rv/hdesk/internal/logging"
	"github.com/h0rv/hdesk/internal/store"
	"github.com/h0rv/hdesk/internal/tui"
)

var (
	// CLI flags
	configFlag   string
	baseURLFlag  string
	logLevelFlag string
	outFlag      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hdesk",
		Short: "Terminal UI for helpdesk ticket queues",
		Long: `hdesk is a terminal user interface for a helpdesk ticket list.

Select tickets with space, then use bulk actions (D delete, C close).
Every destructive action asks for confirmation first.

Authentication:
  1. Config file: token in ~/.config/hdesk/config.yaml
  2. Environment variable: Set HDESK_TOKEN
  3. Token file: ~/.config/hdesk/token`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Helpdesk base URL, e.g. https://support.example.com/helpdesk")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	exportCmd := &cobra.Command{
		Use:       "export csv|pdf",
		Short:     "Export all tickets without starting the UI",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"csv", "pdf"},
		RunE:      runExport,
	}
	exportCmd.Flags().StringVar(&outFlag, "out", "", "Output directory (defaults to export.dir)")
	rootCmd.AddCommand(exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration from defaults, file, env and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	if configFlag != "" {
		loader.SetConfigFile(configFlag)
	}
	if err := loader.BindFlag("base_url", cmd.Flag("base-url")); err != nil {
		return nil, err
	}
	if err := loader.BindFlag("logging.level", cmd.Flag("log-level")); err != nil {
		return nil, err
	}
	return loader.Load()
}

// newClient creates the helpdesk client, resolving the API token.
func newClient(cfg *config.Config) (*helpdesk.Client, error) {
	token, err := auth.GetToken(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	client, err := helpdesk.New(cfg.BaseURL, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create helpdesk client: %w", err)
	}
	return client, nil
}

// pdfOptions maps the export config onto PDF style options.
func pdfOptions(cfg config.ExportConfig) []export.PDFOption {
	opts := []export.PDFOption{export.WithTheme(cfg.Theme)}
	if c, ok := rgb(cfg.HeaderFill); ok {
		opts = append(opts, export.WithHeaderFill(c))
	}
	if c, ok := rgb(cfg.StripeFill); ok {
		opts = append(opts, export.WithStripeFill(c))
	}
	return opts
}

func rgb(v []int) (export.RGB, bool) {
	if len(v) != 3 {
		return export.RGB{}, false
	}
	return export.RGB{R: v[0], G: v[1], B: v[2]}, true
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to a file.
	var logOut io.Writer
	if cfg.Logging.File != "" {
		f, err := logging.OpenFile(cfg.Logging.File)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: logOut})

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	logging.Info().Str("base_url", client.BaseURL()).Msg("starting hdesk")

	s := store.New()
	ctx := context.Background()

	app := tui.NewAppModel(client, s, ctx, tui.ListOptions{
		Saver:      export.DirSaver{Dir: cfg.Export.Dir},
		PDFOptions: pdfOptions(cfg.Export),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: os.Stderr})

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	tickets, err := client.ListTickets(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list tickets: %w", err)
	}
	s := store.New()
	for i := range tickets {
		s.UpsertTickets([]*domain.Ticket{&tickets[i]})
	}
	records := export.TicketRecords(s.GetAllTickets())

	dir := cfg.Export.Dir
	if outFlag != "" {
		dir = outFlag
	}
	saver := export.DirSaver{Dir: dir}
	now := time.Now()

	var path string
	switch args[0] {
	case "csv":
		path, err = export.CSV(saver, export.Filename("tickets", "csv", now), domain.TicketColumns, records)
	case "pdf":
		title := "Tickets " + now.Format("2006-01-02 15:04")
		path, err = export.PDF(saver, export.Filename("tickets", "pdf", now), title, domain.TicketColumns, records, pdfOptions(cfg.Export)...)
	}
	if err != nil {
		return fmt.Errorf("%s export failed: %w", args[0], err)
	}

	logging.Info().Str("path", path).Int("tickets", len(records)).Msg("export written")
	fmt.Println(path)
	return nil
}
