// Package cli is the interactive front end of stampctl. It wires user
// commands to the session and stamp services and keeps the prompt's status
// line reconciled with the displayed credit balance, the live notice and the
// progress indicator.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/autodate/stampctl/internal/client/api"
	"github.com/autodate/stampctl/internal/client/config"
	"github.com/autodate/stampctl/internal/client/history"
	"github.com/autodate/stampctl/internal/client/intake"
	"github.com/autodate/stampctl/internal/client/services"
	"github.com/autodate/stampctl/internal/client/ui"
	"github.com/autodate/stampctl/internal/logging"
)

type App struct {
	config    *config.Config
	session   *services.SessionService
	stamp     *services.StampService
	selection *intake.Selection
	params    api.Params
	notifier  *ui.Notifier
	progress  *ui.Progress
	store     *history.Store
	logger    logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// defaultParams builds the initial form values: today's date and a fixed
// five-minute time window. The crop height starts at the service's usual 60.
func defaultParams(now time.Time) api.Params {
	return api.Params{
		Date:       now.Format("02/01/2006"),
		StartTime:  "09:00:00",
		EndTime:    "09:05:00",
		CropHeight: "60",
	}
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	charm := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	logger := logging.NewCharmLogger(charm)

	store, err := history.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(cfg.ServerAddr, cfg.RequestTimeout, cfg.StampTimeout)
	if err != nil {
		store.Close()
		return nil, err
	}

	notifier := ui.NewNotifier(charm)
	progress := ui.NewProgress()

	session := services.NewSessionService(apiClient, store.Metadata, notifier, logger)
	session.Restore(ctx)

	stamp := services.NewStampService(apiClient, notifier, progress, session, store.Jobs, cfg.OutputDir, logger)

	return &App{
		config:    cfg,
		session:   session,
		stamp:     stamp,
		selection: intake.NewSelection(),
		params:    defaultParams(time.Now()),
		notifier:  notifier,
		progress:  progress,
		store:     store,
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	fmt.Fprintln(a.out, "Welcome to stampctl (type 'help' for commands)")
	a.session.RefreshStatus(ctx)

	runREPL(ctx, a, a.statusLine, a.reader, a.out)
}

// statusLine renders the prompt decoration: credit balance (placeholder "?"
// when unknown), price per job when known, then progress and notice text.
func (a *App) statusLine() string {
	credits, price := a.session.CreditsDisplay()

	s := "credits " + credits
	if price != services.PricePlaceholder {
		s += " @ " + price
	}
	if msg, visible := a.progress.State(); visible {
		s += " | " + msg
	}
	if msg, _ := a.notifier.Current(); msg != "" {
		s += " | " + msg
	}
	return s
}
