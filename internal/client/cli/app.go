package cli

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/racfadmin/internal/client/services"
	"github.com/dmitrijs2005/racfadmin/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	ModeUnknown Mode = "?"
)

// Exporter uploads a snapshot and returns its key and record count.
type Exporter interface {
	Export(ctx context.Context) (string, int, error)
}

type App struct {
	users    services.UserService
	prober   services.Prober
	exporter Exporter
	log      logging.Logger

	reader      *bufio.Reader
	out         io.Writer
	prompts     io.Writer
	interactive bool

	mu   sync.RWMutex
	mode Mode
}

// NewApp builds the CLI around its collaborators. exporter may be nil, in
// which case the export command reports that it is not configured.
func NewApp(users services.UserService, prober services.Prober, exporter Exporter, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop{}
	}
	a := &App{
		users:       users,
		prober:      prober,
		exporter:    exporter,
		log:         log,
		reader:      bufio.NewReader(in),
		out:         out,
		prompts:     io.Discard,
		interactive: interactive(in),
		mode:        ModeUnknown,
	}
	if a.interactive {
		a.prompts = out
	}
	return a
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(ctx, "switched mode", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) getStatus() string {
	return "(" + renderMode(a.getMode()) + ")"
}

func (a *App) checkMode(ctx context.Context) {
	if a.prober.Available(ctx) {
		a.setMode(ctx, ModeOnline)
	} else {
		a.setMode(ctx, ModeOffline)
	}
}

// StartOnlineStatusWatcher refreshes the mode badge every interval until
// ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkMode(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context, statusInterval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkMode(ctx)
	if statusInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, statusInterval)
	}

	if a.interactive {
		printlnFn("racfadmin (type 'help' for commands)")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}
