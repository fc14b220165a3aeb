package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	notifyinadapter "focuspro/internal/modules/notify/adapter/in"
	notifyoutadapter "focuspro/internal/modules/notify/adapter/out"
	notifyservice "focuspro/internal/modules/notify/service"
	notifyusecase "focuspro/internal/modules/notify/usecase"
	quickinadapter "focuspro/internal/modules/quicktimer/adapter/in"
	quickoutadapter "focuspro/internal/modules/quicktimer/adapter/out"
	quickout "focuspro/internal/modules/quicktimer/port/out"
	quickservice "focuspro/internal/modules/quicktimer/service"
	quickusecase "focuspro/internal/modules/quicktimer/usecase"
	sessioninadapter "focuspro/internal/modules/session/adapter/in"
	sessionoutadapter "focuspro/internal/modules/session/adapter/out"
	sessionout "focuspro/internal/modules/session/port/out"
	sessionservice "focuspro/internal/modules/session/service"
	sessionusecase "focuspro/internal/modules/session/usecase"
	settingsinadapter "focuspro/internal/modules/settings/adapter/in"
	settingsoutadapter "focuspro/internal/modules/settings/adapter/out"
	settingsservice "focuspro/internal/modules/settings/service"
	settingsusecase "focuspro/internal/modules/settings/usecase"
	statsinadapter "focuspro/internal/modules/stats/adapter/in"
	statsoutadapter "focuspro/internal/modules/stats/adapter/out"
	statsservice "focuspro/internal/modules/stats/service"
	statsusecase "focuspro/internal/modules/stats/usecase"
	"focuspro/internal/platform/clock"
	"focuspro/internal/platform/config"
	"focuspro/internal/platform/gate"
	"focuspro/internal/platform/sqlitedb"
	uiapp "focuspro/internal/ui/app"
)

type App struct {
	Config config.Config

	SessionCLI  sessioninadapter.CLIHandler
	QuickCLI    quickinadapter.CLIHandler
	StatsCLI    statsinadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler
	NotifyCLI   notifyinadapter.CLIHandler

	db      *sql.DB
	machine *sessionservice.Machine
	timer   *quickservice.Timer
}

// Option customizes the wiring. Foreground commands use options to splice
// their progress printers into the event fan-out next to the notifier
// dispatcher.
type Option func(*options)

type options struct {
	sessionSinks []sessionout.EventSink
	quickSinks   []quickout.FinishSink
}

// WithSessionSink adds an extra observer of session machine events.
func WithSessionSink(sink sessionout.EventSink) Option {
	return func(o *options) { o.sessionSinks = append(o.sessionSinks, sink) }
}

// WithQuickSink adds an extra observer of quick timer events.
func WithQuickSink(sink quickout.FinishSink) Option {
	return func(o *options) { o.quickSinks = append(o.quickSinks, sink) }
}

// New wires every module.
func New(cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	clk := clock.SystemClock{}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	settingStore, err := settingsoutadapter.NewSQLiteSettingStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new setting store: %w", err)
	}
	settingsUC := settingsusecase.NewInteractor(settingsservice.NewService(settingStore))

	recordStore, err := sessionoutadapter.NewSQLiteRecordStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new record store: %w", err)
	}

	notifyUC := notifyusecase.NewInteractor(notifyservice.NewService(
		notifyoutadapter.NewFileManifestStore(cfg.PluginsPath),
		notifyoutadapter.NewGRPCHost(),
	))

	sinks := sessionoutadapter.MultiSink{sessionoutadapter.NewNotifySink(notifyUC)}
	sinks = append(sinks, o.sessionSinks...)

	machine := sessionservice.NewMachine(
		clk,
		recordStore,
		sessionoutadapter.NewGoalAdapter(settingsUC),
		sinks,
		cfg.Categories,
		cfg.DurationMin,
	)
	sessionUC := sessionusecase.NewInteractor(machine)

	quickSinks := quickoutadapter.MultiSink{quickoutadapter.NewNotifySink(notifyUC)}
	quickSinks = append(quickSinks, o.quickSinks...)
	timer := quickservice.NewTimer(clk, quickSinks)
	quickUC := quickusecase.NewInteractor(timer)

	statsUC := statsusecase.NewInteractor(statsservice.NewService(
		statsoutadapter.NewSQLiteReader(db),
		statsoutadapter.NewGoalAdapter(settingsUC),
		clk,
	))

	return &App{
		Config:      cfg,
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		QuickCLI:    quickinadapter.NewCLIHandler(quickUC),
		StatsCLI:    statsinadapter.NewCLIHandler(statsUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		NotifyCLI:   notifyinadapter.NewCLIHandler(notifyUC),
		db:          db,
		machine:     machine,
		timer:       timer,
	}, nil
}

// Close stops both timer loops and releases the database.
func (a *App) Close() error {
	a.machine.Close()
	a.timer.Close()
	return a.db.Close()
}

// RunTUI binds the single-instance gate and runs the terminal UI. When the
// gate address is already held the existing instance is activated instead and
// an error is returned so the process exits fast.
func RunTUI(app *App) error {
	listener := gate.NewListener(app.Config.GateAddr, nil)
	if err := listener.Bind(); err != nil {
		if answered, _ := gate.Activate(app.Config.GateAddr); answered {
			return fmt.Errorf("focuspro is already running; activated the existing instance")
		}
		return err
	}
	defer listener.Close()

	model := uiapp.NewModel(
		app.SessionCLI,
		app.QuickCLI,
		app.StatsCLI,
		app.StatsCLI,
		app.SettingsCLI,
		app.Config.Categories,
		app.Config.DurationMin,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener.SetOnActivate(func() { program.Send(uiapp.ActivatedMsg{}) })
	go func() { _ = listener.Serve(ctx) }()

	_, err := program.Run()
	return err
}
