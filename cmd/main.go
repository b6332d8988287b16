package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/jonboulle/clockwork"

	"pomodoro/internal/config"
	"pomodoro/internal/core/history"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/effects"
	"pomodoro/internal/logfields"
	"pomodoro/internal/platform"
	"pomodoro/internal/scheduler"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/notify"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/window"
	"pomodoro/resources"
)

const (
	appName        = "Pomodoro"
	appID          = "com.pomodoro.timer"
	eventBuffer    = 32
	shutdownWindow = 3 * time.Second
)

func main() {
	cfg, err := config.Load(appName)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.Error(err))
		os.Exit(1)
	}
	setupLogging(cfg.Verbose)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		slog.Info("Another instance is running; asked it to show its window", logfields.Error(err))
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, fileStore := openStore(cfg)
	defer func() {
		_ = store.Close()
	}()

	durations, err := storage.LoadDurations(ctx, store)
	if err != nil {
		slog.Warn("Using default durations", logfields.Error(err))
	}
	ledger, err := storage.LoadHistory(ctx, store)
	if err != nil {
		slog.Warn("Starting with partial history", logfields.Error(err))
	}
	preference, err := storage.LoadTheme(ctx, store)
	if err != nil {
		slog.Warn("Using default theme", logfields.Error(err))
	}
	permission, err := storage.LoadPermission(ctx, store)
	if err != nil {
		slog.Warn("Notification permission reset", logfields.Error(err))
	}
	mode, err := storage.LoadMode(ctx, store)
	if err != nil {
		slog.Warn("Starting in focus mode", logfields.Error(err))
	}

	clock := clockwork.NewRealClock()
	keeper := timekeeper.New(durations, ledger, timekeeper.Config{Clock: clock, Mode: mode})

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))

	var (
		dispatcher  *effects.Dispatcher
		mainWindow  *window.Window
		prefsWindow *preferences.Window
		trayManager *tray.Manager
	)

	toggleRun := func() {
		if keeper.Snapshot().Running {
			keeper.Pause()
			return
		}
		keeper.Start()
	}
	showPreferences := func() {
		prefsWindow.UpdateSettings(preferences.FromDurations(keeper.Durations(), dispatcher.Permission()))
		prefsWindow.Show()
	}
	savePermission := func(permission effects.Permission) {
		dispatcher.SetPermission(permission)
		if err := storage.SavePermission(ctx, store, permission); err != nil {
			slog.Warn("Failed to save notification permission", logfields.Error(err))
		}
	}

	mainWindow = window.New(fyneApp, appName, window.Callbacks{
		OnSelectMode: keeper.SwitchMode,
		OnToggleRun:  toggleRun,
		OnReset:      keeper.Reset,
		OnToggleTheme: func() {
			preference = preference.Toggle()
			mainWindow.SetTheme(preference)
			if err := storage.SaveTheme(ctx, store, preference); err != nil {
				slog.Warn("Failed to save theme", logfields.Error(err))
			}
		},
		OnPreferences: showPreferences,
	})
	mainWindow.SetTheme(preference)

	dispatcher = effects.NewDispatcher(capabilities(fyneApp, mainWindow, func(allowed bool) {
		if allowed {
			savePermission(effects.PermissionGranted)
			return
		}
		savePermission(effects.PermissionDenied)
	}), permission, slog.Default())

	prefsWindow = preferences.New(fyneApp, preferences.FromDurations(keeper.Durations(), permission), func(settings preferences.Settings) {
		current := keeper.Durations()
		if updated := settings.ApplyTo(current); updated != current {
			keeper.UpdateDurations(updated)
		}
		savePermission(settings.Notifications)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, appName, tray.Icons{
			Active: resources.MustLogo(resources.LogoActive),
			Paused: resources.MustLogo(resources.LogoPaused),
		}, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnPreferences: showPreferences,
			OnToggleRun:   toggleRun,
			OnReset:       keeper.Reset,
			OnSelectMode:  keeper.SwitchMode,
			OnQuit:        fyneApp.Quit,
		})
	} else {
		slog.Info("System tray unsupported on this platform")
	}

	recorder := storage.NewRecorder(store, keeper, keeper.Durations(), mode, slog.Default())
	go recorder.Run(ctx, keeper.Subscribe(eventBuffer))
	go dispatcher.Run(ctx, keeper.Subscribe(eventBuffer))
	go renderEvents(keeper, keeper.Subscribe(eventBuffer), mainWindow, prefsWindow, trayManager)

	lifecycle := fyneApp.Lifecycle()
	lifecycle.SetOnEnteredForeground(func() { dispatcher.SetForeground(true) })
	lifecycle.SetOnExitedForeground(func() { dispatcher.SetForeground(false) })

	if cfg.WatchSettings && fileStore != nil {
		watcher := startWatcher(ctx, fileStore, keeper, recorder)
		if watcher != nil {
			defer func() {
				_ = watcher.Stop()
			}()
		}
	}

	jobs, err := startScheduler(ctx, clock, cfg.TickInterval, keeper, mainWindow)
	if err != nil {
		slog.Error("Failed to start timer", logfields.Error(err))
		os.Exit(1)
	}

	go guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	snapshot := keeper.Snapshot()
	mainWindow.RenderUnsafe(snapshot)
	mainWindow.SetSummaryUnsafe(keeper.Ledger().Summarize(keeper.Today()))
	if trayManager != nil {
		trayManager.Render(snapshot)
	}

	slog.Info("Pomodoro started",
		logfields.Path(cfg.DataDir),
		logfields.Store(cfg.Store),
		logfields.Mode(snapshot.Mode),
		logfields.RemainingS(snapshot.RemainingSeconds))
	mainWindow.Show()
	fyneApp.Run()
	shutdown(jobs, keeper, recorder)
	slog.Info("Pomodoro stopped")
}

// shutdown stops ticking, lets the recorder drain, then writes the ledger one
// last time. It runs before the deferred store.Close.
func shutdown(jobs *scheduler.Scheduler, keeper *timekeeper.TimeKeeper, recorder *storage.Recorder) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownWindow)
	defer cancel()

	if err := jobs.Stop(ctx); err != nil {
		slog.Warn("Scheduler did not stop cleanly", logfields.Error(err))
	}
	keeper.Close()
	if err := recorder.Wait(ctx); err != nil {
		slog.Warn("Recorder still busy at shutdown", logfields.Error(err))
	}
	if err := recorder.Flush(ctx); err != nil {
		slog.Warn("Failed to save history at shutdown", logfields.Error(err))
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openStore returns the configured store. fileStore is nil unless the file
// backend is in use. When the configured backend cannot be opened the app
// runs on an in-memory store so nothing is persisted but the timer works.
func openStore(cfg config.Config) (storage.Store, *storage.FileStore) {
	switch cfg.Store {
	case config.StoreSQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLitePath())
		if err == nil {
			return store, nil
		}
		slog.Warn("Failed to open sqlite store", logfields.Path(cfg.SQLitePath()), logfields.Error(err))
	default:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err == nil {
			return store, store
		}
		slog.Warn("Failed to open file store", logfields.Path(cfg.DataDir), logfields.Error(err))
	}

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		slog.Error("Failed to open in-memory store", logfields.Error(err))
		os.Exit(1)
	}
	slog.Warn("Settings and history will not be saved", logfields.Store("memory"))
	return store, nil
}

func capabilities(fyneApp fyne.App, mainWindow *window.Window, onAnswer func(bool)) effects.Capabilities {
	caps := effects.Capabilities{
		Notifier: notify.New(fyneApp),
		Prompt: func() {
			mainWindow.ConfirmNotifications(onAnswer)
		},
	}

	if sound, err := platform.NewSound(); err == nil {
		caps.Sound = sound
	} else {
		slog.Debug("Sound unavailable", logfields.Capability("sound"), logfields.Error(err))
	}

	if lock, err := platform.NewWakeLock(); err == nil {
		caps.WakeLock = lock
	} else {
		slog.Debug("Wake lock unavailable", logfields.Capability("wake_lock"), logfields.Error(err))
	}
	return caps
}

func startWatcher(ctx context.Context, fileStore *storage.FileStore, keeper *timekeeper.TimeKeeper, recorder *storage.Recorder) *storage.Watcher {
	watcher, err := storage.NewWatcher(fileStore, 0, func(durations model.Durations) {
		if durations == keeper.Durations() {
			return
		}
		recorder.MarkSaved(durations)
		keeper.UpdateDurations(durations)
		slog.Info("Durations reloaded from disk", logfields.Path(fileStore.Path(storage.KeySettings)))
	})
	if err != nil {
		slog.Warn("Settings file watching disabled", logfields.Error(err))
		return nil
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		slog.Warn("Settings file watching disabled", logfields.Error(err))
		return nil
	}
	return watcher
}

func startScheduler(ctx context.Context, clock clockwork.Clock, tick time.Duration, keeper *timekeeper.TimeKeeper, mainWindow *window.Window) (*scheduler.Scheduler, error) {
	jobs, err := scheduler.New(clock)
	if err != nil {
		return nil, err
	}
	if _, err := jobs.Every("timer-tick", tick, func() { keeper.Tick() }); err != nil {
		return nil, err
	}

	lastDay := history.DateKey(keeper.Today())
	if _, err := jobs.Every("wall-clock", time.Second, func() {
		now := keeper.Today()
		mainWindow.SetClock(now)
		if day := history.DateKey(now); day != lastDay {
			lastDay = day
			mainWindow.SetSummary(keeper.Ledger().Summarize(now))
		}
	}); err != nil {
		return nil, err
	}

	jobs.Start(ctx)
	return jobs, nil
}

// renderEvents mirrors engine events into the widgets. Widget updates are
// batched into one fyne.Do per event.
func renderEvents(keeper *timekeeper.TimeKeeper, events <-chan timekeeper.Event, mainWindow *window.Window, prefsWindow *preferences.Window, trayManager *tray.Manager) {
	shown := keeper.Durations()
	for event := range events {
		var summary *history.Summary
		if event.Type == timekeeper.EventComplete {
			value := keeper.Ledger().Summarize(keeper.Today())
			summary = &value
		}
		durationsChanged := event.Snapshot.Durations != shown
		shown = event.Snapshot.Durations

		fyne.Do(func() {
			mainWindow.RenderUnsafe(event.Snapshot)
			if trayManager != nil {
				trayManager.Render(event.Snapshot)
			}
			if summary != nil {
				mainWindow.SetSummaryUnsafe(*summary)
			}
			if durationsChanged {
				prefsWindow.SyncDurations(event.Snapshot.Durations)
			}
		})
	}
}
