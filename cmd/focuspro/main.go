package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"focuspro/internal/bootstrap"
	"focuspro/internal/platform/config"
	"focuspro/internal/platform/gate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string

	root := &cobra.Command{
		Use:           "focuspro",
		Short:         "Personal focus session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", defaultDataPath(), "data directory")

	root.AddCommand(newTUICmd(&dataPath))
	root.AddCommand(newRunCmd(&dataPath))
	root.AddCommand(newQuickCmd(&dataPath))
	root.AddCommand(newStatsCmd(&dataPath))
	root.AddCommand(newGoalCmd(&dataPath))
	root.AddCommand(newPluginCmd(&dataPath))
	root.AddCommand(newActivateCmd(&dataPath))
	return root
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".focuspro")
}

func loadApp(dataPath string, opts ...bootstrap.Option) (*bootstrap.App, error) {
	cfg, err := config.New(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, opts...)
}

func newTUICmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focuspro terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

// ─── foreground session ──────────────────────────────────────────────────────

// sessionPrinter renders machine events on the run command's terminal. done
// closes on natural completion so the command can return.
type sessionPrinter struct {
	out  io.Writer
	done chan struct{}
	once sync.Once
}

func (p *sessionPrinter) Tick(remainingSeconds int) {
	_, _ = fmt.Fprintf(p.out, "\r  %02d:%02d remaining ", remainingSeconds/60, remainingSeconds%60)
}

func (p *sessionPrinter) Completed(durationMin int) {
	_, _ = fmt.Fprintf(p.out, "\nsession complete: %d min recorded\n", durationMin)
	p.once.Do(func() { close(p.done) })
}

func (p *sessionPrinter) GoalReached(goalHours int) {
	_, _ = fmt.Fprintf(p.out, "daily goal of %dh reached\n", goalHours)
}

func newRunCmd(dataPath *string) *cobra.Command {
	var category string
	var durationMin int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a focus session in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := &sessionPrinter{out: cmd.OutOrStdout(), done: make(chan struct{})}
			app, err := loadApp(*dataPath, bootstrap.WithSessionSink(printer))
			if err != nil {
				return err
			}
			defer app.Close()

			if category == "" {
				category = app.Config.Categories[0]
			}
			if durationMin == 0 {
				durationMin = app.Config.DurationMin
			}
			if _, err := app.SessionCLI.Start(context.Background(), category, durationMin); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focusing on %s for %d min (ctrl+c stops early)\n", category, durationMin)

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigs)

			select {
			case <-printer.done:
				return nil
			case <-sigs:
				out, err := app.SessionCLI.Stop(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nstopped early: %d min recorded\n", out.CompletedMin)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&category, "task", "", "task category (default: first configured)")
	cmd.Flags().IntVar(&durationMin, "duration", 0, "session length in minutes (default: configured)")
	return cmd
}

// ─── foreground quick timer ──────────────────────────────────────────────────

type quickPrinter struct {
	out  io.Writer
	done chan struct{}
	once sync.Once
}

func (p *quickPrinter) Tick(remainingSeconds int) {
	_, _ = fmt.Fprintf(p.out, "\r  %02d:%02d remaining ", remainingSeconds/60, remainingSeconds%60)
}

func (p *quickPrinter) Finished(totalSeconds int) {
	_, _ = fmt.Fprintf(p.out, "\ntime's up (%d s)\n", totalSeconds)
	p.once.Do(func() { close(p.done) })
}

func newQuickCmd(dataPath *string) *cobra.Command {
	var seconds int
	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Run a quick countdown timer in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := &quickPrinter{out: cmd.OutOrStdout(), done: make(chan struct{})}
			app, err := loadApp(*dataPath, bootstrap.WithQuickSink(printer))
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.QuickCLI.Start(context.Background(), seconds); err != nil {
				return err
			}

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigs)

			select {
			case <-printer.done:
				return nil
			case <-sigs:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\ntimer cancelled")
				return app.QuickCLI.Stop(context.Background())
			}
		},
	}
	cmd.Flags().IntVar(&seconds, "seconds", 0, "countdown length in seconds")
	_ = cmd.MarkFlagRequired("seconds")
	return cmd
}

// ─── stats ───────────────────────────────────────────────────────────────────

func newStatsCmd(dataPath *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Aggregated focus history"}

	var date string
	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Daily summary: minutes, goal progress, streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			summary, err := app.StatsCLI.Today(context.Background(), date)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d min, %d%% of %dh goal, streak %d days\n",
				summary.Date, summary.Minutes, summary.GoalPercent, summary.GoalHours, summary.StreakDays)
			return nil
		},
	}
	todayCmd.Flags().StringVar(&date, "date", "", "date in YYYY-MM-DD (default: today)")

	var start, end string
	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Per-day totals over an inclusive date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			days, err := app.StatsCLI.Range(context.Background(), start, end)
			if err != nil {
				return err
			}
			for _, day := range days {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %5d min\n", day.Date, day.Minutes)
			}
			return nil
		},
	}
	rangeCmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	rangeCmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	_ = rangeCmd.MarkFlagRequired("start")
	_ = rangeCmd.MarkFlagRequired("end")

	var asOf string
	streakCmd := &cobra.Command{
		Use:   "streak",
		Short: "Consecutive days meeting the daily goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			days, err := app.StatsCLI.Streak(context.Background(), asOf)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d days\n", days)
			return nil
		},
	}
	streakCmd.Flags().StringVar(&asOf, "as-of", "", "count back from this date YYYY-MM-DD (default: today)")

	var kind, customStart, customEnd string
	var asJSON bool
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Per-day, per-category totals over a named range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			rows, err := app.StatsCLI.Report(context.Background(), kind, customStart, customEnd)
			if err != nil {
				return err
			}
			if asJSON {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			for _, row := range rows {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %5d min\n", row.Date, row.Category, row.Minutes)
			}
			return nil
		},
	}
	reportCmd.Flags().StringVar(&kind, "range", "week", "range: week|month|year|custom|default")
	reportCmd.Flags().StringVar(&customStart, "start", "", "custom range start YYYY-MM-DD")
	reportCmd.Flags().StringVar(&customEnd, "end", "", "custom range end YYYY-MM-DD")
	reportCmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")

	stats.AddCommand(todayCmd, rangeCmd, streakCmd, reportCmd)
	return stats
}

// ─── goal ────────────────────────────────────────────────────────────────────

func newGoalCmd(dataPath *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Daily focus goal"}

	goal.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the daily goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SettingsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daily goal: %dh\n", out.Hours)
			return nil
		},
	})

	goal.AddCommand(&cobra.Command{
		Use:   "set <hours>",
		Short: "Set the daily goal in hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("hours must be a number: %q", args[0])
			}
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SettingsCLI.Set(context.Background(), hours); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daily goal set to %dh\n", hours)
			return nil
		},
	})

	return goal
}

// ─── plugins ─────────────────────────────────────────────────────────────────

func newPluginCmd(dataPath *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Notifier plugin commands"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed notifier plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			plugins, err := app.NotifyCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins installed")
				return nil
			}
			for _, p := range plugins {
				state := "enabled"
				if !p.Enabled {
					state = "disabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-8s %-8s events=%v\n", p.Name, p.Version, state, p.Events)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check each plugin binary and handshake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			results, err := app.NotifyCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.OK {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s ok\n", r.Name)
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s FAIL: %s\n", r.Name, r.Detail)
				}
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "test <name>",
		Short: "Send a synthetic notification through one plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.NotifyCLI.Test(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "delivered test notification to %s\n", args[0])
			return nil
		},
	})

	return plugin
}

// ─── activate ────────────────────────────────────────────────────────────────

func newActivateCmd(dataPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Bring a running instance to the front",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataPath)
			if err != nil {
				return err
			}
			answered, err := gate.Activate(cfg.GateAddr)
			if err != nil {
				return err
			}
			if !answered {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no running instance")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "activated running instance")
			return nil
		},
	}
}
