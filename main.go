package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/llehouerou/statusline/internal/config"
	"github.com/llehouerou/statusline/internal/errmsg"
	"github.com/llehouerou/statusline/internal/format"
	"github.com/llehouerou/statusline/internal/icons"
	"github.com/llehouerou/statusline/internal/mpd"
	"github.com/llehouerou/statusline/internal/mpris"
	"github.com/llehouerou/statusline/internal/playback"
	"github.com/llehouerou/statusline/internal/refresh"
	"github.com/llehouerou/statusline/internal/waybar"
)

// app is everything parsed from the configuration at startup.
type app struct {
	sections refresh.Sections
	tooltip  format.Program
	opts     *format.Options
}

func build(cfg *config.Config) (*app, error) {
	set, err := icons.Parse(cfg.IconConfig())
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpIconsParse, err)
	}

	a := &app{opts: &format.Options{Icons: set, Default: cfg.DefaultPlaceholder}}
	templates := []struct {
		name string
		raw  string
		dst  *format.Program
	}{
		{"prefix", cfg.Format.Prefix, &a.sections.Prefix},
		{"main", cfg.Format.Main, &a.sections.Main},
		{"suffix", cfg.Format.Suffix, &a.sections.Suffix},
	}
	for _, t := range templates {
		if *t.dst, err = format.Parse(t.raw); err != nil {
			return nil, errmsg.WrapWith(errmsg.OpFormatParse, t.name, err)
		}
	}

	switch {
	case cfg.Tooltip.Format != "":
		if a.tooltip, err = format.Parse(cfg.Tooltip.Format); err != nil {
			return nil, errmsg.Wrap(errmsg.OpTooltipParse, err)
		}
	case cfg.Tooltip.Text != "":
		a.tooltip = format.Text(cfg.Tooltip.Text)
	}
	return a, nil
}

// printCheck shows the canonical form of each parsed template.
func printCheck(w io.Writer, a *app) {
	fmt.Fprintf(w, "prefix:  %q\n", a.sections.Prefix.String())
	fmt.Fprintf(w, "main:    %q\n", a.sections.Main.String())
	fmt.Fprintf(w, "suffix:  %q\n", a.sections.Suffix.String())
	fmt.Fprintf(w, "tooltip: %q\n", a.tooltip.String())
}

func openSource(cfg *config.Config) (playback.Source, error) {
	if cfg.Source == config.SourceMPRIS {
		src, err := mpris.New(cfg.MPRIS.Player)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return mpd.New(cfg.MPD), nil
}

// run polls src every interval and writes a status line whenever the
// output changes. A failed tick is logged and the previous line stays.
func run(ctx context.Context, cfg *config.Config, a *app, src playback.Source, out *waybar.Writer) {
	var ctrl *refresh.Controller

	step := func() error {
		change := refresh.ChangeAll
		if ctrl == nil {
			snap, err := src.Fetch()
			if err != nil {
				return errmsg.Wrap(errmsg.OpSourceFetch, err)
			}
			if ctrl, err = refresh.New(a.sections, a.opts, snap); err != nil {
				return tickError(err)
			}
		} else {
			var err error
			if change, err = ctrl.Poll(src); err != nil {
				return tickError(err)
			}
			slog.Debug("tick", "changed", change)
		}
		if _, err := out.Update(ctrl, change); err != nil {
			return errmsg.Wrap(errmsg.OpWrite, err)
		}
		return nil
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for {
		if err := step(); err != nil {
			slog.Error("tick failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tickError tells render failures of a section from source failures.
func tickError(err error) error {
	var renderErr *refresh.RenderError
	if errors.As(err, &renderErr) {
		return errmsg.WrapWith(errmsg.OpRender, renderErr.Section, renderErr.Err)
	}
	return errmsg.Wrap(errmsg.OpSourceFetch, err)
}

func main() {
	configPath := flag.String("config", "", "path to a config file, loaded after the default locations")
	check := flag.Bool("check", false, "validate the configuration, print the parsed templates and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel))

	a, err := build(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *check {
		printCheck(os.Stdout, a)
		return
	}

	src, err := openSource(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.FormatWith(errmsg.OpSourceOpen, cfg.Source, err))
		os.Exit(1)
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting", "source", cfg.Source, "interval", cfg.Interval)
	out := waybar.NewWriter(os.Stdout, a.tooltip, cfg.Output.MaxWidth)
	run(ctx, cfg, a, src, out)
	slog.Info("stopped")
}
