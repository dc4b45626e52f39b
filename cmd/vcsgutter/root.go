package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/kateleext/vcsgutter/internal/command"
	"github.com/kateleext/vcsgutter/internal/config"
	"github.com/kateleext/vcsgutter/internal/git"
	"github.com/kateleext/vcsgutter/internal/gutter"
	"github.com/kateleext/vcsgutter/internal/icons"
	"github.com/kateleext/vcsgutter/internal/ui"
	"github.com/kateleext/vcsgutter/internal/view"
	"github.com/kateleext/vcsgutter/internal/watcher"
)

var log = commonlog.GetLogger("vcsgutter")

type options struct {
	configPath  string
	hostVersion int
	watch       bool
	tui         bool
	verbose     int
	logFile     string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "vcsgutter <file>",
		Short: "Show inserted, changed and deleted lines of a file against HEAD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(opts)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, opts, args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", config.DefaultPath(), "settings file")
	f.IntVar(&opts.hostVersion, "host-version", config.DefaultHostVersion, "host version used to resolve capabilities")
	f.BoolVarP(&opts.watch, "watch", "w", false, "re-run when the file or HEAD changes")
	f.BoolVarP(&opts.tui, "tui", "t", false, "open the terminal viewer")
	f.CountVarP(&opts.verbose, "verbose", "v", "log verbosity (repeat for more)")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	return cmd
}

func configureLogging(opts options) {
	if opts.logFile != "" {
		commonlog.Configure(opts.verbose, &opts.logFile)
		return
	}
	commonlog.Configure(opts.verbose, nil)
}

func run(ctx context.Context, opts options, file string, out io.Writer) error {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	caps := config.ResolveCapabilities(opts.hostVersion)
	if _, err := icons.EnsureThemeDir(settings.PackagesPath); err != nil {
		return err
	}

	doc, err := view.Open(file)
	if err != nil {
		return err
	}
	host := view.NewHost()
	host.SetActive(doc)

	differ := git.NewDiffer()
	repo, err := differ.Repository(ctx, doc.FileName())
	if err != nil {
		return err
	}

	registry := command.NewRegistry()
	registry.Register(command.Name, command.New(host, differ, settings, caps))

	var w *watcher.Watcher
	if opts.watch {
		baseline, err := repo.BaselinePaths(ctx)
		if err != nil {
			return err
		}
		w, err = watcher.New(settings.Debounce, append([]string{doc.FileName()}, baseline...)...)
		if err != nil {
			return err
		}
		w.Start()
		defer w.Close()
	}

	if opts.tui {
		uiOpts := ui.Options{Registry: registry, Repo: repo}
		if w != nil {
			uiOpts.Changes = w.Changes
		}
		p := tea.NewProgram(ui.New(doc, uiOpts), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()
		return err
	}

	if err := runOnce(ctx, registry, out); err != nil {
		return err
	}
	if w == nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case name := <-w.Changes:
			log.Infof("changed: %s", name)
			if err := doc.Reload(); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := runOnce(ctx, registry, out); err != nil {
				log.Errorf("%v", err)
			}
		case err := <-w.Errors:
			log.Warningf("watcher: %v", err)
		}
	}
}

func runOnce(ctx context.Context, registry *command.Registry, out io.Writer) error {
	res, err := registry.Execute(ctx, command.Name)
	if err != nil {
		return err
	}
	printResult(out, res)
	return nil
}

func printResult(out io.Writer, res command.Result) {
	for _, c := range gutter.Categories {
		lines := res.Lines(c)
		parts := make([]string, len(lines))
		for i, n := range lines {
			parts[i] = strconv.Itoa(n)
		}
		fmt.Fprintf(out, "%s: %s\n", c, strings.Join(parts, ","))
	}
}
