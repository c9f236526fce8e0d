// qrun
// Copyright (C) 2024-2026+ the qrun contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// qrun is a thin driver over the qgraph library. A real pipeline embeds
// qgraph directly and declares its own Functions in Go; this binary wires
// the CLI flags to the library and runs whatever Function set its caller
// registered through Register.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"net/http"

	"github.com/scibatch/qrun/cli"
	cliutil "github.com/scibatch/qrun/cli/util"
	"github.com/scibatch/qrun/dotgraph"
	"github.com/scibatch/qrun/engine"
	"github.com/scibatch/qrun/engine/notify"
	"github.com/scibatch/qrun/engine/qgraph"
	"github.com/scibatch/qrun/engine/runner"
	"github.com/scibatch/qrun/util/semaphore"
)

// registered holds whatever Functions the embedding program declared
// before calling main, via Register. A bare `go run ./cmd/qrun` with no
// embedder has nothing to schedule and just reports an empty plan.
var registered []engine.Function

// Register adds fn to the set this binary will build into a graph. This is
// package main, so only files added to this package can call it, typically
// from an init().
func Register(fn engine.Function) { registered = append(registered, fn) }

func main() {
	os.Exit(run())
}

func run() int {
	args := cli.Parse()
	data := cliutil.New(args)

	g := qgraph.New(data.Logf)
	for _, fn := range registered {
		if err := g.Add(fn); err != nil {
			data.Logf("add: %v", err)
			return 1
		}
	}
	g.FillIn()
	g.Prune()

	if n, err := g.Validate(); err != nil {
		data.Logf("validate: %d missing fields, errors:\n%v", n, err)
		return 1
	}

	if args.Dot != "" {
		if err := writeDot(args.Dot, g); err != nil {
			data.Logf("dot: %v", err)
		}
	}

	if err := g.Rewrite(); err != nil {
		data.Logf("rewrite: %v", err)
		return 1
	}

	if args.ExpandedDot != "" {
		if err := writeDot(args.ExpandedDot, g); err != nil {
			data.Logf("expandedDot: %v", err)
		}
	}

	fsys := afero.NewOsFs()
	g.ClassifyForRestart(fsys, args.StartFromScratch)

	if !args.Run {
		for _, line := range qgraph.RenderAll(g.Summarize()) {
			fmt.Println(line)
		}
		return 0
	}

	reg := prometheus.NewRegistry()
	if metrics, err := qgraph.NewMetrics(reg); err == nil {
		g.WithMetrics(metrics)
		if args.MetricsAddr != "" {
			serveMetrics(args.MetricsAddr, reg, data.Logf)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel, data.Logf)

	var slots *semaphore.Semaphore
	if args.JobRunner == "" || args.JobRunner == string(runner.Local) {
		slots = semaphore.NewSemaphore(args.LocalSlots)
		defer slots.Close()
	}

	factory := func(fn engine.Function) (engine.JobRunner, error) {
		return runner.New(fn, runner.Options{
			Backend: runner.Backend(args.JobRunner),
			Queue:   args.JobQueue,
			Logf:    data.Logf,
			Slots:   slots,
		})
	}

	notifier := resolveNotifier(args)
	g.Notifier = notifier

	err := g.Run(ctx, factory)
	qgraph.DefaultRegistry.Shutdown(data.Logf)

	summaries := g.Summarize()
	body := ""
	for _, line := range qgraph.RenderAll(summaries) {
		body += line + "\n"
	}
	failed := anyFailed(summaries)
	subject := "qrun: success"
	if failed || err != nil {
		subject = "qrun: failed"
	}
	if nerr := notifier.Notify(subject, body); nerr != nil {
		data.Logf("notify: %v", nerr)
	}

	fmt.Print(body)
	if err != nil {
		data.Logf("run: %v", err)
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

func anyFailed(summaries []qgraph.GroupStatus) bool {
	for _, gs := range summaries {
		if gs.Overall == engine.Failed {
			return true
		}
	}
	return false
}

func resolveNotifier(args *cli.Args) notify.Notifier {
	if args.StatusEmailTo == "" {
		return notify.NopNotifier{}
	}
	return notify.SMTPNotifier{
		Addr: args.SMTPAddr,
		From: args.StatusEmailFrom,
		To:   []string{args.StatusEmailTo},
	}
}

func writeDot(path string, g *qgraph.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dotgraph.Write(f, g.Pgraph())
}

func handleSignals(cancel context.CancelFunc, logf func(string, ...interface{})) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logf("received shutdown signal")
	cancel()
	qgraph.DefaultRegistry.Shutdown(logf)
}

func serveMetrics(addr string, reg *prometheus.Registry, logf func(string, ...interface{})) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logf("metrics server: %v", err)
		}
	}()
}
