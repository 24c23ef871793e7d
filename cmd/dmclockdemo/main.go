/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command dmclockdemo drives a small pull-mode scheduler against a handful of synthetic clients, logging
// every dispatch, to demonstrate the reservation/weight/limit arbitration without any network transport.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	k8sclock "k8s.io/utils/clock"

	"github.com/foodotbar/dmclock"
	"github.com/foodotbar/dmclock/metrics"
)

var (
	numRounds   = flag.Int("rounds", 500, "number of pull_request calls to run")
	allowBreak  = flag.Bool("allow-limit-break", false, "dispatch past a client's limit when nothing else is schedulable")
	useHeap     = flag.Bool("use-heap-backing", false, "use the indexed binary heap priority index backing instead of the vector backing")
	metricsAddr = flag.String("metrics-bind-address", "", "if set, serve Prometheus metrics on this address (e.g. :8080) until the run completes")
)

// clientParams is the fixed set of synthetic clients this demo submits for, matching the shape of scenario
// S1 in the dmClock tagging/selection design: two clients competing purely on reservation.
var clientParams = map[string]dmclock.ClientInfo{
	"tenant-a": dmclock.NewClientInfo(2, 1, 10),
	"tenant-b": dmclock.NewClientInfo(1, 1, 10),
}

func main() {
	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	logger := zap.New(zap.UseFlagOptions(&opts))
	ctrl.SetLogger(logger)

	if err := run(logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger logr.Logger) error {
	clk := k8sclock.RealClock{}

	clientInfoFn := func(client string) dmclock.ClientInfo {
		info, ok := clientParams[client]
		if !ok {
			info = dmclock.NewClientInfo(1, 1, 0)
		}
		return info
	}

	cfg := dmclock.Config{}
	cfg.AllowLimitBreak = *allowBreak
	cfg.UseHeapBacking = *useHeap

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		cfg.Recorder = metrics.NewPrometheusRecorder(reg)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error(err, "metrics server exited")
			}
		}()
		defer server.Close()
	}

	sched, err := dmclock.New[string, string](clientInfoFn, cfg, clk, logger.WithName("dmclockdemo"))
	if err != nil {
		return err
	}
	defer sched.Close()

	for client := range clientParams {
		for i := 0; i < 100; i++ {
			req := fmt.Sprintf("%s-req-%d", client, i)
			if err := sched.AddRequest(req, client, dmclock.ReqParams{}, sched.Now(), 0); err != nil {
				return err
			}
		}
	}

	counts := map[string]int{}
	for i := 0; i < *numRounds; i++ {
		outcome := sched.PullRequest()
		switch outcome.Kind {
		case dmclock.OutcomeReturning:
			counts[outcome.Client]++
			logger.Info("dispatched", "client", outcome.Client, "request", outcome.Request, "phase", outcome.Phase.String())
		case dmclock.OutcomeFuture:
			logger.Info("nothing ready", "wait_until", outcome.FutureTime)
		case dmclock.OutcomeNone:
			logger.Info("idle, nothing pending")
		}
	}

	logger.Info("summary",
		"dispatches", counts,
		"reserv_sched_count", sched.ReservSchedCount(),
		"prop_sched_count", sched.PropSchedCount(),
		"limit_break_sched_count", sched.LimitBreakSchedCount())
	return nil
}
