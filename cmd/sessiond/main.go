// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// The sessiond command serves the login/servicio/logout/admin-clear HTTP facade over a
// linhash-backed session store, alongside a product catalog loaded from CSV and a
// Prometheus/debug monitoring surface.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristanetworks/glog"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/brevane/linhash/catalog"
	"github.com/brevane/linhash/config"
	"github.com/brevane/linhash/eventlog"
	gloglogger "github.com/brevane/linhash/glog"
	"github.com/brevane/linhash/httpapi"
	"github.com/brevane/linhash/linhash"
	"github.com/brevane/linhash/logger"
	"github.com/brevane/linhash/metrics"
	"github.com/brevane/linhash/monitor"
	"github.com/brevane/linhash/session"
)

var (
	configFlag        = flag.String("config", "", "Path to a YAML config file")
	listenFlag        = flag.String("listen", "", "Address to serve the session API on, e.g. :8080")
	monitorFlag       = flag.String("monitor", ":8081", "Address to serve /metrics and /debug on")
	catalogFlag       = flag.String("catalog", "", "Path to the product catalog CSV to load and watch")
	staticFlag        = flag.String("static", "", "Directory of static files to serve at /")
	bootstrap         = flag.Bool("bootstrap", false, "Log in the 20 canned demo users at startup")
	m0Flag            = flag.Uint64("m0", 0, "Initial logical bucket count for the session table (0 keeps the config/default value)")
	maxFillFactorFlag = flag.Float64("maxFillFactor", 0, "Load factor above which the session table splits (0 keeps the config/default value)")
	lowerBoundFlag    = flag.Float64("lowerBound", 0, "Load factor below which the session table merges (0 keeps the config/default value)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		glog.Fatalf("loading config %q: %v", *configFlag, err)
	}
	if *listenFlag != "" {
		cfg.Listen = *listenFlag
	}
	if *catalogFlag != "" {
		cfg.CatalogPath = *catalogFlag
	}
	if *staticFlag != "" {
		cfg.StaticDir = *staticFlag
	}
	if *m0Flag != 0 {
		cfg.M0 = *m0Flag
	}
	if *maxFillFactorFlag != 0 {
		cfg.MaxFillFactor = *maxFillFactorFlag
	}
	if *lowerBoundFlag != 0 {
		cfg.LowerBound = *lowerBoundFlag
	}

	log := logger.Logger(&gloglogger.Glog{})

	var sink eventlog.Sink = eventlog.NoopSink{}
	if cfg.Kafka.Enabled {
		kafkaSink, err := eventlog.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			glog.Fatalf("creating Kafka event sink: %v", err)
		}
		kafkaSink.Start()
		defer kafkaSink.Stop()
		sink = kafkaSink
	}

	store := session.New(time.Duration(cfg.SessionTTL), sink,
		linhash.WithM0[string, session.Session](cfg.M0),
		linhash.WithFillFactors[string, session.Session](cfg.LowerBound, cfg.MaxFillFactor))
	if *bootstrap {
		tokens := store.LoadBootstrapUsers()
		log.Infof("bootstrapped %d demo sessions", len(tokens))
	}

	collector := metrics.NewCollector(store)
	store.SetObservers(collector.ObserveSplit, collector.ObserveMerge)
	prometheus.MustRegister(collector)

	handler := httpapi.NewHandler(store, log, cfg.StaticDir)
	httpServer := &http.Server{Addr: cfg.Listen, Handler: handler}
	monitorServer := monitor.NewMonitorServer(*monitorFlag)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("sessiond: serving session API on %s", cfg.Listen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Infof("sessiond: serving monitoring on %s", *monitorFlag)
		// Run has no way to be stopped, so it is left running on its own goroutine and
		// this member of the group returns on cancellation instead.
		go monitorServer.Run()
		<-gCtx.Done()
		return nil
	})

	g.Go(func() error {
		return session.RunSweeper(gCtx, store, time.Duration(cfg.SweepInterval), log)
	})

	if cfg.CatalogPath != "" {
		w, err := catalog.NewWatcher(cfg.CatalogPath, log, func(t *linhash.Table[string, string]) {
			log.Infof("catalog %s reloaded: %d products", cfg.CatalogPath, t.Size())
		})
		if err != nil {
			glog.Fatalf("starting catalog watcher on %q: %v", cfg.CatalogPath, err)
		}
		g.Go(func() error {
			return w.Watch(gCtx)
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		glog.Fatal(err)
	}
}
