// Copyright (C) 2015  Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package monitor provides an embedded HTTP server to expose
// metrics for monitoring
package monitor

import (
	_ "expvar" // Go documentation recommended usage
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // Go documentation recommended usage

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents a monitoring server
type Server interface {
	Run()
}

// server contains information for the monitoring server
type server struct {
	// Server name e.g. host[:port]
	serverName string
	mux        *http.ServeMux
}

// NewMonitorServer creates a new server struct, serving /debug/vars, /debug/pprof, and
// /metrics on serverName.
func NewMonitorServer(serverName string) Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug", debugHandler)
	// expvar and net/http/pprof register themselves on http.DefaultServeMux via init;
	// forward their specific patterns through rather than exposing the whole default mux.
	mux.Handle("/debug/vars", http.DefaultServeMux)
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	mux.Handle("/debug/loglevel", newLogsetSrv())
	mux.Handle("/metrics", promhttp.Handler())
	return &server{
		serverName: serverName,
		mux:        mux,
	}
}

func debugHandler(w http.ResponseWriter, r *http.Request) {
	indexTmpl := `<html>
	<head>
	<title>/debug</title>
	</head>
	<body>
	<p>/debug</p>
	<div><a href="/debug/vars">vars</a></div>
	<div><a href="/debug/pprof">pprof</a></div>
	<div><a href="/metrics">metrics</a></div>
	</body>
	</html>
	`
	fmt.Fprintf(w, indexTmpl)
}

// Run sets up the HTTP server and any handlers
func (s *server) Run() {
	// monitoring server
	err := http.ListenAndServe(s.serverName, s.mux)
	if err != nil {
		log.Printf("Could not start monitor server: %s", err)
	}
}
