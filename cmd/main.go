package main

import (
	"flag"
	"os"

	"github.com/richard-senior/smoothcurve/internal/config"
	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/climate"
	"github.com/richard-senior/smoothcurve/pkg/server"
	"github.com/richard-senior/smoothcurve/pkg/tools"
	"github.com/richard-senior/smoothcurve/pkg/transport"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	// stdout carries JSON-RPC, so console logging is not allowed here
	cfg.Log.Output = "f"
	if err := cfg.ApplyLogging(); err != nil {
		logger.Fatal("Failed to configure logging", err)
	}

	logger.Info("Starting smoothcurve MCP server")

	store, err := climate.OpenStore(cfg.Store.Path)
	if err != nil {
		logger.Fatal("Failed to open store", err)
	}
	defer store.Close()

	if n, err := store.Count(); err != nil {
		logger.Fatal("Failed to read store", err)
	} else if n == 0 {
		dataset, err := climate.Sample()
		if err != nil {
			logger.Fatal("Failed to load climate dataset", err)
		}
		if err := store.Seed(dataset); err != nil {
			logger.Fatal("Failed to seed store", err)
		}
	}

	tb, err := tools.NewToolbox(cfg, store)
	if err != nil {
		logger.Fatal("Failed to create tools", err)
	}

	s := server.New(transport.NewStdioTransport(), tb)
	if err := s.Start(); err != nil {
		logger.Error("Server error:", err)
		store.Close()
		os.Exit(1)
	}

	logger.Info("MCP server shutting down")
}
