package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/amonks/noteit/api"
	"github.com/amonks/noteit/device"
	"github.com/amonks/noteit/internal/config"
	"github.com/amonks/noteit/internal/localstore"
	"github.com/amonks/noteit/internal/paths"
	"github.com/amonks/noteit/store"
)

// app is the wiring shared by every command that talks to the API.
type app struct {
	config *config.Config
	logger *slog.Logger
	device *device.Provider
	client *api.Client
	store  *store.Store
}

type appOptions struct {
	// logOutput receives log records. Nil means stderr.
	logOutput io.Writer
}

func openApp(opts appOptions) (*app, error) {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return nil, err
	}

	level, err := cfg.ResolveLogLevel(rootLogLevel)
	if err != nil {
		return nil, err
	}
	output := opts.logOutput
	if output == nil {
		output = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))

	provider, err := openDeviceProvider()
	if err != nil {
		return nil, err
	}

	client := api.NewClient(api.Options{
		BaseURL: cfg.ResolveAPIURL(rootAPIURL),
		Device:  provider,
		Logger:  logger,
	})
	logger.Debug("noteit starting", "api_url", client.BaseURL(), "device_id", client.DeviceID())

	return &app{
		config: cfg,
		logger: logger,
		device: provider,
		client: client,
		store:  store.New(client),
	}, nil
}

func openDeviceProvider() (*device.Provider, error) {
	dir, err := paths.ResolveWithDefault(rootStateDir, paths.DefaultStateDir)
	if err != nil {
		return nil, err
	}
	return device.New(localstore.New(dir)), nil
}
