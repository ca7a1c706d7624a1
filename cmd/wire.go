package cmd

import (
	"fmt"
	"os"

	feedjson "github.com/bnema/streams-cli/internal/adapters/feed/json"
	streamsrender "github.com/bnema/streams-cli/internal/adapters/render/streams"
	tomlrepo "github.com/bnema/streams-cli/internal/adapters/repo/toml"
	"github.com/bnema/streams-cli/internal/application"
	"github.com/bnema/streams-cli/internal/config"
	"github.com/bnema/streams-cli/internal/domain"
	"github.com/bnema/streams-cli/internal/logging"
	"github.com/bnema/streams-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type app struct {
	service       *application.StreamService
	config        config.Config
	log           *logrus.Logger
	clock         ports.Clock
	renderOptions streamsrender.RenderOptions
	listRenderer  func([]application.StreamView, streamsrender.RenderOptions) (string, error)
	showRenderer  func(application.StreamView, streamsrender.RenderOptions) (string, error)
	cardsRenderer func([]domain.FeatureCard) (string, error)
	readFeed      func(string) ([]domain.Stream, error)
}

func wireApp() (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire stream repository: %w", err)
	}

	clock := ports.SystemClock{}

	return &app{
		service:       application.NewStreamService(repo, clock, logger),
		config:        cfg,
		log:           logger,
		clock:         clock,
		renderOptions: streamsrender.RenderOptions{ExplorerURL: cfg.ExplorerURL},
		listRenderer:  streamsrender.Render,
		showRenderer:  streamsrender.RenderDetail,
		cardsRenderer: streamsrender.RenderCards,
		readFeed:      feedjson.ReadFile,
	}, nil
}
