package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spooky-finn/go-cryptofeed/config"
	"github.com/spooky-finn/go-cryptofeed/domain"
	"github.com/spooky-finn/go-cryptofeed/helpers"
	promclient "github.com/spooky-finn/go-cryptofeed/infrastructure/prometheus"
	"github.com/spooky-finn/go-cryptofeed/provider"
	"github.com/spooky-finn/go-cryptofeed/provider/krakenfutures"
	"github.com/spooky-finn/go-cryptofeed/usecase"
)

var logger = log.New(os.Stdout, "[main] ", log.LstdFlags)

func logCallback(ctx context.Context, event domain.Event) error {
	logger.Printf("%s: %s", event.Kind(), helpers.ToJsonString(event))
	return nil
}

func main() {
	configPath := flag.String("config", "", "path to the YAML config (defaults to $CRYPTOFEED_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cm := provider.NewConnectionManager()
	for id, feedConfig := range cfg.Feeds {
		if id != krakenfutures.ID {
			logger.Printf("no adapter for feed %s, skipping", id)
			continue
		}

		callbacks := map[domain.EventKind][]domain.Callback{}
		for _, ch := range feedConfig.Channels {
			callbacks[domain.EventKind(ch)] = []domain.Callback{logCallback}
		}
		for ch := range feedConfig.ChannelConfig {
			callbacks[domain.EventKind(ch)] = []domain.Callback{logCallback}
		}

		feed, err := krakenfutures.New(ctx, krakenfutures.Options{
			UUID:      usecase.NewFeedUUID(id),
			Config:    feedConfig,
			Callbacks: callbacks,
		})
		if err != nil {
			logger.Fatalf("failed to create feed %s: %s", id, err)
		}
		cm.Add(feed)
	}

	if cm.FeedCount() == 0 {
		logger.Fatalf("no feeds configured")
	}

	go func() {
		if err := promclient.StartPromClientServer(cfg.MetricsAddr); err != nil {
			logger.Printf("metrics server stopped: %s", err)
		}
	}()

	if err := cm.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("feeds stopped: %s", err)
	}
}
