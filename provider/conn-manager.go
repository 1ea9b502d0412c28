package provider

import (
	"context"
	"errors"
	"sync"

	"github.com/spooky-finn/go-cryptofeed/domain"
	"github.com/spooky-finn/go-cryptofeed/usecase"
)

type feedConnection struct {
	adapter    domain.FeedAdapter
	client     *StreamClient
	maintainer *usecase.FeedMaintainer
}

// ConnectionManager runs independent feeds side by side. Feeds share nothing:
// each has its own connection, queue and processing goroutine.
type ConnectionManager struct {
	connections []*feedConnection
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{}
}

func (cm *ConnectionManager) Add(adapter domain.FeedAdapter) {
	maintainer := usecase.NewFeedMaintainer(adapter.ID(), adapter)
	cm.connections = append(cm.connections, &feedConnection{
		adapter:    adapter,
		client:     NewStreamClient(adapter, maintainer),
		maintainer: maintainer,
	})
}

func (cm *ConnectionManager) FeedCount() int {
	return len(cm.connections)
}

// Run dials every feed and processes their messages until ctx is done or a
// feed stops with an unrecoverable error.
func (cm *ConnectionManager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(len(cm.connections))
	for _, fc := range cm.connections {
		go cm.dial(fc, wg)
	}
	wg.Wait()

	errCh := make(chan error, len(cm.connections))
	for _, fc := range cm.connections {
		go func(fc *feedConnection) {
			errCh <- fc.maintainer.Run(ctx)
		}(fc)
	}

	var runErr error
	for range cm.connections {
		err := <-errCh
		if err != nil && !errors.Is(err, context.Canceled) && runErr == nil {
			logger.Printf("feed stopped: %s", err)
			runErr = err
			cancel()
		}
	}

	cm.Close()
	return runErr
}

func (cm *ConnectionManager) dial(fc *feedConnection, wg *sync.WaitGroup) {
	defer wg.Done()
	if err := fc.client.Connect(); err != nil {
		logger.Printf("failed to connect to %s: %s", fc.adapter.ID(), err)
	}
}

func (cm *ConnectionManager) Close() {
	for _, fc := range cm.connections {
		fc.client.Close()
	}
}
