package app

import (
	"io"
	"sync"

	"dropclassify/internal/logger"
)

type Lifecycle struct {
	logger    logger.Logger
	resources []io.Closer
	once      sync.Once
}

// NewLifecycle releases resources in reverse registration order on
// Shutdown.
func NewLifecycle(log logger.Logger, resources ...io.Closer) *Lifecycle {
	return &Lifecycle{
		logger:    log,
		resources: resources,
	}
}

// Shutdown is idempotent.
func (l *Lifecycle) Shutdown() {
	l.once.Do(func() {
		l.logger.Info("Lifecycle", "shutdown sequence initiated", map[string]interface{}{
			"resources": len(l.resources),
		})

		for i := len(l.resources) - 1; i >= 0; i-- {
			if err := l.resources[i].Close(); err != nil {
				l.logger.Error("Lifecycle", err, map[string]interface{}{
					"resource_index": i,
				})
			}
		}

		l.logger.Info("Lifecycle", "shutdown sequence completed", nil)
	})
}
