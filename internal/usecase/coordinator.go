package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// ErrUnknownOperation is returned when no strategy is registered for the
// requested operation kind. This is a wiring bug, not a caller error.
var ErrUnknownOperation = errors.New("unknown ledger operation")

// Coordinator owns the atomic scope of every ledger operation. It opens one
// transaction, dispatches to the registered strategy, commits on success and
// rolls back on any error, re-propagating it unchanged. Events returned by
// the strategy are handed to the sink only after commit, fire-and-forget.
type Coordinator struct {
	txManager  TransactionManager
	strategies map[OperationKind]Strategy
	sink       EventSink
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	retrier    Retrier
}

// NewCoordinator creates a Coordinator with an empty strategy registry.
func NewCoordinator(txManager TransactionManager, sink EventSink, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		txManager:  txManager,
		strategies: make(map[OperationKind]Strategy),
		sink:       sink,
		logger:     logger,
	}
}

// Register binds a strategy to an operation kind.
func (c *Coordinator) Register(kind OperationKind, strategy Strategy) *Coordinator {
	c.strategies[kind] = strategy
	return c
}

// WithMetrics attaches operation metrics.
func (c *Coordinator) WithMetrics(m *metrics.Metrics) *Coordinator {
	c.metrics = m
	return c
}

// WithRetrier attaches a retrier for transient database failures. The whole
// transaction is re-run on retry; strategies hold no state across attempts.
func (c *Coordinator) WithRetrier(r Retrier) *Coordinator {
	c.retrier = r
	return c
}

// Execute runs one ledger operation end to end and returns the entries it
// created.
func (c *Coordinator) Execute(ctx context.Context, kind OperationKind, op OperationContext) ([]*domain.Entry, error) {
	strategy, ok := c.strategies[kind]
	if !ok {
		return nil, ErrUnknownOperation
	}

	var result *Result

	start := time.Now()

	attempt := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := c.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		res, err := strategy.Execute(txCtx, op, tx)
		if err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		result = res

		return nil
	}

	var err error
	if c.retrier != nil {
		err = c.retrier.Retry(ctx, attempt)
	} else {
		err = attempt()
	}

	if err != nil {
		if c.metrics != nil {
			c.metrics.OperationErrors.WithLabelValues(string(kind)).Inc()
		}

		return nil, err
	}

	if c.metrics != nil {
		c.metrics.OperationsCompleted.WithLabelValues(string(kind)).Inc()
		c.metrics.OperationDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	}

	c.publishEvents(result.Events)

	return result.Entries, nil
}

// publishEvents submits each event to the sink as an independent,
// non-blocking call. Failures are logged and swallowed: the ledger state is
// already committed and the sink can never influence it.
func (c *Coordinator) publishEvents(events []domain.Event) {
	for _, event := range events {
		go func(ev domain.Event) {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()

			if err := c.sink.Publish(ctx, ev); err != nil {
				if c.metrics != nil {
					c.metrics.EventPublishFailures.Inc()
				}

				c.logger.Error().
					Err(err).
					Str("event", ev.Event).
					Msg("failed to publish event")
			}
		}(event)
	}
}
