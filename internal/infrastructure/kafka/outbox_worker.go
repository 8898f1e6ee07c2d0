package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/catalogcraft/catalog-api/internal/cfg"
	"github.com/catalogcraft/catalog-api/internal/usecase"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/catalogcraft/catalog-api/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	reconnectDelay      = 2 * time.Second
	reconnectRetryDelay = 5 * time.Second

	// staleClaimAge — возраст PROCESSING-записи, после которого она считается
	// брошенной (воркер упал между claim и подтверждением) и возвращается в очередь.
	staleClaimAge = 5 * time.Minute
)

// OutboxWorker перекладывает события из таблицы outbox_events в Kafka.
// Просыпается по NOTIFY и по таймауту ожидания; на старте дочитывает
// накопившиеся PENDING-события, по таймауту подбирает брошенные PROCESSING.
type OutboxWorker struct {
	repo      usecase.OutboxEventRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	cfg       *cfg.OutboxCfg
	stop      chan struct{}
	wg        sync.WaitGroup
	dbConnStr string
}

func NewOutboxWorker(
	repo usecase.OutboxEventRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	cfg *cfg.OutboxCfg,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		cfg:       cfg,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

// Start поднимает две горутины: доставку и слушателя уведомлений.
// Останов — отмена ctx, затем Stop.
func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *OutboxWorker) run(ctx context.Context) {
	// События, накопившиеся пока сервис не работал
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drainAll(ctx)

	<-ctx.Done()
	w.logger.Infof("Worker stopped by context cancellation")
}

// drainAll разбирает очередь до первой пустой пачки.
func (w *OutboxWorker) drainAll(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		var err error
		conn, err = pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err = conn.Exec(ctx, "LISTEN "+usecase.OutboxChannel); err != nil {
			conn.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		w.logger.Infof("Subscribed to %q channel", usecase.OutboxChannel)
		return nil
	}

	if err := connect(); err != nil {
		w.logger.Warnf("Initial connect failed: %v", err)
		return
	}
	defer conn.Close(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, w.cfg.ListenTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		switch {
		case err == nil:
			if notif.Channel == usecase.OutboxChannel {
				w.logger.Debugf("Received outbox notification, draining outbox events")
				w.drainAll(ctx)
			}
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			// Плановый выход из ожидания: заодно подбираем брошенные события
			w.requeueStale(ctx)
		default:
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			conn.Close(ctx)

			time.Sleep(reconnectDelay)
			if err := connect(); err != nil {
				w.logger.Warnf("Reconnect failed: %v", err)
				time.Sleep(reconnectRetryDelay)
			}
		}
	}
}

// requeueStale возвращает зависшие PROCESSING-события в очередь
// и сразу разбирает её, если что-то нашлось.
func (w *OutboxWorker) requeueStale(ctx context.Context) {
	n, err := w.repo.RequeueStale(ctx, staleClaimAge)
	if err != nil {
		w.logger.Warnf("Requeue of stale events failed: %v", err)
		return
	}

	if n > 0 {
		w.logger.Infof("Requeued %d stale outbox events", n)
		w.drainAll(ctx)
	}
}

// processBatch забирает одну пачку и шлёт её событие за событием.
// Недоставленное событие не подтверждается и остаётся ждать requeue.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.cfg.BatchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.logger.Warnf("event %d (%s) not delivered: %v", event.ID, event.EventType, err)
			continue
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return true, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.AggregateID, event.EventType, event.Payload))
	if err == nil {
		return nil
	}

	if isRetryableError(err) {
		return e.Wrap("temporary kafka failure, will retry", err)
	}

	return e.Wrap("permanent kafka failure", err)
}

// isRetryableError отличает временные сетевые сбои от постоянных ошибок
// по тексту: у kafka-go нет типизированных ошибок для этих случаев.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}

	return false
}
