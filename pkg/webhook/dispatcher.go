package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/drydockhq/drydock/pkg/config"
	"github.com/drydockhq/drydock/pkg/db"
	"github.com/drydockhq/drydock/pkg/db/models"
	"github.com/drydockhq/drydock/pkg/i18n"
	"github.com/drydockhq/drydock/pkg/store"
	"golang.org/x/sync/errgroup"
)

// ErrDispatcherClosed is returned by Dispatch after Close.
var ErrDispatcherClosed = errors.New("dispatcher closed")

// queueSize bounds deliveries waiting for a worker.
const queueSize = 256

type delivery struct {
	ctx  context.Context
	sub  models.Webhook
	body []byte
}

// Dispatcher fans events out to a project's webhook subscriptions
// through a bounded worker pool.
type Dispatcher struct {
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	client *Client
	msg    i18n.Localizer
	logger *log.Logger

	queue   chan delivery
	workers *errgroup.Group

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher returns a dispatcher delivering through the given
// client and starts its workers.
func NewDispatcher(ctx context.Context, cfg *config.Config, dbx *db.DB, st store.Store, client *Client, msg i18n.Localizer) *Dispatcher {
	d := &Dispatcher{
		cfg:     cfg,
		db:      dbx,
		store:   st,
		client:  client,
		msg:     msg,
		logger:  log.FromContext(ctx).WithPrefix("webhook"),
		queue:   make(chan delivery, queueSize),
		workers: &errgroup.Group{},
	}

	for i := 0; i < cfg.Webhook.Concurrency(); i++ {
		d.workers.Go(func() error {
			for del := range d.queue {
				d.client.Deliver(del.ctx, del.sub, del.body)
			}
			return nil
		})
	}

	return d
}

// Dispatch renders the event once and hands a delivery to the worker
// pool for every eligible subscription of the event's project. It does
// not wait for deliveries to complete, and delivery outcomes never
// propagate back. Deliveries keep running when ctx is cancelled.
func (d *Dispatcher) Dispatch(ctx context.Context, payload EventPayload) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	subs, err := d.store.FindWebhooksByProjectID(ctx, d.db, payload.ProjectID())
	if err != nil {
		return db.WrapError(err)
	}

	subs = Eligible(subs, payload.Event(), d.cfg.Webhook.EnforceScope)
	if len(subs) == 0 {
		return nil
	}

	doc, err := BuildDocument(payload, d.msg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	dispatchCounter.WithLabelValues(payload.Event().String()).Inc()
	d.logger.Debug("dispatching event",
		"event", payload.Event().String(),
		"project", payload.ProjectID(),
		"subscriptions", len(subs))

	// Deliveries outlive the triggering request.
	dctx := context.WithoutCancel(ctx)
	for _, sub := range subs {
		d.queue <- delivery{ctx: dctx, sub: sub, body: body}
	}

	return nil
}

// Close stops accepting dispatches and waits for queued and in-flight
// deliveries to finish.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	close(d.queue)
	return d.workers.Wait()
}
