// Package journal fetches, filters and mutates trades through the backend
// client, keeping the local snapshot in step.
package journal

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"trade-journal/internal/errors"
	"trade-journal/internal/logging"
	"trade-journal/internal/metrics"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
	"trade-journal/internal/transform"
)

// API is the subset of the backend client the service needs.
type API interface {
	ListTrades(ctx context.Context) ([]models.TradeRecord, error)
	CreateTrade(ctx context.Context, payload models.TradePayload) (*models.TradeRecord, error)
	UpdateTrade(ctx context.Context, id int64, payload models.TradePayload) (*models.TradeRecord, error)
	CloseTrade(ctx context.Context, id int64, payload models.ClosePayload) (*models.TradeRecord, error)
	DeleteTrade(ctx context.Context, id int64) error
	ListTransfers(ctx context.Context) (*models.TransferList, error)
}

// cacheInvalidator is implemented by clients that cache the trade list.
type cacheInvalidator interface {
	InvalidateCache()
}

// Options configures a Service.
type Options struct {
	// Baseline overrides the transfer-derived capital baseline when positive.
	Baseline decimal.Decimal
	PageSize int
}

// Service is the journal's application layer.
type Service struct {
	api      API
	store    store.Store
	baseline decimal.Decimal
	pageSize int
	validate *validator.Validate
	logger   zerolog.Logger

	syncMu sync.Mutex
	now    func() time.Time
}

// NewService creates a service. st may be nil, which disables the snapshot.
func NewService(api API, st store.Store, opts Options, logger zerolog.Logger) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Service{
		api:      api,
		store:    st,
		baseline: opts.Baseline,
		pageSize: pageSize,
		validate: newValidator(),
		logger:   logger.With().Str("component", "journal").Logger(),
		now:      time.Now,
	}
}

// PageSize returns the default page size.
func (s *Service) PageSize() int {
	return s.pageSize
}

// List returns one page of one tab.
func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	views, err := s.Views(ctx, q.Status, q.Offline)
	if err != nil {
		return Page{Items: []models.TradeView{}, Page: 1, PageSize: s.pageSize, TotalPages: 1, Offline: q.Offline}, err
	}
	views = Search(views, q.Search)

	size := q.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	page := Paginate(views, q.Page, size)
	page.Offline = q.Offline
	return page, nil
}

// Views returns every trade of one tab in backend order.
func (s *Service) Views(ctx context.Context, status models.TradeStatus, offline bool) ([]models.TradeView, error) {
	records, err := s.records(ctx, offline)
	if err != nil {
		return nil, err
	}
	return FilterByStatus(transform.TransformBatch(records), status), nil
}

// Get returns one trade.
func (s *Service) Get(ctx context.Context, id int64) (*models.TradeView, error) {
	rec, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}
	view := transform.Transform(*rec)
	return &view, nil
}

// GetOffline returns one trade from the snapshot.
func (s *Service) GetOffline(ctx context.Context, id int64) (*models.TradeView, error) {
	rec, err := s.find(ctx, id, true)
	if err != nil {
		return nil, err
	}
	view := transform.Transform(*rec)
	return &view, nil
}

// Dashboard aggregates one tab. Current capital is computed over every trade.
func (s *Service) Dashboard(ctx context.Context, status models.TradeStatus, offline bool) (metrics.Summary, error) {
	records, err := s.records(ctx, offline)
	if err != nil {
		return metrics.Aggregate(nil, decimal.Zero), err
	}
	all := transform.TransformBatch(records)

	baseline := s.baseline
	if !offline {
		baseline, err = s.Baseline(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Capital baseline unavailable, using zero")
			baseline = decimal.Zero
		}
	}

	current := metrics.CurrentCapital(baseline, all)
	return metrics.Aggregate(FilterByStatus(all, status), current), nil
}

// Baseline returns the configured capital baseline, or net transfers when none
// is configured.
func (s *Service) Baseline(ctx context.Context) (decimal.Decimal, error) {
	if s.baseline.IsPositive() {
		return s.baseline, nil
	}
	list, err := s.api.ListTransfers(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "fetching transfers")
	}
	return list.Net(), nil
}

// Transfers returns capital transfers.
func (s *Service) Transfers(ctx context.Context) (*models.TransferList, error) {
	return s.api.ListTransfers(ctx)
}

// Create validates and records a new trade.
func (s *Service) Create(ctx context.Context, draft models.TradeDraft) (*models.TradeView, error) {
	draft = sanitizeDraft(draft)
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	rec, err := s.api.CreateTrade(ctx, transform.ToCreatePayload(draft))
	if err != nil {
		return nil, errors.Wrap(err, "creating trade")
	}

	logging.LogTradeEvent(s.logger, "created", rec.ID, rec.Instrument)
	view := transform.Transform(*rec)
	return &view, nil
}

// Modify applies a partial update. Active and closed trades may both be
// modified.
func (s *Service) Modify(ctx context.Context, id int64, update models.TradeUpdate) (*models.TradeView, error) {
	update = sanitizeUpdate(update)
	if err := s.validateUpdate(update); err != nil {
		return nil, err
	}

	rec, err := s.api.UpdateTrade(ctx, id, transform.ToUpdatePayload(update))
	if err != nil {
		return nil, tradeError(err, id, "updating trade")
	}

	logging.LogTradeEvent(s.logger, "modified", id, rec.Instrument)
	view := transform.Transform(*rec)
	return &view, nil
}

// Close books the realized P&L of an active trade. A trade closes once.
func (s *Service) Close(ctx context.Context, id int64, req models.CloseRequest) (*models.TradeView, error) {
	if inv, ok := s.api.(cacheInvalidator); ok {
		inv.InvalidateCache()
	}

	log := logging.WithOperation(logging.WithTradeID(s.logger, id), "close")

	current, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(string(current.Status), string(models.StatusActive)) {
		log.Debug().Str("status", string(current.Status)).Msg("Refusing to close non-active trade")
		return nil, errors.Wrapf(errors.ErrTradeClosed, "trade %d", id)
	}

	req.Notes = sanitizeText(req.Notes)
	rec, err := s.api.CloseTrade(ctx, id, transform.ToClosePayload(req))
	if err != nil {
		return nil, tradeError(err, id, "closing trade")
	}

	logging.LogTradeEvent(s.logger, "closed", id, rec.Instrument)
	view := transform.Transform(*rec)
	return &view, nil
}

// Delete removes a trade from the backend and the snapshot.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteTrade(ctx, id); err != nil {
		return tradeError(err, id, "deleting trade")
	}

	if s.store != nil {
		if err := s.store.DeleteTrade(ctx, id); err != nil {
			logger := logging.WithOperation(logging.WithTradeID(s.logger, id), "delete")
			logger.Warn().Err(err).Msg("Failed to remove trade from snapshot")
		}
	}
	logging.LogTradeEvent(s.logger, "deleted", id, "")
	return nil
}

// SyncResult reports a completed sync.
type SyncResult struct {
	Trades int       `json:"trades"`
	At     time.Time `json:"at"`
}

// Sync refetches the trade list and replaces the snapshot.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	if s.store == nil {
		return nil, errors.ErrStoreDisabled
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if inv, ok := s.api.(cacheInvalidator); ok {
		inv.InvalidateCache()
	}

	records, err := s.api.ListTrades(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetching trades")
	}

	at := s.now()
	if err := s.persist(ctx, records, at); err != nil {
		return nil, err
	}
	return &SyncResult{Trades: len(records), At: at}, nil
}

// Freshness reports the age of the trade snapshot.
func (s *Service) Freshness() store.DataFreshness {
	if s.store == nil {
		return store.DataFreshness{DataType: store.SyncTypeTrades}
	}
	return store.Freshness(s.store, store.SyncTypeTrades, store.DefaultStaleAfter, s.now())
}

// records loads the trade list from the backend, or from the snapshot when
// offline. Successful fetches are written through to the snapshot.
func (s *Service) records(ctx context.Context, offline bool) ([]models.TradeRecord, error) {
	if offline {
		if s.store == nil {
			return nil, errors.ErrStoreDisabled
		}
		return s.store.GetTrades(ctx, store.TradeFilter{})
	}

	records, err := s.api.ListTrades(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetching trades")
	}

	if s.store != nil {
		if err := s.persist(ctx, records, s.now()); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to update trade snapshot")
		}
	}
	return records, nil
}

func (s *Service) persist(ctx context.Context, records []models.TradeRecord, at time.Time) error {
	if err := s.store.ReplaceTrades(ctx, records); err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	if err := s.store.SetLastSync(store.SyncTypeTrades, at); err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return nil
}

func (s *Service) find(ctx context.Context, id int64, offline bool) (*models.TradeRecord, error) {
	records, err := s.records(ctx, offline)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, errors.Wrapf(errors.ErrTradeNotFound, "trade %d", id)
}

// tradeError maps a backend 404 to ErrTradeNotFound.
func tradeError(err error, id int64, action string) error {
	if errors.Is(err, errors.ErrNotFound) {
		return errors.Wrapf(errors.ErrTradeNotFound, "trade %d", id)
	}
	return errors.Wrap(err, action)
}
