package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/postgres/generated"
	"github.com/counterbook/counterbook/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts an audit log entry outside any transaction.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	params, err := auditLogParams(log)
	if err != nil {
		return err
	}

	return r.queries.CreateAuditLog(ctx, params)
}

// CreateTx inserts an audit log entry inside the caller's transaction,
// so the trail commits or rolls back with the action it records.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	params, err := auditLogParams(log)
	if err != nil {
		return err
	}

	pgxTx := tx.(*Tx).PgxTx()

	return generated.New(pgxTx).CreateAuditLog(ctx, params)
}

// List retrieves audit logs matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	limit, offset := domain.ValidatePagination(filter.Limit, filter.Offset)

	params := generated.ListAuditLogsParams{
		UserID:       filter.UserID,
		Action:       filter.Action,
		ResourceType: filter.ResourceType,
		ResourceID:   filter.ResourceID,
		RowLimit:     int32(limit),
		RowOffset:    int32(offset),
	}
	if filter.StartDate != nil {
		params.StartDate = timeToPgTimestamptz(*filter.StartDate)
	}
	if filter.EndDate != nil {
		params.EndDate = timeToPgTimestamptz(*filter.EndDate)
	}

	rows, err := r.queries.ListAuditLogs(ctx, params)
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, rowToAuditLog(row))
	}

	return logs, nil
}

// GetByResourceID retrieves the full trail for one resource, newest first.
func (r *AuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	rows, err := r.queries.GetAuditLogsByResource(ctx, generated.GetAuditLogsByResourceParams{
		ResourceType: resourceType,
		ResourceID:   resourceID,
	})
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, rowToAuditLog(row))
	}

	return logs, nil
}

func auditLogParams(log *domain.AuditLog) (generated.CreateAuditLogParams, error) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	var beforeState, afterState []byte
	var err error

	if log.BeforeState != nil {
		beforeState, err = json.Marshal(log.BeforeState)
		if err != nil {
			return generated.CreateAuditLogParams{}, err
		}
	}

	if log.AfterState != nil {
		afterState, err = json.Marshal(log.AfterState)
		if err != nil {
			return generated.CreateAuditLogParams{}, err
		}
	}

	return generated.CreateAuditLogParams{
		ID:           log.ID,
		UserID:       log.UserID,
		Action:       log.Action,
		ResourceType: log.ResourceType,
		ResourceID:   log.ResourceID,
		IpAddress:    log.IPAddress,
		UserAgent:    log.UserAgent,
		RequestID:    log.RequestID,
		BeforeState:  beforeState,
		AfterState:   afterState,
		Status:       log.Status,
		ErrorMessage: log.ErrorMessage,
		CreatedAt:    timeToPgTimestamptz(log.CreatedAt),
	}, nil
}

func rowToAuditLog(row generated.AuditLog) *domain.AuditLog {
	log := &domain.AuditLog{
		ID:           row.ID,
		UserID:       row.UserID,
		Action:       row.Action,
		ResourceType: row.ResourceType,
		ResourceID:   row.ResourceID,
		IPAddress:    row.IpAddress,
		UserAgent:    row.UserAgent,
		RequestID:    row.RequestID,
		Status:       row.Status,
		ErrorMessage: row.ErrorMessage,
		CreatedAt:    row.CreatedAt.Time,
	}

	if len(row.BeforeState) > 0 {
		_ = json.Unmarshal(row.BeforeState, &log.BeforeState)
	}
	if len(row.AfterState) > 0 {
		_ = json.Unmarshal(row.AfterState, &log.AfterState)
	}

	return log
}
