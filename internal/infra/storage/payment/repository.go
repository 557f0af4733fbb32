package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PitchBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-PitchBookingService/pkg/psqlbuilder"
)

const (
	pendingTable  = "pending_payments"
	consumedTable = "consumed_payment_references"
)

// Repository хранит записи об ожидающих платежах и отметки об их обработке
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись об ожидающем платеже
func (r *Repository) Create(ctx context.Context, p *domain.PendingPayment) (*domain.PendingPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	snapshot, err := p.Snapshot.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode snapshot: %v", ErrSnapshot, err)
	}

	query, args, err := psqlbuilder.Insert(pendingTable).
		Columns("order_reference", "snapshot", "amount", "currency", "status").
		Values(p.OrderReference, string(snapshot), p.Amount, p.Currency, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - reference=%s", ErrDuplicateReference, p.OrderReference)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return p, nil
}

// GetByReference получает запись по order reference.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы параллельные callback'и
// обрабатывались последовательно.
func (r *Repository) GetByReference(ctx context.Context, orderReference string) (*domain.PendingPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectByReferenceQuery(orderReference, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByReference - reference=%s: %w", orderReference, err)
	}

	return p, nil
}

// ListStaleCharged возвращает записи в статусе pending, для которых платеж в шлюзе уже
// создан, но результат так и не пришел до before. Их нельзя удалять без сверки со шлюзом.
func (r *Repository) ListStaleCharged(ctx context.Context, before time.Time, limit int) ([]*domain.PendingPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := staleChargedQuery(before, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaleCharged - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaleCharged - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.PendingPayment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("ListStaleCharged: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaleCharged - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// UpdateGatewayData сохраняет ID платежа в шлюзе и URL для редиректа
func (r *Repository) UpdateGatewayData(ctx context.Context, orderReference, externalReference, redirectURL string) error {
	return r.update(ctx, "UpdateGatewayData", orderReference, map[string]interface{}{
		"external_reference": externalReference,
		"redirect_url":       redirectURL,
	})
}

// MarkStatus меняет статус записи
func (r *Repository) MarkStatus(ctx context.Context, orderReference string, status domain.PaymentStatus) error {
	return r.update(ctx, "MarkStatus", orderReference, map[string]interface{}{
		"status": status,
	})
}

func (r *Repository) update(ctx context.Context, op, orderReference string, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(pendingTable).
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"order_reference": orderReference}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// Delete удаляет запись после материализации бронирования
func (r *Repository) Delete(ctx context.Context, orderReference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(pendingTable).
		Where(squirrel.Eq{"order_reference": orderReference}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// CreateTombstone отмечает order reference как обработанный
func (r *Repository) CreateTombstone(ctx context.Context, orderReference string, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(consumedTable).
		Columns("order_reference", "reservation_id").
		Values(orderReference, reservationID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateTombstone - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("%w: CreateTombstone - reference=%s", ErrDuplicateReference, orderReference)
		}
		return fmt.Errorf("%w: CreateTombstone - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetTombstone возвращает отметку об обработке или ErrNotConsumed
func (r *Repository) GetTombstone(ctx context.Context, orderReference string) (*domain.ConsumedPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("order_reference", "reservation_id", "consumed_at").
		From(consumedTable).
		Where(squirrel.Eq{"order_reference": orderReference}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTombstone - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.ConsumedPayment
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.OrderReference, &c.ReservationID, &c.ConsumedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotConsumed
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTombstone - scan: %w", ErrScanRow, err)
	}

	return &c, nil
}

// DeleteAbandoned удаляет записи, созданные раньше before, по которым деньги
// гарантированно не списаны: failed (шлюз отклонил платеж) и pending без платежа в шлюзе.
// Возвращает количество удаленных записей.
func (r *Repository) DeleteAbandoned(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := deleteAbandonedQuery(before).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAbandoned - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAbandoned - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAbandoned - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
