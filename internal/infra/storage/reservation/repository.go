package reservation

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

const tableName = "reservations"

var columns = []string{
	"id",
	"pitch_id",
	"requester_id",
	"booking_date",
	"start_hour",
	"duration_hours",
	"total_amount",
	"status",
	"payment_reference",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование.
// Пересечение с активным бронированием того же поля и даты отклоняется
// ограничением БД и возвращается как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"pitch_id",
			"requester_id",
			"booking_date",
			"start_hour",
			"duration_hours",
			"total_amount",
			"status",
			"payment_reference",
		).
		Values(
			reservation.PitchID,
			reservation.RequesterID,
			reservation.Date,
			reservation.StartHour,
			reservation.DurationHours,
			reservation.TotalAmount,
			reservation.Status,
			reservation.PaymentReference,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		if pgerr.IsExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - pitch=%d date=%s hours=[%d,%d)", ErrSlotConflict,
				reservation.PitchID, reservation.Date.Format(domain.DateFormat), reservation.StartHour, reservation.EndHour())
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// ListActiveByPitchAndDate получает бронирования поля на дату, занимающие часы (pending, validated).
// Внутри транзакции строки блокируются (FOR UPDATE) до ее завершения.
func (r *Repository) ListActiveByPitchAndDate(ctx context.Context, pitchID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{
			"pitch_id":     pitchID,
			"booking_date": domain.DateOnly(date),
			"status":       statusStrings(domain.ActiveStatuses),
		}).
		OrderBy("start_hour ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByPitchAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByPitchAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByRequester получает бронирования пользователя, опционально по статусу
func (r *Repository) ListByRequester(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("booking_date DESC", "start_hour DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRequester - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRequester - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByPitch получает бронирования поля с фильтрацией по периоду и статусу
func (r *Repository) ListByPitch(ctx context.Context, filter domain.PitchReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"pitch_id": filter.PitchID})

	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(*filter.DateTo)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("booking_date ASC", "start_hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPitch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPitch - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatusIfCurrent меняет статус только если текущий статус равен from.
// Возвращает false, если строка не найдена или статус уже другой.
func (r *Repository) UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.ReservationStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIfCurrent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsExclusionViolation(err) {
			return false, fmt.Errorf("%w: UpdateStatusIfCurrent - id=%d", ErrSlotConflict, id)
		}
		return false, fmt.Errorf("%w: UpdateStatusIfCurrent - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIfCurrent - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res              domain.Reservation
		paymentReference sql.NullString
	)

	err := row.Scan(
		&res.ID,
		&res.PitchID,
		&res.RequesterID,
		&res.Date,
		&res.StartHour,
		&res.DurationHours,
		&res.TotalAmount,
		&res.Status,
		&paymentReference,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentReference.Valid {
		res.PaymentReference = &paymentReference.String
	}
	res.Date = domain.DateOnly(res.Date)

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
