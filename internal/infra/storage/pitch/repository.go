package pitch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PitchBookingService/pkg/psqlbuilder"
)

// Repository репозиторий полей. Поля только читаются: их создание и
// редактирование выполняется во внешней админке.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория полей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает поле вместе со списком менеджеров
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pitch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectByIDQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Pitch
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Location,
		&p.SizeCategory,
		&p.DayRate,
		&p.NightRate,
		&p.NightStart,
		&p.NightEnd,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPitchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan pitch: %w", ErrScanRow, err)
	}

	managerIDs, err := r.getManagerIDs(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	p.ManagerIDs = managerIDs

	return &p, nil
}

func (r *Repository) getManagerIDs(ctx context.Context, executor DBExecutor, pitchID int64) ([]int64, error) {
	query, args, err := managerIDsQuery(pitchID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getManagerIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getManagerIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: getManagerIDs - scan user_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getManagerIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func selectByIDQuery(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"location",
		"size_category",
		"day_rate",
		"night_rate",
		"night_start",
		"night_end",
		"created_at",
		"updated_at",
	).
		From("pitches").
		Where(squirrel.Eq{"id": id})
}

func managerIDsQuery(pitchID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("user_id").
		From("pitch_managers").
		Where(squirrel.Eq{"pitch_id": pitchID}).
		OrderBy("user_id ASC")
}
