package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BRS-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/BRS-ReservationService/pkg/types"
)

// Repository репозиторий расписания: недельный шаблон operating_hours
// и перекрывающие его исключения bar_exceptions
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetHoursByBar получает недельный шаблон работы бара (до 7 строк)
func (r *Repository) GetHoursByBar(ctx context.Context, barID int64) ([]domain.OperatingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"bar_id",
		"day_of_week",
		"open_time",
		"close_time",
		"closes_next_day",
		"created_at",
		"updated_at",
	).
		From("operating_hours").
		Where(squirrel.Eq{"bar_id": barID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHoursByBar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHoursByBar - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.OperatingHour, 0, 7)
	for rows.Next() {
		var h domain.OperatingHour
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&h.ID,
			&h.BarID,
			&h.DayOfWeek,
			&h.OpenTime,
			&h.CloseTime,
			&h.ClosesNextDay,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetHoursByBar - scan row: %v", ErrScanRow, err)
		}

		h.CreatedAt = createdAt.Time
		h.UpdatedAt = updatedAt.Time
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHoursByBar - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceHours полностью заменяет недельный шаблон бара
// Вызывается внутри транзакции (DELETE + INSERT должны быть атомарны)
func (r *Repository) ReplaceHours(ctx context.Context, barID int64, hours []domain.OperatingHour) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("operating_hours").
		Where(squirrel.Eq{"bar_id": barID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("operating_hours").
		Columns("bar_id", "day_of_week", "open_time", "close_time", "closes_next_day")

	for _, h := range hours {
		insertBuilder = insertBuilder.Values(barID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.ClosesNextDay)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetExceptionByDate получает исключение бара на конкретную дату
func (r *Repository) GetExceptionByDate(ctx context.Context, barID int64, date time.Time) (*domain.BarException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := exceptionSelect().
		Where(squirrel.Eq{"bar_id": barID, "exception_date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByDate - build select query: %v", ErrBuildQuery, err)
	}

	exc, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByDate - scan exception: %v", ErrScanRow, err)
	}

	return exc, nil
}

// GetExceptionsInRange получает все исключения бара в диапазоне дат (включительно)
func (r *Repository) GetExceptionsInRange(ctx context.Context, barID int64, startDate, endDate time.Time) ([]*domain.BarException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := exceptionSelect().
		Where(squirrel.Eq{"bar_id": barID}).
		Where(squirrel.GtOrEq{"exception_date": domain.DateOnly(startDate)}).
		Where(squirrel.LtOrEq{"exception_date": domain.DateOnly(endDate)}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.BarException, 0)
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetExceptionsInRange - scan row: %v", ErrScanRow, err)
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExceptionsInRange - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// UpsertException создает или обновляет исключение на дату
// Уникальность (bar_id, exception_date) гарантирует не больше одного
// исключения на дату
func (r *Repository) UpsertException(ctx context.Context, exc *domain.BarException) (*domain.BarException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bar_exceptions").
		Columns("bar_id", "exception_date", "is_closed", "open_time", "close_time", "closes_next_day").
		Values(exc.BarID, domain.DateOnly(exc.ExceptionDate), exc.IsClosed, exc.OpenTime, exc.CloseTime, exc.ClosesNextDay).
		Suffix(`ON CONFLICT (bar_id, exception_date) DO UPDATE SET
			is_closed = EXCLUDED.is_closed,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			closes_next_day = EXCLUDED.closes_next_day,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertException - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertException - execute upsert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return exc, nil
}

// DeleteException удаляет исключение бара на дату
func (r *Repository) DeleteException(ctx context.Context, barID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bar_exceptions").
		Where(squirrel.Eq{"bar_id": barID, "exception_date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

// exceptionSelect общий SELECT для bar_exceptions
func exceptionSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"bar_id",
		"exception_date",
		"is_closed",
		"open_time",
		"close_time",
		"closes_next_day",
		"created_at",
		"updated_at",
	).From("bar_exceptions")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanException сканирует одну строку bar_exceptions
// open_time/close_time - nullable колонки, поэтому читаются через TimeString
// и конвертируются в указатели
func scanException(row rowScanner) (*domain.BarException, error) {
	var exc domain.BarException
	var openTime, closeTime types.TimeString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&exc.ID,
		&exc.BarID,
		&exc.ExceptionDate,
		&exc.IsClosed,
		&openTime,
		&closeTime,
		&exc.ClosesNextDay,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !openTime.IsZero() {
		exc.OpenTime = &openTime
	}
	if !closeTime.IsZero() {
		exc.CloseTime = &closeTime
	}

	exc.CreatedAt = createdAt.Time
	exc.UpdatedAt = updatedAt.Time

	return &exc, nil
}
