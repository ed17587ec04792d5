package seatoption

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BRS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации посадочных мест (seat_options)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория посадочных мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBar получает все конфигурации типов посадки бара (включая выключенные)
// Фильтрация по enabled - ответственность вызывающего кода
func (r *Repository) GetByBar(ctx context.Context, barID int64) ([]domain.SeatOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := optionSelect().
		Where(squirrel.Eq{"bar_id": barID}).
		OrderBy("seat_type ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBar - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	options := make([]domain.SeatOption, 0, 3)
	for rows.Next() {
		opt, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBar - scan row: %v", ErrScanRow, err)
		}
		options = append(options, *opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBar - rows error: %v", ErrScanRow, err)
	}

	return options, nil
}

// GetByBarAndType получает конфигурацию одного типа посадки
func (r *Repository) GetByBarAndType(ctx context.Context, barID int64, seatType domain.SeatType) (*domain.SeatOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := optionSelect().
		Where(squirrel.Eq{"bar_id": barID, "seat_type": seatType}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarAndType - build select query: %v", ErrBuildQuery, err)
	}

	opt, err := scanOption(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSeatOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarAndType - scan option: %v", ErrScanRow, err)
	}

	return opt, nil
}

// Upsert создает или обновляет конфигурацию типа посадки
// Уникальность (bar_id, seat_type) гарантирует одну строку на тип
func (r *Repository) Upsert(ctx context.Context, opt *domain.SeatOption) (*domain.SeatOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("seat_options").
		Columns("bar_id", "seat_type", "enabled", "available_count", "min_people", "max_people", "restrictions").
		Values(opt.BarID, opt.Type, opt.Enabled, opt.AvailableCount, opt.MinPeople, opt.MaxPeople, opt.Restrictions).
		Suffix(`ON CONFLICT (bar_id, seat_type) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			available_count = EXCLUDED.available_count,
			min_people = EXCLUDED.min_people,
			max_people = EXCLUDED.max_people,
			restrictions = EXCLUDED.restrictions,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&opt.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	opt.CreatedAt = createdAt.Time
	opt.UpdatedAt = updatedAt.Time

	return opt, nil
}

// optionSelect общий SELECT для seat_options
func optionSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"bar_id",
		"seat_type",
		"enabled",
		"available_count",
		"min_people",
		"max_people",
		"restrictions",
		"created_at",
		"updated_at",
	).From("seat_options")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanOption сканирует одну строку seat_options
func scanOption(row rowScanner) (*domain.SeatOption, error) {
	var opt domain.SeatOption
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&opt.ID,
		&opt.BarID,
		&opt.Type,
		&opt.Enabled,
		&opt.AvailableCount,
		&opt.MinPeople,
		&opt.MaxPeople,
		&opt.Restrictions,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	opt.CreatedAt = createdAt.Time
	opt.UpdatedAt = updatedAt.Time

	return &opt, nil
}
