package drink

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BRS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий меню напитков (drink_options)
// Меню редактируется внешним приложением владельца; здесь только чтение
// для витрины предзаказа и снапшота позиций при бронировании
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню напитков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBar получает все позиции меню бара
// Порядок стабильный: сначала single-drink, затем бутылки по имени
func (r *Repository) GetByBar(ctx context.Context, barID int64) ([]domain.DrinkOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := drinkSelect().
		Where(squirrel.Eq{"bar_id": barID}).
		OrderBy("drink_type DESC, name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBar - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDrinkOptions(rows)
}

// GetByIDs получает позиции меню бара по списку ID
// Позиции чужих баров не возвращаются - barID входит в условие
func (r *Repository) GetByIDs(ctx context.Context, barID int64, ids []int64) ([]domain.DrinkOption, error) {
	if len(ids) == 0 {
		return []domain.DrinkOption{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := drinkSelect().
		Where(squirrel.Eq{"bar_id": barID, "id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDrinkOptions(rows)
}

// drinkSelect общий SELECT для drink_options
func drinkSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"bar_id",
		"drink_type",
		"name",
		"price",
		"created_at",
		"updated_at",
	).From("drink_options")
}

// scanDrinkOptions сканирует результаты запроса в слайс позиций меню
func scanDrinkOptions(rows *sql.Rows) ([]domain.DrinkOption, error) {
	options := make([]domain.DrinkOption, 0)

	for rows.Next() {
		var opt domain.DrinkOption
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&opt.ID,
			&opt.BarID,
			&opt.Type,
			&opt.Name,
			&opt.Price,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDrinkOptions - scan row: %v", ErrScanRow, err)
		}

		opt.CreatedAt = createdAt.Time
		opt.UpdatedAt = updatedAt.Time
		options = append(options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDrinkOptions - rows error: %v", ErrScanRow, err)
	}

	return options, nil
}
