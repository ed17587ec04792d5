package bar

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BRS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения баров
// Метаданные баров управляются внешним приложением владельца; здесь бары
// читаются только для проверки существования и владения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория баров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бар по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Bar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("bars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var bar domain.Bar
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&bar.ID,
		&bar.OwnerID,
		&bar.Name,
		&bar.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan bar: %v", ErrScanRow, err)
	}

	bar.CreatedAt = createdAt.Time
	bar.UpdatedAt = updatedAt.Time

	return &bar, nil
}
