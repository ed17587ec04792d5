package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/BRS-ReservationService/internal/domain"
	"github.com/m04kA/BRS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BRS-ReservationService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки postgres "duplicate key value violates unique constraint"
const pgUniqueViolation = "23505"

// idempotencyConstraint имя уникального индекса (customer_id, idempotency_key)
const idempotencyConstraint = "reservations_customer_idempotency_key"

// Repository репозиторий для работы с бронированиями и их позициями напитков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается только внутри сериализуемой транзакции (через context), потому что
// проверка вместимости и вставка должны быть единым атомарным действием.
// Повтор с тем же ключом идемпотентности даёт ErrDuplicateIdempotencyKey -
// вызывающий код находит и возвращает уже созданную строку
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"bar_id",
			"customer_id",
			"reservation_date",
			"seat_type",
			"party_size",
			"special_requests",
			"status",
			"idempotency_key",
		).
		Values(
			res.BarID,
			res.CustomerID,
			domain.DateOnly(res.ReservationDate),
			res.SeatType,
			res.PartySize,
			res.SpecialRequests,
			res.Status,
			res.IdempotencyKey,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, idempotencyConstraint) {
			return nil, ErrDuplicateIdempotencyKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := reservationSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByIdempotencyKey находит бронирование клиента по ключу идемпотентности
// Используется для no-op ответа на повторную попытку после таймаута
func (r *Repository) GetByIdempotencyKey(ctx context.Context, customerID int64, key string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := reservationSelect().
		Where(squirrel.Eq{"customer_id": customerID, "idempotency_key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// CountActiveOnDate подсчитывает активные бронирования бара на дату,
// сгруппированные по типу посадки
// Вне транзакции это lock-free чтение для витрины доступности; внутри
// сериализуемой транзакции результат защищён от гонок изоляцией
func (r *Repository) CountActiveOnDate(ctx context.Context, barID int64, date time.Time) (map[domain.SeatType]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("seat_type", "COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"bar_id": barID, "reservation_date": domain.DateOnly(date)}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		GroupBy("seat_type").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.SeatType]int)
	for rows.Next() {
		var seatType domain.SeatType
		var count int
		if err := rows.Scan(&seatType, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveOnDate - scan row: %v", ErrScanRow, err)
		}
		counts[seatType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveOnDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountActiveInRange подсчитывает активные бронирования бара по дням диапазона,
// сгруппированные по дате и типу посадки - один запрос на весь календарь
func (r *Repository) CountActiveInRange(ctx context.Context, barID int64, startDate, endDate time.Time) (map[string]map[domain.SeatType]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_date", "seat_type", "COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"bar_id": barID}).
		Where(squirrel.GtOrEq{"reservation_date": domain.DateOnly(startDate)}).
		Where(squirrel.LtOrEq{"reservation_date": domain.DateOnly(endDate)}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		GroupBy("reservation_date", "seat_type").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]map[domain.SeatType]int)
	for rows.Next() {
		var date time.Time
		var seatType domain.SeatType
		var count int
		if err := rows.Scan(&date, &seatType, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveInRange - scan row: %v", ErrScanRow, err)
		}

		day := date.Format(domain.DateFormat)
		if counts[day] == nil {
			counts[day] = make(map[domain.SeatType]int)
		}
		counts[day][seatType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveInRange - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetByCustomerID получает бронирования клиента, опционально фильтруя по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := reservationSelect().
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("reservation_date DESC, created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByBarWithFilter получает бронирования бара с гибкой фильтрацией
// по дате, типу посадки, статусу и включению неактивных
func (r *Repository) GetByBarWithFilter(ctx context.Context, filter domain.BarReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := reservationSelect().
		Where(squirrel.Eq{"bar_id": filter.BarID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": domain.DateOnly(*filter.Date)})
	}
	if filter.SeatType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"seat_type": *filter.SeatType})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings()})
	}

	if filter.Date != nil {
		// Для конкретной даты - стабильный порядок по типу и времени создания
		selectBuilder = selectBuilder.OrderBy("seat_type ASC, created_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, created_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// AttachDrinks сохраняет позиции напитков бронирования одним запросом
// Вызывается ПОСЛЕ коммита бронирования: неудача здесь не откатывает бронь,
// а деградирует до предупреждения вызывающему
func (r *Repository) AttachDrinks(ctx context.Context, reservationID int64, drinks []domain.ReservationDrink) ([]domain.ReservationDrink, error) {
	if len(drinks) == 0 {
		return []domain.ReservationDrink{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("reservation_drinks").
		Columns("reservation_id", "drink_option_id", "name_at_booking", "type_at_booking", "price_at_booking", "quantity")

	for _, d := range drinks {
		insertBuilder = insertBuilder.Values(
			reservationID,
			d.DrinkOptionID,
			d.NameAtBooking,
			d.TypeAtBooking,
			d.PriceAtBooking,
			d.Quantity,
		)
	}

	query, args, err := insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AttachDrinks - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AttachDrinks - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	attached := make([]domain.ReservationDrink, 0, len(drinks))
	i := 0
	for rows.Next() {
		d := drinks[i]
		if err := rows.Scan(&d.ID); err != nil {
			return nil, fmt.Errorf("%w: AttachDrinks - scan id: %v", ErrScanRow, err)
		}
		d.ReservationID = reservationID
		attached = append(attached, d)
		i++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: AttachDrinks - rows error: %v", ErrScanRow, err)
	}

	return attached, nil
}

// GetDrinks получает позиции напитков бронирования
func (r *Repository) GetDrinks(ctx context.Context, reservationID int64) ([]domain.ReservationDrink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"drink_option_id",
		"name_at_booking",
		"type_at_booking",
		"price_at_booking",
		"quantity",
		"created_at",
	).
		From("reservation_drinks").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDrinks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDrinks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	drinks := make([]domain.ReservationDrink, 0)
	for rows.Next() {
		var d domain.ReservationDrink
		var createdAt sql.NullTime

		err := rows.Scan(
			&d.ID,
			&d.ReservationID,
			&d.DrinkOptionID,
			&d.NameAtBooking,
			&d.TypeAtBooking,
			&d.PriceAtBooking,
			&d.Quantity,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetDrinks - scan row: %v", ErrScanRow, err)
		}

		d.CreatedAt = createdAt.Time
		drinks = append(drinks, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDrinks - rows error: %v", ErrScanRow, err)
	}

	return drinks, nil
}

// reservationSelect общий SELECT для reservations
func reservationSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"bar_id",
		"customer_id",
		"reservation_date",
		"seat_type",
		"party_size",
		"special_requests",
		"status",
		"idempotency_key",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("reservations")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку reservations
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.BarID,
		&res.CustomerID,
		&res.ReservationDate,
		&res.SeatType,
		&res.PartySize,
		&res.SpecialRequests,
		&res.Status,
		&res.IdempotencyKey,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

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

// inactiveStatusStrings статусы, не занимающие места, в виде строк для SQL
func inactiveStatusStrings() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// isUniqueViolation проверяет, что ошибка - нарушение конкретного уникального индекса
func isUniqueViolation(err error, constraint string) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == constraint
	}
	return false
}
