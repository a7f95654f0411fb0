package turn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TurnService/internal/domain"
	"github.com/m04kA/SMC-TurnService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnService/pkg/psqlbuilder"
)

// turnColumns полный список колонок таблицы turns в порядке сканирования
var turnColumns = []string{
	"id",
	"customer_name",
	"mobile_number",
	"service_type",
	"turn_number",
	"status",
	"notes",
	"completed_at",
	"cancelled_at",
	"cancelled_by",
	"created_at",
	"updated_at",
}

// uniqueViolation код PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

// Repository репозиторий для работы с талонами очереди
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория талонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый талон со статусом waiting.
// Номер талона должен быть вычислен вызывающей стороной внутри сериализуемой
// транзакции (см. usecase create_turn). Частичный уникальный индекс по
// активным номерам телефонов - последний рубеж против гонки двух созданий.
func (r *Repository) Create(ctx context.Context, turn *domain.Turn) (*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("turns").
		Columns(
			"id",
			"customer_name",
			"mobile_number",
			"service_type",
			"turn_number",
			"status",
			"notes",
		).
		Values(
			turn.ID,
			turn.CustomerName,
			turn.MobileNumber,
			turn.ServiceType,
			turn.TurnNumber,
			turn.Status,
			turn.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "idx_turns_active_mobile" {
			return nil, ErrDuplicateActiveTurn
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	turn.CreatedAt = createdAt.Time
	turn.UpdatedAt = updatedAt.Time

	return turn, nil
}

// GetByID получает талон по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Turn, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID", false)
}

// GetByIDForUpdate получает талон по ID с блокировкой строки (FOR UPDATE).
// Используется в транзакциях переходов состояний.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Turn, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByIDForUpdate", true)
}

// GetLatestByMobile получает последний по времени создания талон для номера
// телефона, независимо от статуса. История талонов не удаляется, поэтому
// клиент видит и отмененные/завершенные талоны.
func (r *Repository) GetLatestByMobile(ctx context.Context, mobileNumber string) (*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(turnColumns...).
		From("turns").
		Where(squirrel.Eq{"mobile_number": mobileNumber}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByMobile - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanTurn(executor.QueryRowContext(ctx, query, args...), "GetLatestByMobile")
}

// GetActiveByMobile получает активный (waiting или confirmed) талон для
// номера телефона. Внутри транзакции блокирует строку (FOR UPDATE).
func (r *Repository) GetActiveByMobile(ctx context.Context, mobileNumber string) (*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(turnColumns...).
		From("turns").
		Where(squirrel.Eq{
			"mobile_number": mobileNumber,
			"status":        statusStrings(domain.ActiveStatuses),
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMobile - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanTurn(executor.QueryRowContext(ctx, query, args...), "GetActiveByMobile")
}

// GetWaiting получает все ожидающие талоны, упорядоченные по номеру.
// По инварианту очереди порядок совпадает с порядком создания.
func (r *Repository) GetWaiting(ctx context.Context) ([]*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(turnColumns...).
		From("turns").
		Where(squirrel.Eq{"status": domain.StatusWaiting}).
		OrderBy("turn_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWaiting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWaiting - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTurns(rows)
}

// NextTurnNumber вычисляет следующий номер: 1 + максимум по живому
// ожидающему набору. Это НЕ глобальный auto-increment: по мере того как
// очередь пустеет, номера переиспользуются.
func (r *Repository) NextTurnNumber(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(turn_number), 0) + 1").
		From("turns").
		Where(squirrel.Eq{"status": domain.StatusWaiting}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: NextTurnNumber - build select query: %v", ErrBuildQuery, err)
	}

	var next int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("%w: NextTurnNumber - scan: %v", ErrScanRow, err)
	}

	return next, nil
}

// RenumberWaiting пересчитывает номера ожидающих талонов: 1, 2, 3, ... в
// порядке создания. Вызывается после каждого ухода талона из ожидающего
// набора, в той же транзакции, что и сам переход. Обновляются только строки,
// чей номер изменился, поэтому повторный вызов без промежуточных изменений
// ничего не мутирует. Возвращает количество перенумерованных талонов.
//
// Обход строго по возрастанию created_at: при уплотнении новый номер каждой
// строки не больше старого, поэтому частичный уникальный индекс по номерам
// не нарушается ни на одном шаге.
func (r *Repository) RenumberWaiting(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "turn_number").
		From("turns").
		Where(squirrel.Eq{"status": domain.StatusWaiting}).
		OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: RenumberWaiting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: RenumberWaiting - execute query: %v", ErrExecQuery, err)
	}

	type waitingRow struct {
		id         uuid.UUID
		turnNumber int
	}

	waiting := make([]waitingRow, 0)
	for rows.Next() {
		var row waitingRow
		if err := rows.Scan(&row.id, &row.turnNumber); err != nil {
			rows.Close()
			return 0, fmt.Errorf("%w: RenumberWaiting - scan row: %v", ErrScanRow, err)
		}
		waiting = append(waiting, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("%w: RenumberWaiting - rows error: %v", ErrScanRow, err)
	}
	rows.Close()

	renumbered := 0
	for i, row := range waiting {
		expected := i + 1
		if row.turnNumber == expected {
			continue
		}

		updateQuery, updateArgs, err := psqlbuilder.Update("turns").
			Set("turn_number", expected).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": row.id}).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("%w: RenumberWaiting - build update query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
			return 0, fmt.Errorf("%w: RenumberWaiting - execute update: %v", ErrExecQuery, err)
		}
		renumbered++
	}

	return renumbered, nil
}

// Complete переводит талон в completed и проставляет completed_at.
// Проверка допустимости перехода выполняется вызывающей стороной.
func (r *Repository) Complete(ctx context.Context, id uuid.UUID) (*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("turns").
		Set("status", domain.StatusCompleted).
		Set("completed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + columnsList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanTurn(executor.QueryRowContext(ctx, query, args...), "Complete")
}

// Cancel переводит талон в cancelled и фиксирует, кто отменил.
// Проверка допустимости перехода выполняется вызывающей стороной.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, actor domain.CancelActor) (*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("turns").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("cancelled_by", actor).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + columnsList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanTurn(executor.QueryRowContext(ctx, query, args...), "Cancel")
}

// UpdateNotes обновляет заметки администратора. Заметки можно менять в любом
// статусе талона.
func (r *Repository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("turns").
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTurnNotFound
	}

	return nil
}

// CountWaiting возвращает размер ожидающего набора
func (r *Repository) CountWaiting(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("turns").
		Where(squirrel.Eq{"status": domain.StatusWaiting}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountWaiting - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountWaiting - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// AverageWaitMinutes среднее время от создания до завершения по всем
// завершенным талонам, в целых минутах с округлением вниз. 0, если
// завершенных талонов нет.
func (r *Repository) AverageWaitMinutes(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(FLOOR(AVG(EXTRACT(EPOCH FROM (completed_at - created_at)) / 60)), 0)::int",
	).
		From("turns").
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		Where(squirrel.NotEq{"completed_at": nil}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: AverageWaitMinutes - build select query: %v", ErrBuildQuery, err)
	}

	var minutes int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("%w: AverageWaitMinutes - scan: %v", ErrScanRow, err)
	}

	return minutes, nil
}

// ListWithFilter получает талоны для административного списка с фильтрацией
// по статусу, сортировкой и пагинацией
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.TurnsFilter) ([]*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(turnColumns...).
		From("turns").
		OrderBy(orderClause(filter)).
		Limit(uint64(filter.PageLimit())).
		Offset(uint64(filter.Offset()))

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTurns(rows)
}

// CountWithFilter возвращает общее число талонов под фильтром (для пагинации)
func (r *Repository) CountWithFilter(ctx context.Context, filter domain.TurnsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").From("turns")
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// Вспомогательные методы

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string, forUpdate bool) (*domain.Turn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(turnColumns...).
		From("turns").
		Where(where)

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	return r.scanTurn(executor.QueryRowContext(ctx, query, args...), op)
}

func (r *Repository) scanTurn(row *sql.Row, op string) (*domain.Turn, error) {
	var turn domain.Turn
	var notes sql.NullString
	var completedAt, cancelledAt sql.NullTime
	var cancelledBy sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&turn.ID,
		&turn.CustomerName,
		&turn.MobileNumber,
		&turn.ServiceType,
		&turn.TurnNumber,
		&turn.Status,
		&notes,
		&completedAt,
		&cancelledAt,
		&cancelledBy,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTurnNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan turn: %v", ErrScanRow, op, err)
	}

	fillOptionalFields(&turn, notes, completedAt, cancelledAt, cancelledBy)
	turn.CreatedAt = createdAt.Time
	turn.UpdatedAt = updatedAt.Time

	return &turn, nil
}

func (r *Repository) scanTurns(rows *sql.Rows) ([]*domain.Turn, error) {
	turns := make([]*domain.Turn, 0)

	for rows.Next() {
		var turn domain.Turn
		var notes sql.NullString
		var completedAt, cancelledAt sql.NullTime
		var cancelledBy sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&turn.ID,
			&turn.CustomerName,
			&turn.MobileNumber,
			&turn.ServiceType,
			&turn.TurnNumber,
			&turn.Status,
			&notes,
			&completedAt,
			&cancelledAt,
			&cancelledBy,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTurns - scan row: %v", ErrScanRow, err)
		}

		fillOptionalFields(&turn, notes, completedAt, cancelledAt, cancelledBy)
		turn.CreatedAt = createdAt.Time
		turn.UpdatedAt = updatedAt.Time

		turns = append(turns, &turn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTurns - rows error: %v", ErrScanRow, err)
	}

	return turns, nil
}

func fillOptionalFields(turn *domain.Turn, notes sql.NullString, completedAt, cancelledAt sql.NullTime, cancelledBy sql.NullString) {
	if notes.Valid {
		turn.Notes = &notes.String
	}
	if completedAt.Valid {
		turn.CompletedAt = &completedAt.Time
	}
	if cancelledAt.Valid {
		turn.CancelledAt = &cancelledAt.Time
	}
	if cancelledBy.Valid {
		actor := domain.CancelActor(cancelledBy.String)
		turn.CancelledBy = &actor
	}
}

// orderClause собирает ORDER BY из фильтра с whitelist допустимых колонок
func orderClause(filter domain.TurnsFilter) string {
	column := "created_at"
	switch filter.SortBy {
	case "created_at", "turn_number", "status":
		column = filter.SortBy
	}

	order := "DESC"
	if filter.SortOrder == "asc" {
		order = "ASC"
	}

	return column + " " + order
}

// columnsList колонки для RETURNING
func columnsList() string {
	list := turnColumns[0]
	for _, c := range turnColumns[1:] {
		list += ", " + c
	}
	return list
}

// statusStrings конвертирует статусы в строки для squirrel.Eq
func statusStrings(statuses []domain.TurnStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
