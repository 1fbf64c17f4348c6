package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pavalka/shareit/internal/pkg/page"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter, p page.Page) ([]*Booking, int, error)
	// ListByItems returns every booking of the given items, unpaged.
	ListByItems(ctx context.Context, itemIDs []string) ([]*Booking, error)
	// UpdateStatus moves a booking from one status to another. It fails with
	// ErrIllegalApprove when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	// HasOverlap checks if any booking of the item, whatever its status,
	// overlaps iv.
	HasOverlap(ctx context.Context, itemID string, iv Interval) (bool, error)

	// WithItemLock runs fn in a transaction holding an exclusive lock on the
	// item's timeline. fn must use the Repository it is handed.
	WithItemLock(ctx context.Context, itemID string, fn func(Repository) error) error
}

// querier is the subset shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	pool *pgxpool.Pool
	db   querier
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool, db: pool}
}

var sortColumns = map[string]string{
	"start_time": "b.start_time",
	"end_time":   "b.end_time",
	"created_at": "b.created_at",
}

func selectBookings() squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(
			"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
			"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
		).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
		&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func applyFilter(q squirrel.SelectBuilder, f Filter) squirrel.SelectBuilder {
	if f.BookerID != "" {
		q = q.Where(squirrel.Eq{"b.booker_id": f.BookerID})
	}
	if f.OwnerID != "" {
		q = q.Where(squirrel.Eq{"i.owner_id": f.OwnerID})
	}
	if len(f.ItemIDs) > 0 {
		q = q.Where(squirrel.Eq{"b.item_id": f.ItemIDs})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"b.status": f.Status})
	}
	if f.EndBefore != nil {
		q = q.Where(squirrel.Lt{"b.end_time": *f.EndBefore})
	}
	if f.StartAfter != nil {
		q = q.Where(squirrel.Gt{"b.start_time": *f.StartAfter})
	}
	if f.ActiveAt != nil {
		q = q.Where(squirrel.LtOrEq{"b.start_time": *f.ActiveAt}).
			Where(squirrel.GtOrEq{"b.end_time": *f.ActiveAt})
	}
	return q
}

func (r *pgxRepository) List(ctx context.Context, filter Filter, p page.Page) ([]*Booking, int, error) {
	query := applyFilter(selectBookings().Column("count(*) OVER() AS total_count"), filter).
		OrderBy(orderClause(p.Sort())).
		Limit(uint64(p.Size())).
		Offset(uint64(p.Offset()))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListByItems(ctx context.Context, itemIDs []string) ([]*Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	sql, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemIDs}).
		OrderBy("b.start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list item bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item bookings failed: %w", err)
	}
	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrIllegalApprove
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, itemID string, iv Interval) (bool, error) {
	// (NewStart < ExistingEnd) AND (ExistingStart < NewEnd). No status filter.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Lt{"start_time": iv.End}).
		Where(squirrel.Gt{"end_time": iv.Start})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

const lockItemTimeline = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

func (r *pgxRepository) WithItemLock(ctx context.Context, itemID string, fn func(Repository) error) error {
	// Already inside a transaction: take the lock on it instead of opening a second connection.
	if tx, ok := r.db.(pgx.Tx); ok {
		if _, err := tx.Exec(ctx, lockItemTimeline, itemID); err != nil {
			return fmt.Errorf("lock item timeline failed: %w", err)
		}
		return fn(r)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockItemTimeline, itemID); err != nil {
			return fmt.Errorf("lock item timeline failed: %w", err)
		}
		return fn(&pgxRepository{pool: r.pool, db: tx})
	})
}

// orderClause only lets whitelisted columns into ORDER BY.
func orderClause(s page.Sort) string {
	col, ok := sortColumns[s.Key]
	if !ok {
		col = "b.start_time"
	}
	dir := page.Desc
	if s.Direction == page.Asc {
		dir = page.Asc
	}
	return col + " " + string(dir) + ", b.id"
}
