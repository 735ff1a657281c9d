package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/seconfreq-lang/AgendarSala/internal/model"
	"github.com/seconfreq-lang/AgendarSala/internal/timeutil"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// BookingRepo stores bookings in MySQL.  The date column holds the UTC
// instant of local midnight; rows are converted back into the zone on
// read.  Writes serialize per room and local day through row locks on
// booking_day_locks.
type BookingRepo struct {
	db   *sql.DB
	zone *timeutil.Zone
}

// NewBookingRepo returns a BookingRepo bound to db.  Day boundaries are
// computed in zone.
func NewBookingRepo(db *sql.DB, zone *timeutil.Zone) *BookingRepo {
	return &BookingRepo{db: db, zone: zone}
}

const bookingColumns = `id, name, room, date, start_time, end_time, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BookingRepo) scan(row rowScanner) (model.Booking, error) {
	var b model.Booking
	var room string
	if err := row.Scan(&b.ID, &b.Name, &room, &b.Date, &b.StartTime, &b.EndTime, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return model.Booking{}, err
	}
	b.Room = model.Room(room)
	b.Date = r.zone.StartOfLocalDay(b.Date)
	return b, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *BookingRepo) list(ctx context.Context, q queryer, query string, args ...any) ([]model.Booking, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListBetween returns bookings with from <= date < to, ordered by date
// and start time.
func (r *BookingRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
               WHERE date >= ? AND date < ?
               ORDER BY date ASC, start_time ASC`
	return r.list(ctx, r.db, q, from.UTC(), to.UTC())
}

// ListRoomDay returns the bookings of room on the local day of day.
func (r *BookingRepo) ListRoomDay(ctx context.Context, room model.Room, day time.Time) ([]model.Booking, error) {
	return r.listRoomDay(ctx, r.db, room, day)
}

func (r *BookingRepo) listRoomDay(ctx context.Context, q queryer, room model.Room, day time.Time) ([]model.Booking, error) {
	const sel = `SELECT ` + bookingColumns + ` FROM bookings
                 WHERE room = ? AND date >= ? AND date < ?
                 ORDER BY start_time ASC`
	start := r.zone.StartOfLocalDay(day)
	return r.list(ctx, q, sel, string(room), start.UTC(), r.zone.NextLocalDay(start).UTC())
}

// GetByID returns the booking with id or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := r.scan(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) key(b *model.Booking) dayKey {
	return dayKey{room: b.Room, day: r.zone.FormatDateKey(b.Date)}
}

// lockDaysTx takes the row lock of every key, creating missing rows, in
// sorted order.
func lockDaysTx(ctx context.Context, tx *sql.Tx, keys ...dayKey) error {
	for _, k := range sortedKeys(keys...) {
		const upsert = `INSERT INTO booking_day_locks (room, day) VALUES (?, ?)
                        ON DUPLICATE KEY UPDATE room = room`
		if _, err := tx.ExecContext(ctx, upsert, string(k.room), k.day); err != nil {
			return err
		}
		const sel = `SELECT room FROM booking_day_locks WHERE room = ? AND day = ? FOR UPDATE`
		var got string
		if err := tx.QueryRowContext(ctx, sel, string(k.room), k.day).Scan(&got); err != nil {
			return err
		}
	}
	return nil
}

// withTx runs fn inside a transaction and commits when fn returns nil.
func (r *BookingRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Create inserts b after check accepts the bookings already stored for
// its room and day.  CreatedAt and UpdatedAt are set on b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, check ConflictCheck) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockDaysTx(ctx, tx, r.key(b)); err != nil {
			return err
		}
		existing, err := r.listRoomDay(ctx, tx, b.Room, b.Date)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(existing); err != nil {
				return err
			}
		}
		now := time.Now().UTC()
		const ins = `INSERT INTO bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		_, err = tx.ExecContext(ctx, ins, b.ID, b.Name, string(b.Room), b.Date.UTC(), b.StartTime, b.EndTime, now, now)
		if err != nil {
			return translateWriteErr(err)
		}
		b.CreatedAt, b.UpdatedAt = now, now
		return nil
	})
}

// Update replaces every field of the stored booking with b.ID.  Both the
// old and the new room/day are locked, so moving a booking cannot race a
// create on either side.
func (r *BookingRepo) Update(ctx context.Context, b *model.Booking, check ConflictCheck) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		const cur = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
		prev, err := r.scan(tx.QueryRowContext(ctx, cur, b.ID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBookingNotFound
			}
			return err
		}
		if err := lockDaysTx(ctx, tx, r.key(&prev), r.key(b)); err != nil {
			return err
		}
		existing, err := r.listRoomDay(ctx, tx, b.Room, b.Date)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(existing); err != nil {
				return err
			}
		}
		now := time.Now().UTC()
		const upd = `UPDATE bookings
                     SET name = ?, room = ?, date = ?, start_time = ?, end_time = ?, updated_at = ?
                     WHERE id = ?`
		if _, err := tx.ExecContext(ctx, upd, b.Name, string(b.Room), b.Date.UTC(), b.StartTime, b.EndTime, now, b.ID); err != nil {
			return translateWriteErr(err)
		}
		b.CreatedAt, b.UpdatedAt = prev.CreatedAt, now
		return nil
	})
}

// Delete removes the booking with id or returns ErrBookingNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// DeleteAll empties the bookings table.  Only the seed tool uses it.
func (r *BookingRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func translateWriteErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrConflict
	}
	return err
}
