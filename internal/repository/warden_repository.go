package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/warden-register/internal/domain"
)

// ErrDuplicateStaffNumber is returned by Create when the staff number is
// already registered. Callers match it with errors.Is; the underlying
// SQLSTATE never leaves this package.
var ErrDuplicateStaffNumber = errors.New("staff number already exists")

const pgUniqueViolation = "23505"

// WardenRepository handles persistence for active warden check-ins.
type WardenRepository interface {
	Create(ctx context.Context, warden *domain.Warden) error
	GetByStaffNumber(ctx context.Context, staffNumber string) (*domain.Warden, error)
	List(ctx context.Context) ([]domain.Warden, error)
	UpdateLocation(ctx context.Context, staffNumber, location string) error
	Amend(ctx context.Context, staffNumber string, amendment domain.WardenAmendment) error
	Delete(ctx context.Context, staffNumber string) error
}

type wardenRepository struct {
	pool *pgxpool.Pool
}

// NewWardenRepository instantiates the repository.
func NewWardenRepository(pool *pgxpool.Pool) WardenRepository {
	return &wardenRepository{pool: pool}
}

func (r *wardenRepository) Create(ctx context.Context, warden *domain.Warden) error {
	const query = `
        INSERT INTO wardens (staff_number, first_name, surname, location)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at, last_updated`

	err := r.pool.QueryRow(ctx, query,
		warden.StaffNumber,
		warden.FirstName,
		warden.Surname,
		warden.Location,
	).Scan(&warden.CreatedAt, &warden.LastUpdated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateStaffNumber
		}
		return err
	}
	return nil
}

func (r *wardenRepository) GetByStaffNumber(ctx context.Context, staffNumber string) (*domain.Warden, error) {
	const query = `
        SELECT staff_number, first_name, surname, location, created_at, last_updated
        FROM wardens WHERE staff_number=$1`

	var warden domain.Warden
	if err := r.pool.QueryRow(ctx, query, staffNumber).Scan(
		&warden.StaffNumber,
		&warden.FirstName,
		&warden.Surname,
		&warden.Location,
		&warden.CreatedAt,
		&warden.LastUpdated,
	); err != nil {
		return nil, err
	}
	return &warden, nil
}

func (r *wardenRepository) List(ctx context.Context) ([]domain.Warden, error) {
	const query = `
        SELECT staff_number, first_name, surname, location, created_at, last_updated
        FROM wardens ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Warden
	for rows.Next() {
		var warden domain.Warden
		if err := rows.Scan(
			&warden.StaffNumber,
			&warden.FirstName,
			&warden.Surname,
			&warden.Location,
			&warden.CreatedAt,
			&warden.LastUpdated,
		); err != nil {
			return nil, err
		}
		result = append(result, warden)
	}
	return result, rows.Err()
}

func (r *wardenRepository) UpdateLocation(ctx context.Context, staffNumber, location string) error {
	const query = `
        UPDATE wardens
        SET location=$1, last_updated=NOW()
        WHERE staff_number=$2`

	cmd, err := r.pool.Exec(ctx, query, location, staffNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *wardenRepository) Amend(ctx context.Context, staffNumber string, amendment domain.WardenAmendment) error {
	args := []any{staffNumber}
	sets := []string{}

	if amendment.FirstName != nil {
		args = append(args, *amendment.FirstName)
		sets = append(sets, fmt.Sprintf("first_name=$%d", len(args)))
	}
	if amendment.Surname != nil {
		args = append(args, *amendment.Surname)
		sets = append(sets, fmt.Sprintf("surname=$%d", len(args)))
	}
	if amendment.Location != nil {
		args = append(args, *amendment.Location)
		sets = append(sets, fmt.Sprintf("location=$%d", len(args)))
	}
	if len(sets) == 0 {
		return errors.New("amendment touches no fields")
	}
	sets = append(sets, "last_updated=NOW()")

	query := "UPDATE wardens SET " + strings.Join(sets, ", ") + " WHERE staff_number=$1"

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *wardenRepository) Delete(ctx context.Context, staffNumber string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wardens WHERE staff_number=$1`, staffNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
