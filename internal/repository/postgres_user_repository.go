package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
)

const pgUniqueViolation = "23505"

// PgxQuerier is the subset of pgxpool.Pool used by the repository.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresUserRepository struct {
	db PgxQuerier
}

// NewPostgresUserRepository returns a Postgres-backed implementation.
func NewPostgresUserRepository(db PgxQuerier) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, phone, role,
        company_name, company_role, college_name, branch, college_id, created_at, updated_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, name, email, password_hash, phone, role,
            company_name, company_role, college_name, branch, college_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`

	rec := recordFromUser(user)
	id := uuid.NewString()
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(ctx, query,
		id,
		rec.Name,
		rec.Email,
		rec.Password,
		rec.Phone,
		rec.Role,
		rec.CompanyName,
		rec.CompanyRole,
		rec.CollegeName,
		rec.Branch,
		rec.CollegeID,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return mapPgError(err)
	}
	user.ID, user.CreatedAt, user.UpdatedAt = id, createdAt, updatedAt
	return nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, password_hash=$3, phone=$4, role=$5,
            company_name=$6, company_role=$7, college_name=$8, branch=$9, college_id=$10,
            updated_at=NOW()
        WHERE id=$11
        RETURNING updated_at`

	if _, err := uuid.Parse(user.ID); err != nil {
		return ErrNotFound
	}
	rec := recordFromUser(user)
	err := r.db.QueryRow(ctx, query,
		rec.Name,
		rec.Email,
		rec.Password,
		rec.Phone,
		rec.Role,
		rec.CompanyName,
		rec.CompanyRole,
		rec.CollegeName,
		rec.Branch,
		rec.CollegeID,
		user.ID,
	).Scan(&user.UpdatedAt)
	return mapPgError(err)
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *postgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresUserRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var rec userRecord
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&rec.ID,
		&rec.Name,
		&rec.Email,
		&rec.Password,
		&rec.Phone,
		&rec.Role,
		&rec.CompanyName,
		&rec.CompanyRole,
		&rec.CollegeName,
		&rec.Branch,
		&rec.CollegeID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return rec.toUser()
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}
