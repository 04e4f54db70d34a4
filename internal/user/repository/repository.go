package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/dmedvedev/secure-content/internal/common/db"
	"github.com/dmedvedev/secure-content/internal/user/domain"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id int64) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

// Create inserts the user and returns it with the store-assigned id and
// creation timestamp. The unique constraints on username and email are the
// correctness mechanism for concurrent registration: exactly one of two
// racing inserts wins, the other maps to a conflict error here.
func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	defer db.ObserveQuery("create_user", "users", start)

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
	)

	created := user
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return domain.User{}, ErrEmailExists
			}
			return domain.User{}, ErrUsernameExists
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	start := time.Now()
	defer db.ObserveQuery("find_user_by_id", "users", start)

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, role, created_at
		 FROM users WHERE id = $1`,
		id,
	)

	return scanUser(row)
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	start := time.Now()
	defer db.ObserveQuery("find_user_by_username", "users", start)

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, role, created_at
		 FROM users WHERE username = $1`,
		username,
	)

	return scanUser(row)
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	defer db.ObserveQuery("find_user_by_email", "users", start)

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, role, created_at
		 FROM users WHERE email = $1`,
		email,
	)

	return scanUser(row)
}

func (r *PgRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	start := time.Now()
	defer db.ObserveQuery("find_all_users", "users", start)

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, username, email, password_hash, role, created_at
		 FROM users ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return users, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
