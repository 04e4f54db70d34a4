package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/dmedvedev/secure-content/internal/common/db"
	"github.com/dmedvedev/secure-content/internal/content/domain"
)

var ErrPostNotFound = errors.New("post not found")

type Repository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	FindByID(ctx context.Context, id int64) (domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	FindByAuthorID(ctx context.Context, authorID int64) ([]domain.Post, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

var _ Repository = (*PgRepository)(nil)

func (r *PgRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	start := time.Now()
	defer db.ObserveQuery("create_post", "posts", start)

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO posts (title, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		post.Title,
		post.Content,
		post.AuthorID,
	)

	created := post
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return domain.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return created, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Post, error) {
	start := time.Now()
	defer db.ObserveQuery("find_post_by_id", "posts", start)

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, title, content, author_id, created_at
		 FROM posts WHERE id = $1`,
		id,
	)

	var post domain.Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, fmt.Errorf("failed to find post by id: %w", err)
	}

	return post, nil
}

func (r *PgRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	defer db.ObserveQuery("find_all_posts", "posts", start)

	return r.queryPosts(
		ctx,
		`SELECT id, title, content, author_id, created_at
		 FROM posts ORDER BY created_at DESC`,
	)
}

func (r *PgRepository) FindByAuthorID(ctx context.Context, authorID int64) ([]domain.Post, error) {
	start := time.Now()
	defer db.ObserveQuery("find_posts_by_author", "posts", start)

	return r.queryPosts(
		ctx,
		`SELECT id, title, content, author_id, created_at
		 FROM posts WHERE author_id = $1 ORDER BY created_at DESC`,
		authorID,
	)
}

func (r *PgRepository) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return posts, nil
}
