package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteRelationRepo implements RelationRepo over a DBTX.
type SQLiteRelationRepo struct {
	db db.DBTX
}

func NewSQLiteRelationRepo(dbtx db.DBTX) *SQLiteRelationRepo {
	return &SQLiteRelationRepo{db: dbtx}
}

func (r *SQLiteRelationRepo) Create(ctx context.Context, rel *domain.Relation) error {
	query := `INSERT INTO relations (id, predecessor_id, successor_id, lag, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rel.ID, rel.PredecessorID, rel.SuccessorID, rel.Lag,
		rel.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting relation: %w", err)
	}
	return nil
}

func (r *SQLiteRelationRepo) GetByID(ctx context.Context, id string) (*domain.Relation, error) {
	query := `SELECT id, predecessor_id, successor_id, lag, created_at
		FROM relations WHERE id = ?`
	rels, err := r.query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, fmt.Errorf("relation %q: %w", id, ErrNotFound)
	}
	return rels[0], nil
}

func (r *SQLiteRelationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM relations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting relation: %w", err)
	}
	return nil
}

func (r *SQLiteRelationRepo) List(ctx context.Context) ([]*domain.Relation, error) {
	return r.query(ctx, `SELECT id, predecessor_id, successor_id, lag, created_at
		FROM relations ORDER BY id`)
}

func (r *SQLiteRelationRepo) ListPredecessors(ctx context.Context, workItemID string) ([]*domain.Relation, error) {
	return r.query(ctx, `SELECT id, predecessor_id, successor_id, lag, created_at
		FROM relations WHERE successor_id = ? ORDER BY predecessor_id`, workItemID)
}

func (r *SQLiteRelationRepo) ListSuccessors(ctx context.Context, workItemID string) ([]*domain.Relation, error) {
	return r.query(ctx, `SELECT id, predecessor_id, successor_id, lag, created_at
		FROM relations WHERE predecessor_id = ? ORDER BY successor_id`, workItemID)
}

func (r *SQLiteRelationRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Relation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying relations: %w", err)
	}
	defer rows.Close()
	return scanRelations(rows)
}

func scanRelations(rows *sql.Rows) ([]*domain.Relation, error) {
	var rels []*domain.Relation
	for rows.Next() {
		var rel domain.Relation
		var createdAt string
		if err := rows.Scan(&rel.ID, &rel.PredecessorID, &rel.SuccessorID, &rel.Lag, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning relation: %w", err)
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing relation created_at: %w", err)
		}
		rel.CreatedAt = t
		rels = append(rels, &rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relations: %w", err)
	}
	return rels, nil
}
