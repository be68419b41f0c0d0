package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/umpire-engine/umpire/internal/repository"
)

// TrainingRepo persists TrainingInstance rows for the offline-learning
// export pipeline.
type TrainingRepo struct {
	db *sql.DB
}

// NewTrainingRepo creates a TrainingRepo.
func NewTrainingRepo(db *sql.DB) *TrainingRepo {
	return &TrainingRepo{db: db}
}

// Save inserts one TrainingInstance row, JSON-encoded by the caller.
func (r *TrainingRepo) Save(ctx context.Context, matchID string, player uint8, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO training_instances (match_id, player, data) VALUES ($1, $2, $3)`,
		matchID, player, data,
	)
	if err != nil {
		return fmt.Errorf("save training instance: %w", err)
	}
	return nil
}

// ListByMatch returns every instance recorded for one match, oldest first.
func (r *TrainingRepo) ListByMatch(ctx context.Context, matchID string) ([]repository.TrainingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, match_id, player, data FROM training_instances WHERE match_id = $1 ORDER BY id`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list training instances by match: %w", err)
	}
	defer rows.Close()
	return scanTrainingRows(rows)
}

// ListAll returns up to limit instances across all matches, oldest first.
// A limit of 0 means "no limit".
func (r *TrainingRepo) ListAll(ctx context.Context, limit int) ([]repository.TrainingRecord, error) {
	query := `SELECT id, match_id, player, data FROM training_instances ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list training instances: %w", err)
	}
	defer rows.Close()
	return scanTrainingRows(rows)
}

func scanTrainingRows(rows *sql.Rows) ([]repository.TrainingRecord, error) {
	var records []repository.TrainingRecord
	for rows.Next() {
		var rec repository.TrainingRecord
		if err := rows.Scan(&rec.ID, &rec.MatchID, &rec.Player, &rec.Data); err != nil {
			return nil, fmt.Errorf("scan training instance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training instances: %w", err)
	}
	return records, nil
}
