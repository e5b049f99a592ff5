package db

import (
	"context"

	"seodash/internal/models"
)

// RecordQueryExecution appends an entry to the execution log.
func (d *DB) RecordQueryExecution(ctx context.Context, e *models.QueryExecution) error {
	query := `
		INSERT INTO query_executions (client_code, query_id, query_type, outcome, duration_ms, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return d.Pool.QueryRow(ctx, query,
		e.ClientCode, e.QueryID, e.QueryType, e.Outcome, e.DurationMS, e.ExecutedAt,
	).Scan(&e.ID)
}

// GetExecutionCounts returns the number of logged executions per query type and outcome.
func (d *DB) GetExecutionCounts(ctx context.Context) ([]models.ExecutionCount, error) {
	query := `
		SELECT query_type, outcome, COUNT(*)
		FROM query_executions
		GROUP BY query_type, outcome
		ORDER BY query_type, outcome
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.ExecutionCount
	for rows.Next() {
		var c models.ExecutionCount
		if err := rows.Scan(&c.QueryType, &c.Outcome, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// GetRecentExecutions returns the latest executions of a client, newest first.
func (d *DB) GetRecentExecutions(ctx context.Context, clientCode string, limit int) ([]models.QueryExecution, error) {
	query := `
		SELECT id, client_code, query_id, query_type, outcome, duration_ms, executed_at
		FROM query_executions
		WHERE lower(client_code) = lower($1)
		ORDER BY executed_at DESC
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, clientCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var executions []models.QueryExecution
	for rows.Next() {
		var e models.QueryExecution
		if err := rows.Scan(&e.ID, &e.ClientCode, &e.QueryID, &e.QueryType, &e.Outcome, &e.DurationMS, &e.ExecutedAt); err != nil {
			return nil, err
		}
		executions = append(executions, e)
	}

	return executions, rows.Err()
}
