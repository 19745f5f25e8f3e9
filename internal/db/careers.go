package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-compass/internal/types"
)

// -----------------------------------------------------------------------------
// Career Catalog Methods
// -----------------------------------------------------------------------------

// LoadCareers returns every career in catalog order.
func (db *DB) LoadCareers(ctx context.Context) ([]types.Career, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, sector, required_education, average_salary,
		        growth_outlook, months_to_entry, attributes
		 FROM careers
		 ORDER BY position ASC, id ASC`,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "load careers", Cause: err}
	}
	defer rows.Close()

	var careers []types.Career
	for rows.Next() {
		var c types.Career
		var sector string
		var attrs []byte
		if err := rows.Scan(&c.ID, &c.Title, &sector, &c.RequiredEducation, &c.AverageSalary,
			&c.GrowthOutlook, &c.MonthsToEntry, &attrs); err != nil {
			return nil, &PersistenceError{Op: "scan career", Cause: err}
		}
		c.Sector = types.Sector(sector)
		if err := applyAttributes(&c, attrs); err != nil {
			return nil, &PersistenceError{Op: "decode career " + c.ID, Cause: err}
		}
		careers = append(careers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "load careers", Cause: err}
	}
	return careers, nil
}

// UpsertCareers writes careers in one transaction, keeping their order.
func (db *DB) UpsertCareers(ctx context.Context, careers []types.Career) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return &PersistenceError{Op: "begin career upsert", Cause: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for i, c := range careers {
		attrs, err := encodeAttributes(c)
		if err != nil {
			return &PersistenceError{Op: "encode career " + c.ID, Cause: err}
		}
		batch.Queue(
			`INSERT INTO careers (id, position, title, sector, required_education, average_salary,
			                      growth_outlook, months_to_entry, attributes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO UPDATE SET
			     position = $2, title = $3, sector = $4, required_education = $5,
			     average_salary = $6, growth_outlook = $7, months_to_entry = $8,
			     attributes = $9, updated_at = NOW()`,
			c.ID, i, c.Title, string(c.Sector), c.RequiredEducation, c.AverageSalary,
			c.GrowthOutlook, c.MonthsToEntry, attrs,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return &PersistenceError{Op: "upsert careers", Cause: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &PersistenceError{Op: "commit career upsert", Cause: err}
	}
	return nil
}

func encodeAttributes(c types.Career) ([]byte, error) {
	return json.Marshal(careerAttributes{
		Certifications:   c.Certifications,
		Keywords:         c.Keywords,
		Traits:           c.Traits,
		Aliases:          c.Aliases,
		WorkEnvironments: c.WorkEnvironments,
	})
}

func applyAttributes(c *types.Career, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var a careerAttributes
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("invalid attributes: %w", err)
	}
	c.Certifications = a.Certifications
	c.Keywords = a.Keywords
	c.Traits = a.Traits
	c.Aliases = a.Aliases
	c.WorkEnvironments = a.WorkEnvironments
	return nil
}
