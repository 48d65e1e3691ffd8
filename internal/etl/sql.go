package etl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/BartekS5/uilm/pkg/logger"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/BartekS5/uilm/pkg/utils"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ErrInvalidTableName is returned for table names that cannot be safely
// interpolated into a statement.
var ErrInvalidTableName = errors.New("invalid table name")

const sqlColumns = "id, tenant_id, module_id, module_name, key_name, value, resources, routes, is_partially_translated"

func checkTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	return nil
}

// SQLLoader upserts records into a SQL Server table.
type SQLLoader struct {
	DB          *sql.DB
	Table       string
	Transformer *Transformer
	Validator   *Validator
}

func NewSQLLoader(db *sql.DB, table string) (*SQLLoader, error) {
	if err := checkTableName(table); err != nil {
		return nil, err
	}
	return &SQLLoader{
		DB:          db,
		Table:       table,
		Transformer: NewTransformer(),
		Validator:   NewValidator(),
	}, nil
}

// EnsureTable creates the target table when it does not exist yet.
func (l *SQLLoader) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`IF OBJECT_ID(N'%[1]s', N'U') IS NULL
CREATE TABLE %[1]s (
	id NVARCHAR(64) NOT NULL PRIMARY KEY,
	tenant_id NVARCHAR(256) NOT NULL,
	module_id NVARCHAR(256) NOT NULL,
	module_name NVARCHAR(256) NOT NULL,
	key_name NVARCHAR(1024) NOT NULL,
	value NVARCHAR(MAX) NULL,
	resources NVARCHAR(MAX) NOT NULL,
	routes NVARCHAR(MAX) NOT NULL,
	is_partially_translated BIT NOT NULL
)`, l.Table)
	if _, err := l.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table %s: %w", l.Table, err)
	}
	return nil
}

// Load writes one batch inside a transaction. Rows are matched on tenant,
// module and key; a matched row keeps its id.
func (l *SQLLoader) Load(ctx context.Context, records []models.TranslationRecord) error {
	logger.Infof("SQL Loader: Processing %d records...", len(records))

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted, updated := 0, 0
	for _, rec := range records {
		if err := l.Validator.ValidateRecord(rec); err != nil {
			logger.Warnf("Skipping record %q: %v", rec.KeyName, err)
			continue
		}
		row, err := l.Transformer.ToSQLRow(rec)
		if err != nil {
			logger.Warnf("Skipping record due to transform error: %v", err)
			continue
		}

		var id string
		checkQuery := fmt.Sprintf("SELECT id FROM %s WHERE tenant_id = @p1 AND module_id = @p2 AND key_name = @p3", l.Table)
		err = tx.QueryRowContext(ctx, checkQuery, row.TenantID, row.ModuleID, row.KeyName).Scan(&id)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := l.insertRow(ctx, tx, row); err != nil {
				return err
			}
			inserted++
		case err == nil:
			row.ID = id
			if err := l.updateRow(ctx, tx, row); err != nil {
				return err
			}
			updated++
		default:
			return fmt.Errorf("error checking row existence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logger.Infof("SQL Loader: inserted %d, updated %d", inserted, updated)
	return nil
}

func (l *SQLLoader) insertRow(ctx context.Context, tx *sql.Tx, row SQLRow) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (@p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8, @p9)", l.Table, sqlColumns)
	_, err := tx.ExecContext(ctx, query,
		row.ID, row.TenantID, row.ModuleID, row.ModuleName, row.KeyName,
		row.Value, row.Resources, row.Routes, row.IsPartiallyTranslated)
	if err != nil {
		return fmt.Errorf("error inserting %q: %w", row.KeyName, err)
	}
	return nil
}

func (l *SQLLoader) updateRow(ctx context.Context, tx *sql.Tx, row SQLRow) error {
	query := fmt.Sprintf(`UPDATE %s SET module_name = @p1, value = @p2, resources = @p3, routes = @p4,
	is_partially_translated = @p5 WHERE id = @p6`, l.Table)
	_, err := tx.ExecContext(ctx, query,
		row.ModuleName, row.Value, row.Resources, row.Routes, row.IsPartiallyTranslated, row.ID)
	if err != nil {
		return fmt.Errorf("error updating %q: %w", row.KeyName, err)
	}
	logger.Debugf("Updated record ID: %v", row.ID)
	return nil
}

// SQLExtractor pages through a table filled by SQLLoader.
type SQLExtractor struct {
	DB          *sql.DB
	Table       string
	TenantID    string
	ModuleID    string
	Transformer *Transformer
}

func NewSQLExtractor(db *sql.DB, table, tenantID, moduleID string) (*SQLExtractor, error) {
	if err := checkTableName(table); err != nil {
		return nil, err
	}
	return &SQLExtractor{
		DB:          db,
		Table:       table,
		TenantID:    tenantID,
		ModuleID:    moduleID,
		Transformer: NewTransformer(),
	}, nil
}

func (s *SQLExtractor) Extract(ctx context.Context, batchSize int, offset interface{}) ([]models.TranslationRecord, interface{}, error) {
	skip := utils.GetIntOffset(offset)
	query := fmt.Sprintf(`SELECT %s FROM %s
WHERE (@p1 = '' OR tenant_id = @p1) AND (@p2 = '' OR module_id = @p2)
ORDER BY module_id, key_name OFFSET @p3 ROWS FETCH NEXT @p4 ROWS ONLY`, sqlColumns, s.Table)

	rows, err := s.DB.QueryContext(ctx, query, s.TenantID, s.ModuleID, skip, batchSize)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var results []models.TranslationRecord
	read := 0
	for rows.Next() {
		var row SQLRow
		if err := rows.Scan(&row.ID, &row.TenantID, &row.ModuleID, &row.ModuleName, &row.KeyName,
			&row.Value, &row.Resources, &row.Routes, &row.IsPartiallyTranslated); err != nil {
			return nil, nil, err
		}
		read++
		rec, err := s.Transformer.FromSQLRow(row)
		if err != nil {
			logger.Errorf("Skipping stored row: %v", err)
			continue
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return results, skip + read, nil
}
