package climate

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/richard-senior/smoothcurve/internal/logger"
	_ "modernc.org/sqlite"
)

const tableName = "climate_month"

// Store persists climate records in a SQLite database
type Store struct {
	db   *sql.DB
	path string
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// OpenStore opens (creating if needed) the database at path and ensures the
// records table exists. ":memory:" gives a private in-memory database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every pooled connection to :memory: would be a different database
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := &Store{db: db, path: path}
	if err := s.CreateTable(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Database initialized successfully", path)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTable creates the records table from the Record struct tags
func (s *Store) CreateTable() error {
	createSQL := generateCreateTableSQL(&Record{}, tableName)
	logger.Debug("Creating table with SQL", createSQL)
	if _, err := s.db.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return nil
}

// generateCreateTableSQL generates CREATE TABLE SQL from struct tags
func generateCreateTableSQL(obj any, table string) string {
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var defs []string
	var primaryKeys []string
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		dbType := field.Tag.Get("dbtype")
		if !field.IsExported() || dbType == "" {
			continue
		}
		col := columnName(field)
		if field.Tag.Get("primary") == "true" {
			primaryKeys = append(primaryKeys, col)
		}
		defs = append(defs, fmt.Sprintf("%s %s", col, dbType))
	}
	if len(primaryKeys) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
}

func columnName(field reflect.StructField) string {
	if c := field.Tag.Get("column"); c != "" {
		return c
	}
	return strings.ToLower(field.Name)
}

// persistedFields returns column names alongside the addressable field values
func persistedFields(obj any) ([]string, []reflect.Value, []bool) {
	objValue := reflect.ValueOf(obj).Elem()
	objType := objValue.Type()

	var cols []string
	var values []reflect.Value
	var primary []bool
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		cols = append(cols, columnName(field))
		values = append(values, objValue.Field(i))
		primary = append(primary, field.Tag.Get("primary") == "true")
	}
	return cols, values, primary
}

// Save inserts the records, replacing any stored record for the same month
func (s *Store) Save(records ...Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range records {
		if err := upsert(tx, &records[i]); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func upsert(e execer, r *Record) error {
	cols, values, primary := persistedFields(r)

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	var keys, sets []string
	for i, c := range cols {
		placeholders[i] = "?"
		args[i] = sqlValue(values[i])
		if primary[i] {
			keys = append(keys, c)
		} else {
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		tableName, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
		strings.Join(keys, ", "), strings.Join(sets, ", "))
	logger.Debug("Upsert SQL", query)

	if _, err := e.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to save %s into %s: %w", r.Month, tableName, err)
	}
	return nil
}

func sqlValue(v reflect.Value) any {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Interface()
	}
	return v.Interface()
}

// Seed saves every record of the dataset
func (s *Store) Seed(d *Dataset) error {
	if err := s.Save(d.Data...); err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}
	logger.Info("Seeded store with records", len(d.Data))
	return nil
}

// Count returns the number of stored records
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", tableName, err)
	}
	return count, nil
}

// Between returns stored records with from <= month <= to in month order.
// An empty bound is open.
func (s *Store) Between(from, to string) ([]Record, error) {
	cols, _, _ := persistedFields(&Record{})

	var where []string
	var args []any
	if from != "" {
		where = append(where, "month >= ?")
		args = append(args, from)
	}
	if to != "" {
		where = append(where, "month <= ?")
		args = append(args, to)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), tableName)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY month"
	logger.Debug("Between SQL", query)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", tableName, err)
	}
	defer rows.Close()

	ret := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows from %s: %w", tableName, err)
	}
	return ret, nil
}

// scanRecord reads one row, nullable columns going through sql.NullFloat64
func scanRecord(rows *sql.Rows) (Record, error) {
	var r Record
	_, values, _ := persistedFields(&r)

	dest := make([]any, len(values))
	nulls := make([]*sql.NullFloat64, len(values))
	for i, v := range values {
		if v.Kind() == reflect.Ptr {
			nulls[i] = &sql.NullFloat64{}
			dest[i] = nulls[i]
		} else {
			dest[i] = v.Addr().Interface()
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return r, fmt.Errorf("failed to scan row from %s: %w", tableName, err)
	}
	for i, n := range nulls {
		if n != nil && n.Valid {
			f := n.Float64
			values[i].Set(reflect.ValueOf(&f))
		}
	}
	return r, nil
}
