package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration archivo SQL embebido, aplicado en orden de nombre.
type Migration struct {
	Name       string
	Statements []string
}

// LoadMigrations lee las migraciones embebidas y las divide en sentencias por ";".
func LoadMigrations() ([]Migration, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := migrationsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", name, err)
		}
		out = append(out, Migration{
			Name:       strings.TrimPrefix(name, "migrations/"),
			Statements: splitStatements(string(b)),
		})
	}
	return out, nil
}

// splitStatements separa por ";" descartando comentarios de línea y sentencias vacías.
func splitStatements(sql string) []string {
	sql = strings.ReplaceAll(sql, "\r\n", "\n")
	var clean strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		clean.WriteString(line)
		clean.WriteByte('\n')
	}
	parts := strings.Split(clean.String(), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Migrate aplica las migraciones pendientes, cada una en su propia transacción,
// y registra su nombre en schema_migrations. Devuelve los nombres aplicados.
func Migrate(ctx context.Context, runner *TxRunner) ([]string, error) {
	if _, err := runner.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return nil, fmt.Errorf("crear schema_migrations: %w", err)
	}
	pending, err := PendingMigrations(ctx, runner)
	if err != nil {
		return nil, err
	}
	applied := make([]string, 0, len(pending))
	for _, m := range pending {
		err := runner.inTx(ctx, func(q Querier) error {
			for i, stmt := range m.Statements {
				if _, err := q.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("%s sentencia %d: %w", m.Name, i+1, err)
				}
			}
			_, err := q.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name)
			return err
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, m.Name)
	}
	return applied, nil
}

// PendingMigrations migraciones embebidas que aún no están en schema_migrations.
func PendingMigrations(ctx context.Context, runner *TxRunner) ([]Migration, error) {
	all, err := LoadMigrations()
	if err != nil {
		return nil, err
	}
	done, err := appliedMigrations(ctx, runner)
	if isUndefinedTable(err) {
		// base recién creada: todavía no existe la tabla de control
		return all, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer schema_migrations: %w", err)
	}
	out := make([]Migration, 0, len(all))
	for _, m := range all {
		if !done[m.Name] {
			out = append(out, m)
		}
	}
	return out, nil
}

func appliedMigrations(ctx context.Context, runner *TxRunner) (map[string]bool, error) {
	rows, err := runner.pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	done := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		done[name] = true
	}
	return done, rows.Err()
}
