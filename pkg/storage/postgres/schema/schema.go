package schema

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/opst/hbnb/pkg/conn/db/postgres/pool"
	"github.com/opst/hbnb/pkg/conn/db/postgres/scanner"
)

//go:embed versions
var versions embed.FS

// Embedded returns the schema repository built into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(versions, "versions")
	if err != nil {
		panic(err) // versions is embedded, so this never happens.
	}
	return sub
}

type pgSchema struct {
	pool       pool.Pool
	repository fs.FS
}

// New creates a new Schema.
//
// repository holds schema versions. Each version is a directory named by its number,
// containing "*.sql" files which are applied in lexical order.
// Other entries in repository are ignored.
func New(p pool.Pool, repository fs.FS) *pgSchema {
	return &pgSchema{pool: p, repository: repository}
}

// migration is a schema version and its scripts.
type migration struct {
	number  int
	scripts []string
}

func (m migration) run(ctx context.Context, repository fs.FS, q pool.Queryer) error {
	for _, s := range m.scripts {
		sql, err := fs.ReadFile(repository, s)
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("schema version %d, %s: %w", m.number, s, err)
		}
	}
	return nil
}

// Version returns the version applied to the database.
//
// It is 0 when no schema has been applied.
func (s *pgSchema) Version(ctx context.Context) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	defer conn.Release()

	var current *int
	err = conn.QueryRow(ctx, `SELECT max("version") FROM "schema_version"`).Scan(&current)

	pgerr := new(pgconn.PgError)
	switch {
	case errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UndefinedTable:
		return 0, nil
	case err != nil:
		return -1, err
	case current == nil:
		return 0, nil
	default:
		return *current, nil
	}
}

// Upgrade applies versions newer than the current one, in a transaction.
func (s *pgSchema) Upgrade(ctx context.Context) error {
	migrations, err := s.migrations()
	if err != nil {
		return err
	}
	current, err := s.Version(ctx)
	if err != nil {
		return err
	}

	pending := slices.DeleteFunc(migrations, func(m migration) bool { return m.number <= current })
	if len(pending) == 0 {
		return nil
	}

	return pool.InTx(ctx, s.pool, func(tx pool.Tx) error {
		for _, m := range pending {
			if err := m.run(ctx, s.repository, tx); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(ctx, `DELETE FROM "schema_version"`); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx, `INSERT INTO "schema_version" ("version") VALUES ($1)`,
			pending[len(pending)-1].number,
		)
		return err
	})
}

// Drop removes every table in the current schema, "schema_version" included.
//
// After Drop, Version reports 0.
func (s *pgSchema) Drop(ctx context.Context) error {
	return pool.InTx(ctx, s.pool, func(tx pool.Tx) error {
		tables, err := scanner.New[string]().QueryAll(
			ctx, tx,
			`SELECT "tablename"::text FROM "pg_tables" WHERE "schemaname" = current_schema()`,
		)
		if err != nil || len(tables) == 0 {
			return err
		}

		idents := make([]string, 0, len(tables))
		for _, t := range tables {
			idents = append(idents, pgx.Identifier{t}.Sanitize())
		}
		_, err = tx.Exec(ctx, `DROP TABLE IF EXISTS `+strings.Join(idents, ", ")+` CASCADE`)
		return err
	})
}

// Latest returns the newest version in the repository.
func (s *pgSchema) Latest() (int, error) {
	ms, err := s.migrations()
	if err != nil {
		return -1, err
	}
	if len(ms) == 0 {
		return 0, nil
	}
	return ms[len(ms)-1].number, nil
}

// migrations reads the repository, sorted by version number.
func (s *pgSchema) migrations() ([]migration, error) {
	entries, err := fs.ReadDir(s.repository, ".")
	if err != nil {
		return nil, err
	}

	ms := []migration{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		scripts, err := fs.Glob(s.repository, e.Name()+"/*.sql")
		if err != nil {
			return nil, err
		}
		slices.Sort(scripts)
		ms = append(ms, migration{number: n, scripts: scripts})
	}
	slices.SortFunc(ms, func(a, b migration) int { return a.number - b.number })
	return ms, nil
}
