package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Status is the outcome of a build.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Build is one recorded compilation.
type Build struct {
	ID     string `json:"id"`
	Seq    int64  `json:"seq"`
	Source string `json:"source"`

	// TreeHash is the syntax tree's content hash, the cache key.
	TreeHash string `json:"tree_hash"`
	Status   Status `json:"status"`

	// Set when Status is StatusOK.
	ProgramHash string `json:"program_hash,omitempty"`
	IRText      string `json:"-"`
	IRJSON      string `json:"-"`

	// Set when Status is StatusError.
	ErrorPass    string `json:"error_pass,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

const buildColumns = `id, created_seq, source, tree_hash, status, program_hash,
	error_pass, error_code, error_message, ir_text, ir_json`

// Record stores b under a new ID and sequence number and returns the stored
// build. b.ID and b.Seq are ignored.
func (s *Store) Record(ctx context.Context, b Build) (Build, error) {
	if b.TreeHash == "" {
		return Build{}, fmt.Errorf("record build: tree hash is required")
	}
	switch b.Status {
	case StatusOK:
		if b.ProgramHash == "" {
			return Build{}, fmt.Errorf("record build: program hash is required for status %q", b.Status)
		}
	case StatusError:
		if b.ErrorMessage == "" {
			return Build{}, fmt.Errorf("record build: error message is required for status %q", b.Status)
		}
	default:
		return Build{}, fmt.Errorf("record build: invalid status %q", b.Status)
	}

	b.ID = s.ids.Generate()
	b.Seq = s.clock.Next()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (`+buildColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID,
		b.Seq,
		b.Source,
		b.TreeHash,
		string(b.Status),
		b.ProgramHash,
		b.ErrorPass,
		b.ErrorCode,
		b.ErrorMessage,
		b.IRText,
		b.IRJSON,
	)
	if err != nil {
		return Build{}, fmt.Errorf("record build: %w", err)
	}

	s.logger.Debug("build recorded",
		"id", b.ID,
		"seq", b.Seq,
		"tree_hash", b.TreeHash,
		"status", b.Status,
	)
	return b, nil
}

// Lookup returns the most recent build of the tree with the given hash.
// The bool is false on a cache miss.
func (s *Store) Lookup(ctx context.Context, treeHash string) (Build, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+buildColumns+`
		FROM builds
		WHERE tree_hash = ?
		ORDER BY created_seq DESC
		LIMIT 1
	`, treeHash)

	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("build cache miss", "tree_hash", treeHash)
		return Build{}, false, nil
	}
	if err != nil {
		return Build{}, false, fmt.Errorf("lookup build: %w", err)
	}

	s.logger.Debug("build cache hit", "tree_hash", treeHash, "id", b.ID)
	return b, true, nil
}

// Get returns the build with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Build, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+buildColumns+`
		FROM builds
		WHERE id = ?
	`, id)

	b, err := scanBuild(row)
	if err != nil {
		return Build{}, fmt.Errorf("get build %s: %w", id, err)
	}
	return b, nil
}

// List returns up to limit builds, newest first. A limit <= 0 returns all
// builds. The result is never nil.
func (s *Store) List(ctx context.Context, limit int) ([]Build, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+buildColumns+`
		FROM builds
		ORDER BY created_seq DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	builds := []Build{}
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return builds, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(sc scanner) (Build, error) {
	var (
		b      Build
		status string
	)
	err := sc.Scan(
		&b.ID,
		&b.Seq,
		&b.Source,
		&b.TreeHash,
		&status,
		&b.ProgramHash,
		&b.ErrorPass,
		&b.ErrorCode,
		&b.ErrorMessage,
		&b.IRText,
		&b.IRJSON,
	)
	if err != nil {
		return Build{}, err
	}
	b.Status = Status(status)
	return b, nil
}
