// Package store implements the persistence collaborator: a thin CRUD
// shell over a projects/samples relational schema, driven only by the
// project/sample CLI subcommands. It never participates in the
// streaming analyzer pipeline.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Project is one row of the projects table, with its samples attached.
type Project struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	CreatedAt string   `json:"created_at"`
	Samples   []Sample `json:"samples"`
}

// Sample is one row of the samples table. AnalysisResults is stored as
// a JSON blob and decoded lazily by callers that need the report shape.
type Sample struct {
	ID              int64           `json:"id"`
	ProjectID       int64           `json:"project_id"`
	Filename        string          `json:"filename"`
	Filepath        string          `json:"filepath"`
	AnalysisResults json.RawMessage `json:"analysis_results,omitempty"`
	UploadDate      string          `json:"upload_date"`
}

// Store wraps a database/sql handle over the projects/samples schema.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the schema exists, with foreign-key cascade enabled.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", path, err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create projects table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			filename TEXT NOT NULL,
			filepath TEXT NOT NULL,
			analysis_results_json TEXT,
			upload_date TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects (id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("create samples table: %w", err)
	}
	return nil
}

func nowISO8601() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CreateProject inserts a new project row and returns it.
func (s *Store) CreateProject(name string) (*Project, error) {
	createdAt := nowISO8601()
	res, err := s.db.Exec(`INSERT INTO projects (name, created_at) VALUES (?, ?)`, name, createdAt)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &Project{ID: id, Name: name, CreatedAt: createdAt, Samples: []Sample{}}, nil
}

// ListProjects returns every project, newest first, each with its
// samples attached (newest sample first within a project).
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Samples = []Sample{}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	for i := range projects {
		samples, err := s.samplesForProject(projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Samples = samples
	}
	return projects, nil
}

func (s *Store) samplesForProject(projectID int64) ([]Sample, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, filename, filepath, analysis_results_json, upload_date
		FROM samples WHERE project_id = ? ORDER BY upload_date DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	samples := []Sample{}
	for rows.Next() {
		var sm Sample
		var results sql.NullString
		if err := rows.Scan(&sm.ID, &sm.ProjectID, &sm.Filename, &sm.Filepath, &results, &sm.UploadDate); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if results.Valid && results.String != "" {
			sm.AnalysisResults = json.RawMessage(results.String)
		}
		samples = append(samples, sm)
	}
	return samples, rows.Err()
}

// DeleteProject removes a project and, via ON DELETE CASCADE, every
// sample attached to it.
func (s *Store) DeleteProject(id int64) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	return nil
}

// AddSample inserts a new sample row under projectID, attaching the
// analysis report (already-marshaled JSON, or nil if not yet analyzed).
func (s *Store) AddSample(projectID int64, filename, filepath string, analysisResults json.RawMessage) (*Sample, error) {
	uploadDate := nowISO8601()

	var results sql.NullString
	if len(analysisResults) > 0 {
		results = sql.NullString{String: string(analysisResults), Valid: true}
	}

	res, err := s.db.Exec(`
		INSERT INTO samples (project_id, filename, filepath, analysis_results_json, upload_date)
		VALUES (?, ?, ?, ?, ?)
	`, projectID, filename, filepath, results, uploadDate)
	if err != nil {
		return nil, fmt.Errorf("add sample: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add sample: %w", err)
	}

	return &Sample{
		ID:              id,
		ProjectID:       projectID,
		Filename:        filename,
		Filepath:        filepath,
		AnalysisResults: analysisResults,
		UploadDate:      uploadDate,
	}, nil
}

// UpdateSample replaces a sample's stored analysis results and returns
// the updated row.
func (s *Store) UpdateSample(id int64, analysisResults json.RawMessage) (*Sample, error) {
	_, err := s.db.Exec(`UPDATE samples SET analysis_results_json = ? WHERE id = ?`, string(analysisResults), id)
	if err != nil {
		return nil, fmt.Errorf("update sample %d: %w", id, err)
	}

	var sm Sample
	var results sql.NullString
	row := s.db.QueryRow(`
		SELECT id, project_id, filename, filepath, analysis_results_json, upload_date
		FROM samples WHERE id = ?
	`, id)
	if err := row.Scan(&sm.ID, &sm.ProjectID, &sm.Filename, &sm.Filepath, &results, &sm.UploadDate); err != nil {
		return nil, fmt.Errorf("update sample %d: %w", id, err)
	}
	if results.Valid && results.String != "" {
		sm.AnalysisResults = json.RawMessage(results.String)
	}
	return &sm, nil
}

// DeleteSample removes a single sample row.
func (s *Store) DeleteSample(id int64) error {
	_, err := s.db.Exec(`DELETE FROM samples WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sample %d: %w", id, err)
	}
	return nil
}
