package store

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"leadscope/internal/model"

	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db        *sql.DB
	retention time.Duration
	mu        sync.RWMutex
	stop      chan struct{}
}

// NewSQLite opens (or creates) a SQLite store at the given path.
func NewSQLite(dbPath string, retention time.Duration) (Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1) // SQLite doesn't handle concurrent writes well
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			ip         TEXT NOT NULL,
			company    TEXT NOT NULL,
			domain     TEXT NOT NULL,
			source     TEXT NOT NULL,
			profile    TEXT NOT NULL,
			visited_at INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at)`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			role       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, err
	}

	s := &sqliteStore{
		db:        db,
		retention: retention,
		stop:      make(chan struct{}),
	}
	go s.cleanupLoop()

	log.Info("SQLite store opened", "path", dbPath, "retention", retention)
	return s, nil
}

func (s *sqliteStore) SaveVisit(v *model.Visit) error {
	if v.VisitedAt.IsZero() {
		v.VisitedAt = time.Now()
	}
	profile, err := json.Marshal(v.Profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO visits (ip, company, domain, source, profile, visited_at) VALUES (?, ?, ?, ?, ?, ?)`,
		v.IP, v.CompanyName, v.Domain, v.Source, string(profile), v.VisitedAt.Unix(),
	)
	if err != nil {
		return err
	}
	v.ID, _ = res.LastInsertId()
	return nil
}

func (s *sqliteStore) RecentVisits(limit int) ([]model.Visit, error) {
	if limit <= 0 {
		limit = 100
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, ip, company, domain, source, profile, visited_at
		 FROM visits ORDER BY visited_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVisits(rows)
}

func (s *sqliteStore) CountVisits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM visits").Scan(&count); err != nil {
		return 0
	}
	return count
}

func (s *sqliteStore) CreateUser(email, passwordHash, role string) (*model.User, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO users (email, password, role, created_at) VALUES (?, ?, ?, ?)`,
		email, passwordHash, role, now.Unix(),
	)
	if err != nil {
		return nil, err
	}
	id, _ := res.LastInsertId()
	return &model.User{ID: id, Email: email, Password: passwordHash, Role: role, CreatedAt: now}, nil
}

func (s *sqliteStore) UserByEmail(email string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		u         model.User
		createdAt int64
	)
	err := s.db.QueryRow(
		`SELECT id, email, password, role, created_at FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &createdAt)
	if err != nil {
		return nil, false
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	return &u, true
}

func (s *sqliteStore) CountUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0
	}
	return count
}

// Cleanup removes visits older than the retention window.
func (s *sqliteStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.retention).Unix()
	result, err := s.db.Exec("DELETE FROM visits WHERE visited_at <= ?", cutoff)
	if err != nil {
		log.Error("SQLite cleanup failed", "err", err)
		return
	}
	if affected, _ := result.RowsAffected(); affected > 0 {
		log.Info("SQLite cleanup removed expired visits", "removed", affected)
	}
}

func (s *sqliteStore) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stop:
			return
		}
	}
}

func (s *sqliteStore) Close() error {
	close(s.stop)
	err := s.db.Close()
	log.Info("SQLite store closed")
	return err
}

func scanVisits(rows *sql.Rows) ([]model.Visit, error) {
	var visits []model.Visit
	for rows.Next() {
		var (
			v         model.Visit
			profile   string
			visitedAt int64
		)
		if err := rows.Scan(&v.ID, &v.IP, &v.CompanyName, &v.Domain, &v.Source, &profile, &visitedAt); err != nil {
			return nil, err
		}
		if profile != "" && profile != "null" {
			var p model.CompanyProfile
			if json.Unmarshal([]byte(profile), &p) == nil {
				v.Profile = &p
			}
		}
		v.VisitedAt = time.Unix(visitedAt, 0)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
