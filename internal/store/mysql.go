package store

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"leadscope/internal/model"

	_ "github.com/go-sql-driver/mysql"
)

type mysqlStore struct {
	db        *sql.DB
	retention time.Duration
	mu        sync.RWMutex
	stop      chan struct{}
}

// NewMySQL opens a MySQL-backed store with the given DSN.
func NewMySQL(dsn string, retention time.Duration) (Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id         BIGINT PRIMARY KEY AUTO_INCREMENT,
			ip         VARCHAR(45) NOT NULL,
			company    VARCHAR(255) NOT NULL,
			domain     VARCHAR(255) NOT NULL,
			source     VARCHAR(30) NOT NULL,
			profile    TEXT NOT NULL,
			visited_at BIGINT NOT NULL,
			INDEX idx_visits_visited_at (visited_at)
		)
	`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         BIGINT PRIMARY KEY AUTO_INCREMENT,
			email      VARCHAR(255) NOT NULL UNIQUE,
			password   VARCHAR(100) NOT NULL,
			role       VARCHAR(20) NOT NULL,
			created_at BIGINT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, err
	}

	s := &mysqlStore{
		db:        db,
		retention: retention,
		stop:      make(chan struct{}),
	}
	go s.cleanupLoop()

	log.Info("MySQL store opened", "retention", retention)
	return s, nil
}

func (s *mysqlStore) SaveVisit(v *model.Visit) error {
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

func (s *mysqlStore) RecentVisits(limit int) ([]model.Visit, error) {
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

func (s *mysqlStore) CountVisits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM visits").Scan(&count); err != nil {
		return 0
	}
	return count
}

func (s *mysqlStore) CreateUser(email, passwordHash, role string) (*model.User, error) {
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

func (s *mysqlStore) UserByEmail(email string) (*model.User, bool) {
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

func (s *mysqlStore) CountUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0
	}
	return count
}

// Cleanup removes visits older than the retention window.
func (s *mysqlStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.retention).Unix()
	result, err := s.db.Exec("DELETE FROM visits WHERE visited_at <= ?", cutoff)
	if err != nil {
		log.Error("MySQL cleanup failed", "err", err)
		return
	}
	if affected, _ := result.RowsAffected(); affected > 0 {
		log.Info("MySQL cleanup removed expired visits", "removed", affected)
	}
}

func (s *mysqlStore) cleanupLoop() {
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

func (s *mysqlStore) Close() error {
	close(s.stop)
	err := s.db.Close()
	log.Info("MySQL store closed")
	return err
}
