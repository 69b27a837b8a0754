// Package store хранит запечатанные конверты в базе sqlite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("store: запись не найдена")

// Record — одна запись хранилища.
type Record struct {
	Name    string
	Blob    []byte
	Created time.Time
}

type Store struct {
	conn *sql.DB
}

// Open открывает базу по dsn и создаёт таблицу, если её нет.
// Соединение закрывается при отмене ctx.
func Open(ctx context.Context, dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы: %w", err)
	}
	// :memory: живёт в одном соединении
	conn.SetMaxOpenConns(1)

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	_, err = conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS records (
		name    TEXT PRIMARY KEY,
		blob    BLOB NOT NULL,
		created INTEGER NOT NULL
	)`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ошибка создания таблицы: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Put сохраняет запись, заменяя существующую с тем же именем.
func (s *Store) Put(ctx context.Context, name string, blob []byte) error {
	if name == "" {
		return errors.New("store: пустое имя")
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO records(name, blob, created) VALUES($1, $2, $3)
		 ON CONFLICT(name) DO UPDATE SET blob = excluded.blob, created = excluded.created`,
		name, blob, time.Now().UnixNano())
	return err
}

func (s *Store) Get(ctx context.Context, name string) (r Record, err error) {
	var created int64
	err = s.conn.QueryRowContext(ctx, "SELECT name, blob, created FROM records WHERE name = $1", name).
		Scan(&r.Name, &r.Blob, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	r.Created = time.Unix(0, created)
	return
}

// List возвращает записи, упорядоченные по имени.
func (s *Store) List(ctx context.Context) (records []Record, err error) {
	rows, err := s.conn.QueryContext(ctx, "SELECT name, blob, created FROM records ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records = make([]Record, 0)
	for rows.Next() {
		var r Record
		var created int64
		if err = rows.Scan(&r.Name, &r.Blob, &created); err != nil {
			return
		}
		r.Created = time.Unix(0, created)
		records = append(records, r)
	}
	err = rows.Err()
	return
}

func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM records WHERE name = $1", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
