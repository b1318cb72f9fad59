package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitmore/quarto/internal/model"
)

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

const noteCols = `id, title, content, folder_id, created_at, updated_at`

var noteUpdateCols = []string{"title", "content"}

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	var folderID sql.NullInt64

	err := scanner.Scan(&n.ID, &n.Title, &n.Content, &folderID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if folderID.Valid {
		n.FolderID = &folderID.Int64
	}
	return &n, nil
}

func (s *NoteStore) Insert(title, content string, folderID *int64) (*model.Note, error) {
	var fid sql.NullInt64
	if folderID != nil {
		fid = sql.NullInt64{Int64: *folderID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO notes (title, content, folder_id) VALUES (?, ?, ?)`,
		title, content, fid,
	)
	if err != nil {
		if isConstraint(err) {
			return nil, ErrConstraint
		}
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *NoteStore) GetByID(id int64) (*model.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (s *NoteStore) List() ([]model.Note, error) {
	rows, err := s.db.Query(`SELECT ` + noteCols + ` FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

// Update applies the supplied fields and bumps updated_at. Returns the
// number of rows affected.
func (s *NoteStore) Update(id int64, fields map[string]any) (int64, error) {
	set, args := buildSet(fields, noteUpdateCols)
	if set == "" {
		return 0, nil
	}
	args = append(args, id)

	result, err := s.db.Exec(
		`UPDATE notes SET `+set+`, updated_at = datetime('now') WHERE id = ?`, args...,
	)
	if err != nil {
		if isConstraint(err) {
			return 0, ErrConstraint
		}
		return 0, fmt.Errorf("update note: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func (s *NoteStore) Delete(id int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete note: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
