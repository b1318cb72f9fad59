package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitmore/quarto/internal/model"
)

type FolderStore struct {
	db *sql.DB
}

func NewFolderStore(db *sql.DB) *FolderStore {
	return &FolderStore{db: db}
}

const folderCols = `id, name, created_at`

var folderUpdateCols = []string{"name"}

func scanFolder(scanner interface{ Scan(...any) error }) (*model.Folder, error) {
	var f model.Folder
	if err := scanner.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FolderStore) Insert(name string) (*model.Folder, error) {
	result, err := s.db.Exec(`INSERT INTO folders (name) VALUES (?)`, name)
	if err != nil {
		if isConstraint(err) {
			return nil, ErrConstraint
		}
		return nil, fmt.Errorf("insert folder: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *FolderStore) GetByID(id int64) (*model.Folder, error) {
	row := s.db.QueryRow(`SELECT `+folderCols+` FROM folders WHERE id = ?`, id)
	f, err := scanFolder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return f, nil
}

func (s *FolderStore) List() ([]model.Folder, error) {
	rows, err := s.db.Query(`SELECT ` + folderCols + ` FROM folders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *f)
	}
	return folders, rows.Err()
}

func (s *FolderStore) Update(id int64, fields map[string]any) (int64, error) {
	set, args := buildSet(fields, folderUpdateCols)
	if set == "" {
		return 0, nil
	}
	args = append(args, id)

	result, err := s.db.Exec(`UPDATE folders SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		if isConstraint(err) {
			return 0, ErrConstraint
		}
		return 0, fmt.Errorf("update folder: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// Delete removes the folder. Articles and notes referencing it keep the
// folder from being deleted (RESTRICT is SQLite's default FK action), which
// surfaces as ErrConstraint.
func (s *FolderStore) Delete(id int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		if isConstraint(err) {
			return 0, ErrConstraint
		}
		return 0, fmt.Errorf("delete folder: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
