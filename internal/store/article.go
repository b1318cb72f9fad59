package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitmore/quarto/internal/model"
)

type ArticleStore struct {
	db *sql.DB
}

func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleCols = `id, title, style, content, folder_id, date_published`

var articleUpdateCols = []string{"title", "style", "content"}

func scanArticle(scanner interface{ Scan(...any) error }) (*model.Article, error) {
	var a model.Article
	var folderID sql.NullInt64

	err := scanner.Scan(&a.ID, &a.Title, &a.Style, &a.Content, &folderID, &a.DatePublished)
	if err != nil {
		return nil, err
	}

	if folderID.Valid {
		a.FolderID = &folderID.Int64
	}
	return &a, nil
}

// Insert stores a new article. The id and date_published columns are
// assigned by the database; the stored row is re-read and returned.
func (s *ArticleStore) Insert(title, style, content string, folderID *int64) (*model.Article, error) {
	var fid sql.NullInt64
	if folderID != nil {
		fid = sql.NullInt64{Int64: *folderID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO articles (title, style, content, folder_id) VALUES (?, ?, ?, ?)`,
		title, style, content, fid,
	)
	if err != nil {
		if isConstraint(err) {
			return nil, ErrConstraint
		}
		return nil, fmt.Errorf("insert article: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// GetByID returns the article, or (nil, nil) when no row has that id.
func (s *ArticleStore) GetByID(id int64) (*model.Article, error) {
	row := s.db.QueryRow(`SELECT `+articleCols+` FROM articles WHERE id = ?`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

func (s *ArticleStore) List() ([]model.Article, error) {
	rows, err := s.db.Query(`SELECT ` + articleCols + ` FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// Update applies the supplied fields to an existing row, leaving omitted
// columns untouched. Returns the number of rows affected.
func (s *ArticleStore) Update(id int64, fields map[string]any) (int64, error) {
	set, args := buildSet(fields, articleUpdateCols)
	if set == "" {
		return 0, nil
	}
	args = append(args, id)

	result, err := s.db.Exec(`UPDATE articles SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		if isConstraint(err) {
			return 0, ErrConstraint
		}
		return 0, fmt.Errorf("update article: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// Delete removes the row and returns the number of rows affected.
func (s *ArticleStore) Delete(id int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete article: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
