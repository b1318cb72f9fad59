package model

import "time"

type Article struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Style         string    `json:"style"`
	Content       string    `json:"content"`
	FolderID      *int64    `json:"folder_id"`
	DatePublished time.Time `json:"date_published"`
}
