package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ewhitmore/quarto/internal/handler"
	"github.com/ewhitmore/quarto/internal/middleware"
	"github.com/ewhitmore/quarto/internal/store"
	ws "github.com/ewhitmore/quarto/internal/websocket"
)

type Server struct {
	db       *sql.DB
	hub      *ws.Hub
	articleH *handler.ArticleHandler
	noteH    *handler.NoteHandler
	folderH  *handler.FolderHandler
	logger   *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	articleStore := store.NewArticleStore(db)
	noteStore := store.NewNoteStore(db)
	folderStore := store.NewFolderStore(db)

	return &Server{
		db:       db,
		hub:      hub,
		articleH: handler.NewArticleHandler(articleStore, hub, logger.With("component", "article")),
		noteH:    handler.NewNoteHandler(noteStore, hub, logger.With("component", "note")),
		folderH:  handler.NewFolderHandler(folderStore, hub, logger.With("component", "folder")),
		logger:   logger,
	}
}

// Hub returns the event hub, exposed for shutdown accounting.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/articles", s.articleH.List)
	mux.HandleFunc("POST /api/articles", s.articleH.Create)
	mux.HandleFunc("GET /api/articles/{id}", s.articleH.Get)
	mux.HandleFunc("PATCH /api/articles/{id}", s.articleH.Update)
	mux.HandleFunc("DELETE /api/articles/{id}", s.articleH.Delete)

	mux.HandleFunc("GET /api/notes", s.noteH.List)
	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("GET /api/notes/{id}", s.noteH.Get)
	mux.HandleFunc("PATCH /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)

	mux.HandleFunc("GET /api/folders", s.folderH.List)
	mux.HandleFunc("POST /api/folders", s.folderH.Create)
	mux.HandleFunc("GET /api/folders/{id}", s.folderH.Get)
	mux.HandleFunc("PATCH /api/folders/{id}", s.folderH.Update)
	mux.HandleFunc("DELETE /api/folders/{id}", s.folderH.Delete)

	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))

	logged := middleware.RequestLogger(s.logger.With("component", "http"))(mux)
	return middleware.RequestID(logged)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
