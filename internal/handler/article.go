package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ewhitmore/quarto/internal/model"
	"github.com/ewhitmore/quarto/internal/sanitize"
	"github.com/ewhitmore/quarto/internal/store"
	"github.com/ewhitmore/quarto/internal/validate"
	"github.com/ewhitmore/quarto/internal/websocket"
)

const articleNotFound = "Article doesn't exist"

var (
	articleRequired  = []string{"title", "style", "content"}
	articleKnown     = []string{"title", "style", "content", "folder_id"}
	articleUpdatable = []string{"title", "style", "content"}
)

type ArticleHandler struct {
	articles *store.ArticleStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewArticleHandler(as *store.ArticleStore, hub *websocket.Hub, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{articles: as, hub: hub, logger: logger}
}

func (h *ArticleHandler) broadcast(action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.Event{Resource: "article", Action: action, ID: id})
	}
}

// cleanArticle re-sanitizes outgoing text fields. Rows written before
// sanitization was introduced may still hold raw markup; Clean is
// idempotent so already-clean rows pass through unchanged.
func cleanArticle(a *model.Article) {
	a.Title = sanitize.Clean(a.Title)
	a.Style = sanitize.Clean(a.Style)
	a.Content = sanitize.Clean(a.Content)
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List()
	if err != nil {
		h.logger.Error("list articles", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if articles == nil {
		articles = []model.Article{}
	}
	for i := range articles {
		cleanArticle(&articles[i])
	}
	writeJSON(w, http.StatusOK, articles)
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	article, err := h.articles.GetByID(id)
	if err != nil {
		h.logger.Error("get article", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, articleNotFound)
		return
	}

	cleanArticle(article)
	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := validate.Create(payload, articleRequired, articleKnown)
	if err != nil {
		var mf *validate.MissingFieldError
		if errors.As(err, &mf) {
			writeError(w, http.StatusBadRequest, missingFieldMessage(mf.Field))
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	sanitize.Fields(p)
	fields, ok := textFields(p, articleRequired)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	folderID, ok := folderRef(p)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	article, err := h.articles.Insert(fields["title"], fields["style"], fields["content"], folderID)
	if err != nil {
		if errors.Is(err, store.ErrConstraint) {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		h.logger.Error("create article", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("created", article.ID)

	cleanArticle(article)
	w.Header().Set("Location", fmt.Sprintf("/api/articles/%d", article.ID))
	writeJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	// Existence takes precedence over payload shape.
	existing, err := h.articles.GetByID(id)
	if err != nil {
		h.logger.Error("get article", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, articleNotFound)
		return
	}

	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := validate.Update(payload, articleUpdatable)
	if err != nil {
		var nf *validate.NoFieldsError
		if errors.As(err, &nf) {
			writeError(w, http.StatusBadRequest, requireOneOfMessage(nf.Fields))
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	sanitize.Fields(p)
	fields, ok := textFields(p, articleUpdatable)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	merge := make(map[string]any, len(fields))
	for k, v := range fields {
		merge[k] = v
	}

	// A zero affected count here just confirms the row vanished after the
	// existence check; the mutation is still acknowledged.
	if _, err := h.articles.Update(id, merge); err != nil {
		if errors.Is(err, store.ErrConstraint) {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		h.logger.Error("update article", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("updated", id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	existing, err := h.articles.GetByID(id)
	if err != nil {
		h.logger.Error("get article", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, articleNotFound)
		return
	}

	if _, err := h.articles.Delete(id); err != nil {
		h.logger.Error("delete article", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("deleted", id)

	w.WriteHeader(http.StatusNoContent)
}
