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

const noteNotFound = "Note doesn't exist"

var (
	noteRequired  = []string{"title", "content"}
	noteKnown     = []string{"title", "content", "folder_id"}
	noteUpdatable = []string{"title", "content"}
)

type NoteHandler struct {
	notes  *store.NoteStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, hub *websocket.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: ns, hub: hub, logger: logger}
}

func (h *NoteHandler) broadcast(action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.Event{Resource: "note", Action: action, ID: id})
	}
}

func cleanNote(n *model.Note) {
	n.Title = sanitize.Clean(n.Title)
	n.Content = sanitize.Clean(n.Content)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List()
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	for i := range notes {
		cleanNote(&notes[i])
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	note, err := h.notes.GetByID(id)
	if err != nil {
		h.logger.Error("get note", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, noteNotFound)
		return
	}

	cleanNote(note)
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := validate.Create(payload, noteRequired, noteKnown)
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
	fields, ok := textFields(p, noteRequired)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	folderID, ok := folderRef(p)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	note, err := h.notes.Insert(fields["title"], fields["content"], folderID)
	if err != nil {
		if errors.Is(err, store.ErrConstraint) {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		h.logger.Error("create note", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("created", note.ID)

	cleanNote(note)
	w.Header().Set("Location", fmt.Sprintf("/api/notes/%d", note.ID))
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	existing, err := h.notes.GetByID(id)
	if err != nil {
		h.logger.Error("get note", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, noteNotFound)
		return
	}

	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := validate.Update(payload, noteUpdatable)
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
	fields, ok := textFields(p, noteUpdatable)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	merge := make(map[string]any, len(fields))
	for k, v := range fields {
		merge[k] = v
	}

	if _, err := h.notes.Update(id, merge); err != nil {
		if errors.Is(err, store.ErrConstraint) {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		h.logger.Error("update note", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("updated", id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	existing, err := h.notes.GetByID(id)
	if err != nil {
		h.logger.Error("get note", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, noteNotFound)
		return
	}

	if _, err := h.notes.Delete(id); err != nil {
		h.logger.Error("delete note", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("deleted", id)

	w.WriteHeader(http.StatusNoContent)
}
