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

const folderNotFound = "Folder doesn't exist"

var (
	folderRequired  = []string{"name"}
	folderUpdatable = []string{"name"}
)

type FolderHandler struct {
	folders *store.FolderStore
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewFolderHandler(fs *store.FolderStore, hub *websocket.Hub, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{folders: fs, hub: hub, logger: logger}
}

func (h *FolderHandler) broadcast(action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.Event{Resource: "folder", Action: action, ID: id})
	}
}

func cleanFolder(f *model.Folder) {
	f.Name = sanitize.Clean(f.Name)
}

func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folders.List()
	if err != nil {
		h.logger.Error("list folders", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if folders == nil {
		folders = []model.Folder{}
	}
	for i := range folders {
		cleanFolder(&folders[i])
	}
	writeJSON(w, http.StatusOK, folders)
}

func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	folder, err := h.folders.GetByID(id)
	if err != nil {
		h.logger.Error("get folder", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if folder == nil {
		writeError(w, http.StatusNotFound, folderNotFound)
		return
	}

	cleanFolder(folder)
	writeJSON(w, http.StatusOK, folder)
}

func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := validate.Create(payload, folderRequired, folderRequired)
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
	fields, ok := textFields(p, folderRequired)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	folder, err := h.folders.Insert(fields["name"])
	if err != nil {
		if errors.Is(err, store.ErrConstraint) {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		h.logger.Error("create folder", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("created", folder.ID)

	cleanFolder(folder)
	w.Header().Set("Location", fmt.Sprintf("/api/folders/%d", folder.ID))
	writeJSON(w, http.StatusCreated, folder)
}

func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	existing, err := h.folders.GetByID(id)
	if err != nil {
		h.logger.Error("get folder", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, folderNotFound)
		return
	}

	payload, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := validate.Update(payload, folderUpdatable)
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
	fields, ok := textFields(p, folderUpdatable)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	merge := make(map[string]any, len(fields))
	for k, v := range fields {
		merge[k] = v
	}

	if _, err := h.folders.Update(id, merge); err != nil {
		if errors.Is(err, store.ErrConstraint) {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		h.logger.Error("update folder", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("updated", id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	existing, err := h.folders.GetByID(id)
	if err != nil {
		h.logger.Error("get folder", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, folderNotFound)
		return
	}

	if _, err := h.folders.Delete(id); err != nil {
		// Folders still referenced by notes or articles cannot be removed.
		if errors.Is(err, store.ErrConstraint) {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		h.logger.Error("delete folder", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.broadcast("deleted", id)

	w.WriteHeader(http.StatusNoContent)
}
