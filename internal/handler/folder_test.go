package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ewhitmore/quarto/internal/database"
	"github.com/ewhitmore/quarto/internal/model"
	"github.com/ewhitmore/quarto/internal/store"
)

func setupFolderAPI(t *testing.T) (*http.ServeMux, *store.NoteStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := NewFolderHandler(store.NewFolderStore(db), nil, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/folders", h.List)
	mux.HandleFunc("POST /api/folders", h.Create)
	mux.HandleFunc("GET /api/folders/{id}", h.Get)
	mux.HandleFunc("PATCH /api/folders/{id}", h.Update)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Delete)
	return mux, store.NewNoteStore(db)
}

func TestFolderCreateMissingName(t *testing.T) {
	mux, _ := setupFolderAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/folders", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "Missing 'name' in request body" {
		t.Errorf("message = %q, want %q", got, "Missing 'name' in request body")
	}
}

func TestFolderLifecycle(t *testing.T) {
	mux, _ := setupFolderAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/folders", `{"name":"Projects"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created model.Folder
	json.Unmarshal(rec.Body.Bytes(), &created)
	wantLoc := "/api/folders/" + itoa(created.ID)
	if got := rec.Header().Get("Location"); got != wantLoc {
		t.Errorf("Location = %q, want %q", got, wantLoc)
	}

	rec = doJSON(t, mux, http.MethodPatch, wantLoc, `{"name":"Archive"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("patch status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, wantLoc, "")
	var updated model.Folder
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Name != "Archive" {
		t.Errorf("name = %q, want %q", updated.Name, "Archive")
	}

	rec = doJSON(t, mux, http.MethodDelete, wantLoc, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, mux, http.MethodGet, wantLoc, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", rec.Code)
	}
	if got := errorMessage(t, rec); got != "Folder doesn't exist" {
		t.Errorf("message = %q, want %q", got, "Folder doesn't exist")
	}
}

func TestFolderUpdateNoFieldsMessage(t *testing.T) {
	mux, _ := setupFolderAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/folders", `{"name":"n"}`)
	var created model.Folder
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec = doJSON(t, mux, http.MethodPatch, "/api/folders/"+itoa(created.ID), `{"bogus":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	// Single-field resources phrase the message without "either".
	if got := errorMessage(t, rec); got != "Request body must contain 'name'" {
		t.Errorf("message = %q, want %q", got, "Request body must contain 'name'")
	}
}

func TestFolderDeleteWithChildrenRejected(t *testing.T) {
	mux, notes := setupFolderAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/folders", `{"name":"Busy"}`)
	var created model.Folder
	json.Unmarshal(rec.Body.Bytes(), &created)

	if _, err := notes.Insert("Child", "c", &created.ID); err != nil {
		t.Fatalf("insert note: %v", err)
	}

	rec = doJSON(t, mux, http.MethodDelete, "/api/folders/"+itoa(created.ID), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestFolderNameSanitized(t *testing.T) {
	mux, _ := setupFolderAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/folders", `{"name":"<b>bold</b>"}`)
	var created model.Folder
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created.Name != "&lt;b&gt;bold&lt;/b&gt;" {
		t.Errorf("name = %q, want escaped form", created.Name)
	}
}
