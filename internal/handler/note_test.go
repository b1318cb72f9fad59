package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/ewhitmore/quarto/internal/database"
	"github.com/ewhitmore/quarto/internal/model"
	"github.com/ewhitmore/quarto/internal/store"
)

func setupNoteAPI(t *testing.T) (*http.ServeMux, *store.FolderStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := NewNoteHandler(store.NewNoteStore(db), nil, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notes", h.List)
	mux.HandleFunc("POST /api/notes", h.Create)
	mux.HandleFunc("GET /api/notes/{id}", h.Get)
	mux.HandleFunc("PATCH /api/notes/{id}", h.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", h.Delete)
	return mux, store.NewFolderStore(db)
}

func TestNoteCreateMissingFields(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{}`, "Missing 'title' in request body"},
		{`{"content":"c"}`, "Missing 'title' in request body"},
		{`{"title":"t"}`, "Missing 'content' in request body"},
	}
	for _, tt := range tests {
		mux, _ := setupNoteAPI(t)
		rec := doJSON(t, mux, http.MethodPost, "/api/notes", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("post %s: status = %d, want 400", tt.body, rec.Code)
		}
		if got := errorMessage(t, rec); got != tt.want {
			t.Errorf("message = %q, want %q", got, tt.want)
		}
	}
}

func TestNoteCreateRoundTrip(t *testing.T) {
	mux, folders := setupNoteAPI(t)

	folder, _ := folders.Insert("Inbox")

	rec := doJSON(t, mux, http.MethodPost, "/api/notes",
		`{"title":"Groceries","content":"milk","folder_id":`+itoa(folder.ID)+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created model.Note
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Errorf("missing store-assigned fields: %+v", created)
	}
	wantLoc := "/api/notes/" + itoa(created.ID)
	if got := rec.Header().Get("Location"); got != wantLoc {
		t.Errorf("Location = %q, want %q", got, wantLoc)
	}

	rec = doJSON(t, mux, http.MethodGet, wantLoc, "")
	var fetched model.Note
	json.Unmarshal(rec.Body.Bytes(), &fetched)
	if fetched.Title != "Groceries" || fetched.Content != "milk" ||
		fetched.FolderID == nil || *fetched.FolderID != folder.ID {
		t.Errorf("round trip mismatch: %+v", fetched)
	}
}

func TestNoteUpdateNoRecognizedFields(t *testing.T) {
	mux, _ := setupNoteAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/notes", `{"title":"t","content":"c"}`)
	var created model.Note
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec = doJSON(t, mux, http.MethodPatch, "/api/notes/"+itoa(created.ID), `{"folder_id":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	want := "Request body must contain either 'title' or 'content'"
	if got := errorMessage(t, rec); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestNoteNotFoundMessage(t *testing.T) {
	mux, _ := setupNoteAPI(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := doJSON(t, mux, method, "/api/notes/123456", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d, want 404", method, rec.Code)
		}
		if got := errorMessage(t, rec); got != "Note doesn't exist" {
			t.Errorf("message = %q, want %q", got, "Note doesn't exist")
		}
	}

	rec := doJSON(t, mux, http.MethodPatch, "/api/notes/123456", `{"title":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("patch status = %d, want 404", rec.Code)
	}
}

func TestNoteUpdateMerge(t *testing.T) {
	mux, _ := setupNoteAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/notes", `{"title":"Old","content":"Keep"}`)
	var created model.Note
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec = doJSON(t, mux, http.MethodPatch, "/api/notes/"+itoa(created.ID), `{"title":"New"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/notes/"+itoa(created.ID), "")
	var updated model.Note
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Title != "New" || updated.Content != "Keep" {
		t.Errorf("merge mismatch: %+v", updated)
	}
}

func TestNoteContentSanitized(t *testing.T) {
	mux, _ := setupNoteAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/notes",
		`{"title":"t","content":"<script>alert(\"xss\");</script>"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Errorf("raw markup in response: %s", rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/notes", "")
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Errorf("raw markup in list: %s", rec.Body.String())
	}
}

func TestNoteCreateBadFolderRef(t *testing.T) {
	mux, _ := setupNoteAPI(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/notes",
		`{"title":"t","content":"c","folder_id":999}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
