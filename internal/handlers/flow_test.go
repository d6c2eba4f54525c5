package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pinboard/internal/repository"
	"pinboard/internal/service"

	"github.com/gin-gonic/gin"
)

// newRealStack builds the full application on a throwaway file store.
func newRealStack(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	notesDir := filepath.Join(dir, "notes")
	repos := repository.NewFileRepository(filepath.Join(dir, "users.json"), notesDir)
	services := service.NewService(repos, service.AuthConfig{SigningKey: "e2e-key"}, nil)
	gin.SetMode(gin.TestMode)
	return NewHandler(services, nil).InitRoutes(), notesDir
}

func sessionFromResponse(t *testing.T, w interface{ Result() *http.Response }) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("response did not set a session cookie")
	return nil
}

func TestFlow_RegisterCreatePinLogoutLoginList(t *testing.T) {
	r, _ := newRealStack(t)

	// register Alice (note the capital; storage is normalized)
	w := postForm(r, "/register", "username=Alice&password=pw1", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("register: expected 302, got %d (%s)", w.Code, w.Body.String())
	}
	session := sessionFromResponse(t, w)

	// create five notes, then pin #2 and #4
	for _, text := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		if w := postForm(r, "/", "text="+text, session); w.Code != http.StatusFound {
			t.Fatalf("create %q: expected 302, got %d", text, w.Code)
		}
	}
	for _, id := range []string{"2", "4"} {
		if w := postForm(r, "/toggle_pin/"+id, "", session); w.Code != http.StatusFound {
			t.Fatalf("toggle_pin %s: expected 302, got %d", id, w.Code)
		}
	}

	// logout, then log back in with the same credentials
	if w := get(r, "/logout", session); w.Code != http.StatusFound {
		t.Fatalf("logout: expected 302, got %d", w.Code)
	}
	w = postForm(r, "/login", "username=Alice&password=pw1", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("login: expected 302, got %d (%s)", w.Code, w.Body.String())
	}
	session = sessionFromResponse(t, w)

	// the list shows the pinned group first, each group newest-first:
	// ids [4 2 5 3 1] → delta, bravo, echo, charlie, alpha
	w2 := get(r, "/", session)
	if w2.Code != http.StatusOK {
		t.Fatalf("index: expected 200, got %d", w2.Code)
	}
	body := w2.Body.String()
	order := []string{"delta", "bravo", "echo", "charlie", "alpha"}
	last := -1
	for _, text := range order {
		pos := strings.Index(body, text)
		if pos == -1 {
			t.Fatalf("note %q missing from list:\n%s", text, body)
		}
		if pos < last {
			t.Fatalf("note %q out of order; want %v", text, order)
		}
		last = pos
	}
}

func TestFlow_WrongPasswordStaysOnLoginForm(t *testing.T) {
	r, _ := newRealStack(t)

	if w := postForm(r, "/register", "username=alice&password=pw1", nil); w.Code != http.StatusFound {
		t.Fatalf("register: expected 302, got %d", w.Code)
	}

	w := postForm(r, "/login", "username=alice&password=wrong", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 form re-render, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid username or password") {
		t.Errorf("login error not shown:\n%s", w.Body.String())
	}
}

func TestFlow_EditMissingNoteLeavesDocumentUntouched(t *testing.T) {
	r, notesDir := newRealStack(t)

	w := postForm(r, "/register", "username=alice&password=pw1", nil)
	session := sessionFromResponse(t, w)
	if w := postForm(r, "/", "text=only+note", session); w.Code != http.StatusFound {
		t.Fatalf("create: expected 302, got %d", w.Code)
	}

	docPath := filepath.Join(notesDir, "alice.json")
	before, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}

	w2 := postForm(r, "/edit/99", "text=ghost", session)
	if w2.Code != http.StatusFound || w2.Header().Get("Location") != "/" {
		t.Fatalf("edit missing id: expected 302 to /, got %d", w2.Code)
	}

	after, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("re-read document: %v", err)
	}
	if string(before) != string(after) {
		t.Errorf("document changed by a no-op edit:\nbefore: %s\nafter: %s", before, after)
	}
}

func TestFlow_IDReusedAfterDeletingMax(t *testing.T) {
	r, _ := newRealStack(t)

	w := postForm(r, "/register", "username=alice&password=pw1", nil)
	session := sessionFromResponse(t, w)

	for _, text := range []string{"first", "second"} {
		postForm(r, "/", "text="+text, session)
	}
	postForm(r, "/delete/2", "", session)
	postForm(r, "/", "text=third", session)

	// the freed maximum id is handed out again
	w2 := get(r, "/edit/2", session)
	if w2.Code != http.StatusOK || !strings.Contains(w2.Body.String(), "third") {
		t.Fatalf("expected note 'third' under reused id 2, got %d:\n%s", w2.Code, w2.Body.String())
	}
}
