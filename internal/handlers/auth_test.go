package handlers

import (
	"net/http"
	"strings"
	"testing"

	"pinboard/internal/service"
)

func TestRegister_SuccessStartsSessionAndRedirects(t *testing.T) {
	auth := &mockAuth{registerUser: "alice", issueToken: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postForm(r, "/register", "username=Alice&password=pw1", nil)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d (body: %s)", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
	if auth.lastRegisterUsername != "Alice" || auth.lastRegisterPassword != "pw1" {
		t.Errorf("register called with %q/%q", auth.lastRegisterUsername, auth.lastRegisterPassword)
	}
	if auth.lastIssueUsername != "alice" {
		t.Errorf("session issued for %q, want normalized 'alice'", auth.lastIssueUsername)
	}
	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, sessionCookie+"=tok123") {
		t.Errorf("session cookie not set: %q", cookie)
	}
}

func TestRegister_DuplicateReRendersFormWithError(t *testing.T) {
	auth := &mockAuth{registerErr: service.ErrDuplicateUser}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postForm(r, "/register", "username=alice&password=pw1", nil)

	// a form error is a 200 re-render, not a redirect
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), service.ErrDuplicateUser.Error()) {
		t.Errorf("error message not shown in form:\n%s", w.Body.String())
	}
	if w.Header().Get("Set-Cookie") != "" {
		t.Error("no session cookie should be set on failure")
	}
}

func TestLogin_InvalidCredentialsReRendersForm(t *testing.T) {
	auth := &mockAuth{authErr: service.ErrInvalidCredentials}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postForm(r, "/login", "username=alice&password=nope", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), service.ErrInvalidCredentials.Error()) {
		t.Errorf("error message not shown in form:\n%s", w.Body.String())
	}
}

func TestLogin_SuccessRedirectsToIndex(t *testing.T) {
	auth := &mockAuth{authUser: "alice", issueToken: "tok456"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postForm(r, "/login", "username=alice&password=pw1", nil)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected 302 to /, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), sessionCookie+"=tok456") {
		t.Error("session cookie not set on login")
	}
}

func TestLogout_ClearsSessionAndRedirectsToLogin(t *testing.T) {
	auth := &mockAuth{parseUser: "alice"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := get(r, "/logout", &http.Cookie{Name: sessionCookie, Value: "tok123"})

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected 302 to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}
	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "Max-Age=0") {
		t.Errorf("session cookie not cleared: %q", cookie)
	}
}

func TestFormPages_RenderEmptyForms(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	for _, path := range []string{"/login", "/register"} {
		w := get(r, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `name="username"`) {
			t.Errorf("GET %s did not render a form", path)
		}
	}
}
