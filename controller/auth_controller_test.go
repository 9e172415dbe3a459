package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/customerrors"
	"backend/middleware"
	"backend/model"
	"backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

type fakeUserService struct {
	users map[string]model.User
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: make(map[string]model.User)}
}

func (f *fakeUserService) CreateUser(_ context.Context, req model.RegisterRequest) (*model.User, error) {
	if _, ok := f.users[req.Username]; ok {
		return nil, customerrors.ErrUserAlreadyExists
	}
	user := model.User{Username: req.Username, Email: req.Email, Password: req.Password}
	f.users[req.Username] = user
	return &user, nil
}

func (f *fakeUserService) VerifyCredentials(_ context.Context, username, password string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok || user.Password != password {
		return nil, customerrors.ErrInvalidCredentials
	}
	return &user, nil
}

var _ service.UserService = (*fakeUserService)(nil)

func newAuthRouter(svc service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("sessionid", store))

	api := r.Group("")
	api.Use(middleware.VerifyCSRF())
	NewAuthController(svc).RegisterRoutes(api)
	return r
}

// cookieJar carries cookies between sequential requests in a flow test.
type cookieJar map[string]*http.Cookie

func (j cookieJar) update(w *httptest.ResponseRecorder) {
	for _, c := range w.Result().Cookies() {
		j[c.Name] = c
	}
}

func doRequest(r http.Handler, method, path, body string, jar cookieJar, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range jar {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if jar != nil {
		jar.update(w)
	}
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestRegisterRequiresUsernameAndPassword(t *testing.T) {
	r := newAuthRouter(newFakeUserService())

	for _, payload := range []string{
		`{}`,
		`{"username":"alice"}`,
		`{"password":"secret"}`,
		`{"username":"","password":"secret"}`,
	} {
		w := doRequest(r, http.MethodPost, "/auth/register/", payload, nil, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: got status %d, want 400", payload, w.Code)
		}
		body := decodeBody(t, w)
		if body["detail"] != "username and password required" {
			t.Fatalf("payload %s: unexpected detail %v", payload, body["detail"])
		}
	}
}

func TestRegisterSuccessAndDuplicate(t *testing.T) {
	r := newAuthRouter(newFakeUserService())

	w := doRequest(r, http.MethodPost, "/auth/register/",
		`{"username":"alice","password":"secret","email":"alice@example.com"}`, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["detail"] != "User Registered Successfully" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("registration must not start a session")
	}

	w = doRequest(r, http.MethodPost, "/auth/register/",
		`{"username":"alice","password":"other"}`, nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: got status %d, want 400", w.Code)
	}
	if decodeBody(t, w)["detail"] != "Username already exists please choose another username" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLoginWrongPasswordDoesNotStartSession(t *testing.T) {
	svc := newFakeUserService()
	svc.users["alice"] = model.User{Username: "alice", Email: "alice@example.com", Password: "secret"}
	r := newAuthRouter(svc)

	jar := cookieJar{}
	w := doRequest(r, http.MethodPost, "/auth/login/",
		`{"username":"alice","password":"wrong"}`, jar, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	if decodeBody(t, w)["detail"] != "Invalid credentials" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/auth/user/", "", jar, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("current user after failed login: got status %d, want 401", w.Code)
	}
	if decodeBody(t, w)["authenticated"] != false {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	svc := newFakeUserService()
	svc.users["alice"] = model.User{Username: "alice", Email: "alice@example.com", Password: "secret"}
	r := newAuthRouter(svc)

	jar := cookieJar{}

	// Fetch the CSRF token first, like the front-end does.
	w := doRequest(r, http.MethodGet, "/auth/csrf/", "", jar, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("csrf: got status %d, want 200", w.Code)
	}
	csrfToken, _ := decodeBody(t, w)["csrfToken"].(string)
	if csrfToken == "" {
		t.Fatal("csrf endpoint returned no token")
	}
	if jar[middleware.CsrfCookieName] == nil {
		t.Fatal("csrf cookie was not set")
	}

	w = doRequest(r, http.MethodPost, "/auth/login/",
		`{"username":"alice","password":"secret"}`, jar, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login: got status %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["username"] != "alice" || body["email"] != "alice@example.com" {
		t.Fatalf("unexpected login body: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/auth/user/", "", jar, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("current user: got status %d, want 200", w.Code)
	}
	body = decodeBody(t, w)
	if body["authenticated"] != true || body["username"] != "alice" {
		t.Fatalf("unexpected current user body: %s", w.Body.String())
	}

	// Authenticated unsafe request without the CSRF header is refused.
	w = doRequest(r, http.MethodPost, "/auth/logout/", "", jar, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("logout without csrf header: got status %d, want 403", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/auth/logout/", "", jar,
		map[string]string{middleware.CsrfHeader: csrfToken})
	if w.Code != http.StatusOK {
		t.Fatalf("logout: got status %d, want 200: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["detail"] != "User Logged out successfully" {
		t.Fatalf("unexpected logout body: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/auth/user/", "", jar, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("current user after logout: got status %d, want 401", w.Code)
	}
}

func TestLogoutWithoutSessionIsIdempotent(t *testing.T) {
	r := newAuthRouter(newFakeUserService())

	w := doRequest(r, http.MethodPost, "/auth/logout/", "", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if decodeBody(t, w)["detail"] != "User Logged out successfully" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
