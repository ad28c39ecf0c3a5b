package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Zachkp/folio/motion"
	"github.com/Zachkp/folio/portfolio"
	"github.com/Zachkp/folio/sitelog"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var apiResponses = map[string]string{
	"/api/developer":    `{"name":"Ada Park","title":"Software Engineer","bio":"Builds things.","location":"Lisbon"}`,
	"/api/skills":       `[{"id":1,"name":"Go","category":"Languages","proficiency":90,"is_featured":true},{"id":2,"name":"Rust","category":"Languages","proficiency":60}]`,
	"/api/technologies": `[{"id":1,"name":"Docker","category":"DevOps","proficiency":80}]`,
	"/api/projects":     `[{"id":7,"title":"folio","description":"This site.","technologies":["Go"],"image_url":"","featured":true,"status":"completed","start_date":"2024-01-01"}]`,
	"/api/projects/7":   `{"id":7,"title":"folio","description":"This site.","technologies":["Go"],"image_url":"","featured":true,"start_date":"2024-01-01"}`,
	"/api/experiences":  `[{"id":1,"title":"Engineer","company":"Acme","start_date":"2022-01-01","description":"","achievements":[],"is_current":true,"technologies":[]}]`,
	"/api/stats":        `{"projects_completed":2,"years_experience":3,"technologies_used":9,"github_repos":25,"coffee_cups":1247}`,
}

type stubAPI struct {
	*httptest.Server

	mu    sync.Mutex
	fail  string
	posts int
}

func newStubAPI(t *testing.T) *stubAPI {
	t.Helper()
	s := &stubAPI{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		s.mu.Lock()
		fail := s.fail
		if r.URL.Path == "/api/contact" {
			s.posts++
		}
		s.mu.Unlock()

		if r.URL.Path == fail {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error":"boom"}`)
			return
		}
		if r.URL.Path == "/api/contact" {
			io.WriteString(w, `{"message":"Message sent successfully!"}`)
			return
		}
		body, ok := apiResponses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":"Project not found"}`)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubAPI) failOn(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = path
}

func (s *stubAPI) contactPosts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

func newTestServer(t *testing.T, api *stubAPI) (*app, *gin.Engine) {
	t.Helper()
	store, err := sitelog.Open(sitelog.MemoryDSN(uuid.NewString()))
	if err != nil {
		t.Fatalf("sitelog.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config{
		Port:          "0",
		APIURL:        api.URL,
		BannerDismiss: portfolio.DefaultBannerDismiss,
		AdminUsername: "admin",
		AdminPassword: "secret",
	}
	a := newApp(cfg, portfolio.NewClient(api.URL), store, motion.RealClock{})
	t.Cleanup(a.contact.Close)
	return a, setupRouter(a)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("DNT", "1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	return serve(r, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(r *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(r, req)
}

func TestHomeRendersProfile(t *testing.T) {
	_, r := newTestServer(t, newStubAPI(t))

	w := get(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Ada Park", "reveal-slideUp", "Docker", "animation-delay: 100ms", "Engineer"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
}

func TestHomeLoadFailure(t *testing.T) {
	api := newStubAPI(t)
	api.failOn("/api/technologies")
	a, r := newTestServer(t, api)

	w := get(r, "/")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Try again") {
		t.Error("Expected retry link")
	}
	if strings.Contains(body, "Ada Park") {
		t.Error("Expected no partial profile on failure")
	}

	st, err := a.store.Stats(t.Context())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.LoadsFailed != 1 {
		t.Errorf("Expected 1 failed load recorded, got %d", st.LoadsFailed)
	}
}

func TestSectionPartials(t *testing.T) {
	_, r := newTestServer(t, newStubAPI(t))

	if w := get(r, "/sections/projects?featured=true"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "folio") {
		t.Errorf("Projects partial: got %d", w.Code)
	}
	if w := get(r, "/sections/projects/7"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "completed") {
		t.Errorf("Project detail: got %d %s", w.Code, w.Body.String())
	}
	if w := get(r, "/sections/projects/99"); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown project, got %d", w.Code)
	}
	if w := get(r, "/sections/stats"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "1247") {
		t.Errorf("Stats partial: got %d", w.Code)
	}
}

func contactForm(email string) url.Values {
	return url.Values{
		"name":    {"Grace"},
		"email":   {email},
		"subject": {"Hello"},
		"message": {"Hi there"},
	}
}

func TestContactInvalidEmailNoNetwork(t *testing.T) {
	api := newStubAPI(t)
	_, r := newTestServer(t, api)

	w := postForm(r, "/contact", contactForm("not-an-email"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "field-error") {
		t.Error("Expected field error in re-rendered form")
	}
	if n := api.contactPosts(); n != 0 {
		t.Errorf("Expected no contact request, got %d", n)
	}
}

func TestContactValidSendsOnce(t *testing.T) {
	api := newStubAPI(t)
	a, r := newTestServer(t, api)

	w := postForm(r, "/contact", contactForm("grace@example.com"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "banner-sent") || !strings.Contains(body, `data-dismiss-ms="5000"`) {
		t.Errorf("Unexpected success fragment: %s", body)
	}
	if n := api.contactPosts(); n != 1 {
		t.Errorf("Expected exactly one contact request, got %d", n)
	}

	st, _ := a.store.Stats(t.Context())
	if st.ContactsSent != 1 {
		t.Errorf("Expected 1 sent contact recorded, got %d", st.ContactsSent)
	}
}

func TestContactFailureBanner(t *testing.T) {
	api := newStubAPI(t)
	api.failOn("/api/contact")
	_, r := newTestServer(t, api)

	w := postForm(r, "/contact", contactForm("grace@example.com"))
	if !strings.Contains(w.Body.String(), "banner-failed") {
		t.Errorf("Expected failure banner, got %s", w.Body.String())
	}
}

func TestMotionStylesheet(t *testing.T) {
	_, r := newTestServer(t, newStubAPI(t))

	w := get(r, "/motion.css")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Expected text/css, got %q", ct)
	}
	for _, name := range motion.Names() {
		if !strings.Contains(w.Body.String(), "@keyframes reveal-"+name) {
			t.Errorf("Missing keyframes for %s", name)
		}
	}
}

func TestPresetListing(t *testing.T) {
	_, r := newTestServer(t, newStubAPI(t))

	w := get(r, "/api/motion/presets?distance=100&stagger_ms=200")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var presets []presetJSON
	if err := json.Unmarshal(w.Body.Bytes(), &presets); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(presets) != len(motion.Names()) {
		t.Fatalf("Expected %d presets, got %d", len(motion.Names()), len(presets))
	}
	for _, p := range presets {
		if p.DurationMs != 800 || p.DelayMs != 200 {
			t.Errorf("%s: expected 800ms/200ms, got %d/%d", p.Name, p.DurationMs, p.DelayMs)
		}
		if p.Name == motion.SlideUp && p.Hidden.Y != 100 {
			t.Errorf("Expected slideUp distance 100, got %g", p.Hidden.Y)
		}
	}

	if w := get(r, "/api/motion/presets?distance=-5"); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative distance, got %d", w.Code)
	}
}

// streamRecorder lets gin's Stream watch for client disconnects
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestTypewriterStream(t *testing.T) {
	_, r := newTestServer(t, newStubAPI(t))

	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hero/typewriter?limit=3", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if n := strings.Count(w.Body.String(), "event:frame"); n != 3 {
		t.Errorf("Expected 3 frames, got %d: %s", n, w.Body.String())
	}
	if w.Header().Get("X-Stream-Id") == "" {
		t.Error("Expected stream id header")
	}
	if !strings.Contains(w.Body.String(), `"text":"S"`) {
		t.Errorf("Expected first typed character of the title, got %s", w.Body.String())
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	_, r := newTestServer(t, newStubAPI(t))

	w := get(r, "/admin/dashboard")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Errorf("Expected redirect to login, got %d %q", w.Code, w.Header().Get("Location"))
	}

	w = postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"nope"}})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad password, got %d", w.Code)
	}
}

func TestAdminDashboard(t *testing.T) {
	_, r := newTestServer(t, newStubAPI(t))

	w := postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	if w.Code != http.StatusFound {
		t.Fatalf("Expected redirect after login, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected admin cookie")
	}

	for _, target := range []string{"/admin/dashboard", "/admin/visitors", "/admin/api/stats", "/admin/export/stats"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		if w := serve(r, req); w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, w.Code)
		}
	}
}
