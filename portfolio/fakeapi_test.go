package portfolio

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const (
	developerJSON = `{"name":"Ada Park","title":"Software Engineer","bio":"Builds things.","email":"ada@example.com","phone":"+1 555 0100","location":"Lisbon","github":"https://github.com/ada","linkedin":"https://linkedin.com/in/ada","years_experience":3,"resume_url":"/static/resume.pdf","avatar_url":"/static/ada.jpg"}`
	skillsJSON    = `[{"id":1,"name":"Go","category":"Languages","proficiency":90,"years_experience":3,"is_featured":true},{"id":2,"name":"SQL","category":"Languages","proficiency":140}]`
	techJSON      = `[{"id":1,"name":"Docker","category":"DevOps","proficiency":80},{"id":2,"name":"React","category":"Frontend","proficiency":-4}]`
	projectsJSON  = `[{"id":7,"title":"folio","description":"This site.","technologies":["Go","gin"],"github_url":"https://github.com/ada/folio","image_url":"/img/folio.png","featured":true,"status":"in_progress","start_date":"2024-01-01"},{"id":8,"title":"Untitled","description":"","image_url":"","featured":false,"start_date":"2023-05-01"}]`
	expJSON       = `[{"id":3,"title":"Engineer","company":"Acme","location":"Remote","employment_type":"full-time","start_date":"2022-01-15","description":"Did work.","achievements":["Shipped"],"is_current":true,"technologies":["Go"]}]`
)

// fakeAPI serves canned profile responses and records contact posts
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	hits     map[string]int
	posts    []string
	fail     map[string]int
	contact  int
	featured int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{hits: make(map[string]int), fail: make(map[string]int), contact: http.StatusOK}

	mux := http.NewServeMux()
	serve := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			api.mu.Lock()
			api.hits[path]++
			status := api.fail[path]
			if path == "/api/projects" && r.URL.Query().Get("featured") == "true" {
				api.featured++
			}
			api.mu.Unlock()

			w.Header().Set("Content-Type", "application/json")
			if status != 0 {
				w.WriteHeader(status)
				io.WriteString(w, `{"error":"boom"}`)
				return
			}
			io.WriteString(w, body)
		})
	}
	serve("/api/developer", developerJSON)
	serve("/api/skills", skillsJSON)
	serve("/api/technologies", techJSON)
	serve("/api/projects", projectsJSON)
	serve("/api/experiences", expJSON)
	serve("/api/stats", `{"projects_completed":2,"years_experience":3,"technologies_used":9,"github_repos":25,"coffee_cups":1247}`)

	mux.HandleFunc("/api/contact", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		api.mu.Lock()
		api.posts = append(api.posts, string(body))
		status := api.contact
		api.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(status)
		if status != http.StatusOK {
			io.WriteString(w, `{"error":"Failed to send message"}`)
			return
		}
		io.WriteString(w, `{"message":"Message sent successfully!"}`)
	})

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) failPath(path string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail[path] = status
}

func (a *fakeAPI) hitCount(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[path]
}

func (a *fakeAPI) contactPosts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.posts...)
}

func (a *fakeAPI) featuredCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.featured
}

func (a *fakeAPI) setContactStatus(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.contact = status
}
