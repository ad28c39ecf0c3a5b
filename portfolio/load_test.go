package portfolio

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestLoadAllEndpoints(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.URL, WithNow(fixedNow))

	p, err := Load(context.Background(), c)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Developer.Name != "Ada Park" {
		t.Errorf("Expected developer loaded, got %+v", p.Developer)
	}
	if len(p.Skills) != 2 || len(p.Technologies) != 2 || len(p.Projects) != 2 || len(p.Experiences) != 1 {
		t.Errorf("Unexpected collection sizes: %d %d %d %d",
			len(p.Skills), len(p.Technologies), len(p.Projects), len(p.Experiences))
	}
	for _, path := range []string{"/api/developer", "/api/skills", "/api/technologies", "/api/projects", "/api/experiences"} {
		if n := api.hitCount(path); n != 1 {
			t.Errorf("Expected one request to %s, got %d", path, n)
		}
	}
	if got := len(p.FeaturedProjects()); got != 1 {
		t.Errorf("Expected 1 featured project, got %d", got)
	}
	if cats := p.SkillCategories(); len(cats) != 1 || cats[0] != "Languages" {
		t.Errorf("Unexpected categories %v", cats)
	}
}

func TestLoadSingleFailureFailsWhole(t *testing.T) {
	for _, path := range []string{"/api/developer", "/api/skills", "/api/technologies", "/api/projects", "/api/experiences"} {
		t.Run(path, func(t *testing.T) {
			api := newFakeAPI(t)
			api.failPath(path, http.StatusInternalServerError)
			c := NewClient(api.URL)

			p, err := Load(context.Background(), c)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if p != nil {
				t.Errorf("Expected no profile, got %+v", p)
			}
		})
	}
}

// stubSource fails until ok is set
type stubSource struct {
	ok bool
}

var errDown = errors.New("api down")

func (s *stubSource) Developer(context.Context) (Developer, error) {
	if !s.ok {
		return Developer{}, errDown
	}
	return Developer{Name: "Ada", Title: "Engineer"}, nil
}

func (s *stubSource) Skills(context.Context) ([]Skill, error) { return []Skill{{Name: "Go"}}, nil }

func (s *stubSource) Technologies(context.Context) ([]Technology, error) { return nil, nil }

func (s *stubSource) Projects(context.Context, bool) ([]Project, error) { return nil, nil }

func (s *stubSource) Experiences(context.Context) ([]Experience, error) { return nil, nil }

func TestLoaderRetry(t *testing.T) {
	src := &stubSource{}
	l := NewLoader(src)

	if got := l.Result().State; got != StateLoading {
		t.Errorf("Expected loading before first fetch, got %v", got)
	}

	res := l.Load(context.Background())
	if res.State != StateFailed {
		t.Fatalf("Expected failed, got %v", res.State)
	}
	if !errors.Is(res.Err, errDown) {
		t.Errorf("Expected errDown, got %v", res.Err)
	}
	if res.Profile != nil {
		t.Error("Expected no profile on failure")
	}

	src.ok = true
	res = l.Retry(context.Background())
	if res.State != StateReady {
		t.Fatalf("Expected ready after retry, got %v (%v)", res.State, res.Err)
	}
	if res.Err != nil {
		t.Errorf("Expected error cleared, got %v", res.Err)
	}
	if res.Profile == nil || res.Profile.Developer.Name != "Ada" {
		t.Errorf("Unexpected profile %+v", res.Profile)
	}
	if res.Attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", res.Attempts)
	}
	if res.LoadedAt.IsZero() {
		t.Error("Expected LoadedAt set")
	}
}

func TestLoadCancelled(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, c); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
