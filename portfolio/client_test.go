package portfolio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var fixedNow = func() time.Time { return time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC) }

func TestClientDecodesAndNormalizes(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.URL+"/", WithNow(fixedNow))
	ctx := context.Background()

	dev, err := c.Developer(ctx)
	if err != nil {
		t.Fatalf("Developer: %v", err)
	}
	if dev.Name != "Ada Park" || dev.YearsExperience != 3 || dev.AvatarURL != "/static/ada.jpg" {
		t.Errorf("Unexpected developer %+v", dev)
	}

	skills, err := c.Skills(ctx)
	if err != nil {
		t.Fatalf("Skills: %v", err)
	}
	if skills[1].Proficiency != 100 {
		t.Errorf("Expected proficiency clamped to 100, got %d", skills[1].Proficiency)
	}
	if skills[0].YearsExperience == nil || *skills[0].YearsExperience != 3 {
		t.Errorf("Expected optional years on first skill, got %v", skills[0].YearsExperience)
	}
	if skills[1].YearsExperience != nil {
		t.Error("Expected missing years to stay nil")
	}

	techs, err := c.Technologies(ctx)
	if err != nil {
		t.Fatalf("Technologies: %v", err)
	}
	if techs[1].Proficiency != 0 {
		t.Errorf("Expected proficiency clamped to 0, got %d", techs[1].Proficiency)
	}

	projects, err := c.Projects(ctx, false)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if projects[1].Status != StatusCompleted {
		t.Errorf("Expected default status, got %q", projects[1].Status)
	}
	if projects[1].Technologies == nil {
		t.Error("Expected empty technologies slice, got nil")
	}

	exps, err := c.Experiences(ctx)
	if err != nil {
		t.Fatalf("Experiences: %v", err)
	}
	if exps[0].Duration != "3 years, 3 months" {
		t.Errorf("Expected computed duration, got %q", exps[0].Duration)
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.CoffeeCups != 1247 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestClientFeaturedQuery(t *testing.T) {
	api := newFakeAPI(t)
	c := NewClient(api.URL)

	if _, err := c.Projects(context.Background(), true); err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if n := api.featuredCount(); n != 1 {
		t.Errorf("Expected featured=true query, got %d", n)
	}
}

func TestClientAPIError(t *testing.T) {
	api := newFakeAPI(t)
	api.failPath("/api/developer", http.StatusNotFound)
	c := NewClient(api.URL)

	_, err := c.Developer(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "boom" {
		t.Errorf("Unexpected API error %+v", apiErr)
	}
}

func TestClientRejectsIncompleteRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/developer", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"","title":"Engineer"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	c := NewClient(srv.URL)

	_, err := c.Developer(context.Background())
	if !errors.Is(err, ErrIncompleteRecord) {
		t.Errorf("Expected ErrIncompleteRecord, got %v", err)
	}
}
