package portfolio

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source serves the five initial-load collections. *Client implements it.
type Source interface {
	Developer(ctx context.Context) (Developer, error)
	Skills(ctx context.Context) ([]Skill, error)
	Technologies(ctx context.Context) ([]Technology, error)
	Projects(ctx context.Context, featuredOnly bool) ([]Project, error)
	Experiences(ctx context.Context) ([]Experience, error)
}

// Load issues all five requests concurrently. Any failure fails the whole
// load and no partial profile is returned; the first error wins and the
// remaining requests are cancelled.
func Load(ctx context.Context, src Source) (*Profile, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		dev   Developer
		skill []Skill
		tech  []Technology
		proj  []Project
		exp   []Experience
	)

	g.Go(func() (err error) {
		dev, err = src.Developer(ctx)
		return err
	})
	g.Go(func() (err error) {
		skill, err = src.Skills(ctx)
		return err
	})
	g.Go(func() (err error) {
		tech, err = src.Technologies(ctx)
		return err
	})
	g.Go(func() (err error) {
		proj, err = src.Projects(ctx, false)
		return err
	})
	g.Go(func() (err error) {
		exp, err = src.Experiences(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Profile{
		Developer:    dev,
		Skills:       skill,
		Technologies: tech,
		Projects:     proj,
		Experiences:  exp,
	}, nil
}

// LoadState is where a Loader stands
type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// LoadResult is a Loader snapshot. Profile is set only when Ready, Err
// only when Failed.
type LoadResult struct {
	State    LoadState
	Profile  *Profile
	Err      error
	LoadedAt time.Time
	Attempts int
}

// Loader holds the page-session view of the profile: fetched once on
// mount, replaced wholesale on retry
type Loader struct {
	src Source
	now func() time.Time

	mu  sync.Mutex
	res LoadResult
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src, now: time.Now}
}

// Load fetches everything and returns the resulting snapshot
func (l *Loader) Load(ctx context.Context) LoadResult {
	l.mu.Lock()
	l.res.State = StateLoading
	l.res.Profile = nil
	l.res.Err = nil
	l.res.Attempts++
	attempt := l.res.Attempts
	l.mu.Unlock()

	profile, err := Load(ctx, l.src)

	l.mu.Lock()
	defer l.mu.Unlock()
	if attempt != l.res.Attempts {
		// superseded by a newer retry
		return l.res
	}
	if err != nil {
		l.res.State = StateFailed
		l.res.Profile = nil
		l.res.Err = err
		return l.res
	}
	l.res.State = StateReady
	l.res.Profile = profile
	l.res.LoadedAt = l.now()
	return l.res
}

// Retry re-issues all five requests
func (l *Loader) Retry(ctx context.Context) LoadResult {
	return l.Load(ctx)
}

// Result returns the current snapshot
func (l *Loader) Result() LoadResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.res
}
