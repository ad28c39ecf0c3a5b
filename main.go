package main

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/folio/motion"
	"github.com/Zachkp/folio/portfolio"
	"github.com/Zachkp/folio/sitelog"
)

// skillStagger spaces skill reveals inside their category
const skillStagger = 100 * time.Millisecond

type app struct {
	cfg        config
	api        *portfolio.Client
	store      *sitelog.Store
	clock      motion.Clock
	contact    *portfolio.ContactForm
	adminToken string
	motionCSS  []byte
}

func newApp(cfg config, api *portfolio.Client, store *sitelog.Store, clock motion.Clock) *app {
	return &app{
		cfg:        cfg,
		api:        api,
		store:      store,
		clock:      clock,
		contact:    portfolio.NewContactForm(api, clock, cfg.BannerDismiss),
		adminToken: generateAdminToken(),
		motionCSS:  []byte(motion.Stylesheet(revealPrefix)),
	}
}

func main() {
	cfg := loadConfig()

	store, err := sitelog.Open(cfg.SitelogDSN)
	if err != nil {
		log.Fatal("Failed to open site log:", err)
	}
	defer store.Close()

	api := portfolio.NewClient(cfg.APIURL, portfolio.WithTimeout(cfg.APITimeout))
	a := newApp(cfg, api, store, motion.RealClock{})
	defer a.contact.Close()

	a.initAdmin()
	r := setupRouter(a)

	log.Printf("Profile API: %s", api.BaseURL())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ago":   humanize.Time,
		"comma": humanize.Comma,
		"ms":    func(d time.Duration) int64 { return d.Milliseconds() },
	}
}

func setupRouter(a *app) *gin.Engine {
	r := gin.Default()
	r.SetFuncMap(templateFuncs())
	r.LoadHTMLGlob("templates/*")

	r.Static("/static", "./static")
	r.Use(a.visitorTrackingMiddleware())

	// Home page: all five collections or the failed-to-load page
	r.GET("/", a.home)

	// HTMX section partials
	r.GET("/sections/projects", a.projectsSection)
	r.GET("/sections/projects/:id", a.projectDetail)
	r.GET("/sections/stats", a.statsSection)

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
			"form":  portfolio.ContactMessage{},
		})
	})
	r.POST("/contact", a.submitContact)

	setupMotionRoutes(r, a)
	setupAdminRoutes(r, a)
	return r
}

type skillView struct {
	portfolio.Skill
	Delay time.Duration
}

type skillGroup struct {
	Category string
	Skills   []skillView
}

// skillGroups staggers each category independently, first item at zero
func (a *app) skillGroups(p *portfolio.Profile) []skillGroup {
	var groups []skillGroup
	for _, cat := range p.SkillCategories() {
		var items []portfolio.Skill
		for _, s := range p.Skills {
			if s.Category == cat {
				items = append(items, s)
			}
		}
		seq := motion.NewSequencer(a.clock, len(items), skillStagger)
		g := skillGroup{Category: cat}
		for i, off := range seq.Offsets() {
			preset := motion.Resolve(motion.FadeIn, motion.Overrides{Stagger: off})
			g.Skills = append(g.Skills, skillView{Skill: items[i], Delay: preset.Delay})
		}
		seq.Close()
		groups = append(groups, g)
	}
	return groups
}

func (a *app) home(c *gin.Context) {
	profile, err := portfolio.Load(c.Request.Context(), a.api)
	if rerr := a.store.RecordLoad(context.Background(), err); rerr != nil {
		log.Printf("Error recording load: %v", rerr)
	}
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"title":   LoadFailedTitle,
			"message": LoadFailedText,
			"retry":   c.Request.URL.Path,
		})
		return
	}

	reveal := make(map[string]string, len(homeSections))
	for _, s := range homeSections {
		reveal[s.ID] = revealPrefix + s.Preset
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"developer":    profile.Developer,
		"headlines":    portfolio.Headlines(profile),
		"sections":     homeSections,
		"reveal":       reveal,
		"skillGroups":  a.skillGroups(profile),
		"experiences":  profile.Experiences,
		"technologies": profile.Technologies,
		"featured":     profile.FeaturedProjects(),
	})
}

func (a *app) sectionError(c *gin.Context, err error) {
	log.Printf("Error loading %s: %v", c.Request.URL.Path, err)
	status := http.StatusBadGateway
	var apiErr *portfolio.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		status = http.StatusNotFound
	}
	c.HTML(status, "section-error.html", gin.H{"message": SectionFailedText})
}

func (a *app) projectsSection(c *gin.Context) {
	featured := c.Query("featured") == "true"
	projects, err := a.api.Projects(c.Request.Context(), featured)
	if err != nil {
		a.sectionError(c, err)
		return
	}
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"projects": projects,
		"featured": featured,
		"class":    revealPrefix + motion.SlideUp,
	})
}

func (a *app) projectDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.HTML(http.StatusNotFound, "section-error.html", gin.H{"message": "No such project."})
		return
	}
	project, err := a.api.Project(c.Request.Context(), id)
	if err != nil {
		a.sectionError(c, err)
		return
	}
	c.HTML(http.StatusOK, "project.html", gin.H{"project": project})
}

func (a *app) statsSection(c *gin.Context) {
	stats, err := a.api.Stats(c.Request.Context())
	if err != nil {
		a.sectionError(c, err)
		return
	}
	c.HTML(http.StatusOK, "stats.html", gin.H{"stats": stats})
}

// Handle contact form submission with HTMX
func (a *app) submitContact(c *gin.Context) {
	var msg portfolio.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		c.HTML(http.StatusBadRequest, "contact-error.html", gin.H{"error": portfolio.FailedText})
		return
	}

	banner, err := a.contact.Submit(c.Request.Context(), msg)
	var fieldErrs portfolio.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		// Re-render the form in place; nothing was sent
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title":  "Contact Me",
			"form":   msg,
			"errors": fieldErrs,
		})
		return
	case err != nil:
		log.Printf("Error sending contact message %s: %v", banner.ID, err)
		a.recordContact(banner)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error":     banner.Text,
			"id":        banner.ID,
			"dismissMs": a.contact.DismissAfter().Milliseconds(),
		})
		return
	}

	a.recordContact(banner)
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success":   banner.Text,
		"id":        banner.ID,
		"dismissMs": a.contact.DismissAfter().Milliseconds(),
	})
}

func (a *app) recordContact(b portfolio.Banner) {
	if err := a.store.RecordContact(context.Background(), b.ID, b.Status.String()); err != nil {
		log.Printf("Error recording contact %s: %v", b.ID, err)
	}
}
