package main

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/folio/motion"
	"github.com/Zachkp/folio/portfolio"
)

// revealPrefix is prepended to preset names to form CSS classes
const revealPrefix = "reveal-"

// presetQuery overrides apply to every preset in the listing
type presetQuery struct {
	Distance float64 `form:"distance" binding:"omitempty,gte=0,lte=2000"`
	Duration int     `form:"duration_ms" binding:"omitempty,gte=0,lte=60000"`
	Delay    int     `form:"delay_ms" binding:"omitempty,gte=0,lte=60000"`
	Stagger  int     `form:"stagger_ms" binding:"omitempty,gte=0,lte=60000"`
}

type presetJSON struct {
	Name       string       `json:"name"`
	Class      string       `json:"class"`
	Hidden     motion.State `json:"hidden"`
	Visible    motion.State `json:"visible"`
	DurationMs int64        `json:"duration_ms"`
	DelayMs    int64        `json:"delay_ms"`
	Easing     [4]float64   `json:"easing"`
}

type frameJSON struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Phase  string `json:"phase"`
	Cursor bool   `json:"cursor"`
}

func setupMotionRoutes(r *gin.Engine, a *app) {
	// Generated reveal classes, one per preset
	r.GET("/motion.css", func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "text/css; charset=utf-8", a.motionCSS)
	})

	r.GET("/api/motion/presets", func(c *gin.Context) {
		var q presetQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		o := motion.Overrides{
			Distance: q.Distance,
			Duration: time.Duration(q.Duration) * time.Millisecond,
			Delay:    time.Duration(q.Delay) * time.Millisecond,
			Stagger:  time.Duration(q.Stagger) * time.Millisecond,
		}

		out := make([]presetJSON, 0, len(motion.Names()))
		for _, name := range motion.Names() {
			p := motion.Resolve(name, o)
			out = append(out, presetJSON{
				Name:       p.Name,
				Class:      revealPrefix + p.Name,
				Hidden:     p.Variant.Hidden,
				Visible:    p.Variant.Visible,
				DurationMs: p.Duration.Milliseconds(),
				DelayMs:    p.Delay.Milliseconds(),
				Easing:     [4]float64{p.Easing.X1, p.Easing.Y1, p.Easing.X2, p.Easing.Y2},
			})
		}
		c.JSON(http.StatusOK, out)
	})

	r.GET("/hero/typewriter", a.typewriterStream)
}

// heroPhrases prefers the profile headlines and falls back to the defaults
func (a *app) heroPhrases(c *gin.Context) []string {
	ctx := c.Request.Context()
	dev, err := a.api.Developer(ctx)
	if err != nil {
		return portfolio.DefaultRoles
	}
	skills, err := a.api.Skills(ctx)
	if err != nil {
		return portfolio.DefaultRoles
	}
	return portfolio.Headlines(&portfolio.Profile{Developer: dev, Skills: skills})
}

// typewriterStream pushes every typewriter frame as a server-sent event
// until the client goes away, or after ?limit frames
func (a *app) typewriterStream(c *gin.Context) {
	var q struct {
		Limit int `form:"limit" binding:"omitempty,gte=1"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tw, err := motion.NewTypewriter(a.clock, motion.DefaultTypewriterConfig(a.heroPhrases(c)...))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer tw.Stop()

	frames := make(chan motion.Frame, 64)
	tw.OnChange(func(f motion.Frame) {
		select {
		case frames <- f:
		default:
			// slow reader; the next frame supersedes this one
		}
	})

	streamID := uuid.NewString()
	c.Header("X-Stream-Id", streamID)
	tw.Start()

	sent := 0
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case f := <-frames:
			c.SSEvent("frame", frameJSON{Index: f.Index, Text: f.Text, Phase: f.Phase.String(), Cursor: f.Cursor})
			sent++
			return q.Limit == 0 || sent < q.Limit
		}
	})
	if gin.Mode() == gin.DebugMode {
		log.Printf("Typewriter stream %s closed after %d frames", streamID, sent)
	}
}
