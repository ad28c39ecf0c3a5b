package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/folio/motion"
	"github.com/Zachkp/folio/portfolio"
)

// heroRows is the height of the particle backdrop above the hero text
const heroRows = 10

type sectionDef struct {
	id     string
	title  string
	preset string
}

var sectionDefs = []sectionDef{
	{"about", "About", motion.SlideUp},
	{"skills", "Skills", motion.FadeIn},
	{"experience", "Experience", motion.SlideRight},
	{"projects", "Featured Projects", motion.SlideUp},
	{"technologies", "Technologies", motion.ScaleIn},
	{"contact", "Contact", motion.SlideLeft},
}

func wrap(text string, width int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if width < 10 {
		width = 10
	}
	return strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
}

// flatSkills orders skills by category, first-seen order
func flatSkills(p *portfolio.Profile) []portfolio.Skill {
	var out []portfolio.Skill
	for _, cat := range p.SkillCategories() {
		for _, s := range p.Skills {
			if s.Category == cat {
				out = append(out, s)
			}
		}
	}
	return out
}

func skillLine(s portfolio.Skill, width int) string {
	name := fmt.Sprintf("%-14s", s.Name)
	bar := progressBar(s.Proficiency, min(30, max(width-24, 5)))
	return fmt.Sprintf("  %s %s %3d%%", name, bar, s.Proficiency)
}

// sectionBody renders a section's lines, excluding skills which reveal
// item by item
func sectionBody(id string, p *portfolio.Profile, width int) []string {
	var out []string
	switch id {
	case "about":
		out = wrap(p.Developer.Bio, width)
		if p.Developer.YearsExperience > 0 {
			out = append(out, mutedStyle.Render(fmt.Sprintf("%d years of experience", p.Developer.YearsExperience)))
		}
	case "experience":
		for _, e := range p.Experiences {
			end := e.EndDate
			if e.IsCurrent || end == "" {
				end = "Present"
			}
			out = append(out, lipgloss.NewStyle().Bold(true).Render(e.Title+" · "+e.Company))
			out = append(out, mutedStyle.Render(fmt.Sprintf("%s – %s · %s", e.StartDate, end, e.Duration)))
			out = append(out, wrap(e.Description, width)...)
			for _, a := range e.Achievements {
				out = append(out, wrap("• "+a, width)...)
			}
			out = append(out, "")
		}
	case "projects":
		for _, pr := range p.FeaturedProjects() {
			out = append(out, lipgloss.NewStyle().Bold(true).Render(pr.Title)+" "+mutedStyle.Render("["+pr.Status+"]"))
			out = append(out, wrap(pr.Description, width)...)
			if len(pr.Technologies) > 0 {
				out = append(out, mutedStyle.Render(strings.Join(pr.Technologies, " · ")))
			}
			out = append(out, "")
		}
	case "technologies":
		names := make([]string, len(p.Technologies))
		for i, t := range p.Technologies {
			names[i] = t.Name
		}
		out = wrap(strings.Join(names, ", "), width)
	case "contact":
		d := p.Developer
		for _, kv := range [][2]string{{"Email", d.Email}, {"Phone", d.Phone}, {"GitHub", d.GitHub}, {"LinkedIn", d.LinkedIn}} {
			if kv[1] != "" {
				out = append(out, fmt.Sprintf("%-9s %s", kv[0], kv[1]))
			}
		}
	}
	if len(out) == 0 {
		out = []string{mutedStyle.Render("Nothing here yet.")}
	}
	return out
}
