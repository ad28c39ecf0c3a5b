package portfolio

import "strings"

// DefaultRoles cycle in the hero when the profile offers nothing better
var DefaultRoles = []string{
	"🚀 Full Stack Engineer",
	"💎 Ruby on Rails Expert",
	"⚡ React Architect",
	"🐍 Python Developer",
	"☁️ DevOps Engineer",
	"🧠 AI Problem Solver",
}

// Headlines builds the hero phrases: the developer title first, then one
// line per featured skill, falling back to DefaultRoles
func Headlines(p *Profile) []string {
	if p == nil {
		return DefaultRoles
	}
	var out []string
	if t := strings.TrimSpace(p.Developer.Title); t != "" {
		out = append(out, t)
	}
	for _, s := range p.Skills {
		if s.Featured {
			out = append(out, s.Name+" Developer")
		}
	}
	if len(out) < 2 {
		out = append(out, DefaultRoles...)
	}
	return out
}
