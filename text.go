package main

import "github.com/Zachkp/folio/motion"

var (
	LoadFailedTitle = `Couldn't load the portfolio`

	LoadFailedText = `The profile service didn't answer, so there is nothing to show yet.
	Nothing on this page is cached, which means a retry asks for everything again.`

	SectionFailedText = `This section couldn't be loaded right now.`

	PrivacySummary = `Visits are counted with a salted hash of your IP address, never the
	address itself. Requests carrying Do Not Track are not counted at all. Everything is
	kept in memory and is gone when the server restarts.`
)

// section is one reveal-animated block of the home page
type section struct {
	ID     string
	Title  string
	Preset string
}

// Every section shares the one preset set; only the variant differs.
var homeSections = []section{
	{ID: "about", Title: "About", Preset: motion.SlideUp},
	{ID: "skills", Title: "Skills", Preset: motion.FadeIn},
	{ID: "experience", Title: "Experience", Preset: motion.SlideRight},
	{ID: "projects", Title: "Featured Projects", Preset: motion.SlideUp},
	{ID: "technologies", Title: "Technologies", Preset: motion.ScaleIn},
	{ID: "contact", Title: "Contact", Preset: motion.SlideLeft},
}
