package portfolio

// Developer is the single profile record
type Developer struct {
	Name            string `json:"name" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Bio             string `json:"bio"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	GitHub          string `json:"github"`
	LinkedIn        string `json:"linkedin"`
	YearsExperience int    `json:"years_experience"`
	ResumeURL       string `json:"resume_url"`
	AvatarURL       string `json:"avatar_url"`
}

type Skill struct {
	ID              int    `json:"id"`
	Name            string `json:"name" validate:"required"`
	Category        string `json:"category"`
	Proficiency     int    `json:"proficiency"`
	YearsExperience *int   `json:"years_experience,omitempty"`
	Featured        bool   `json:"is_featured,omitempty"`
}

type Technology struct {
	ID          int    `json:"id"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
}

// Project statuses
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
	StatusPlanned    = "planned"
)

type Project struct {
	ID           int      `json:"id"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHubURL    string   `json:"github_url,omitempty"`
	LiveURL      string   `json:"live_url,omitempty"`
	ImageURL     string   `json:"image_url"`
	Featured     bool     `json:"featured"`
	Status       string   `json:"status"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
}

type Experience struct {
	ID             int      `json:"id"`
	Title          string   `json:"title" validate:"required"`
	Company        string   `json:"company" validate:"required"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date,omitempty"`
	Description    string   `json:"description"`
	Achievements   []string `json:"achievements"`
	IsCurrent      bool     `json:"is_current"`
	Duration       string   `json:"duration"`
	Technologies   []string `json:"technologies"`
}

// Stats are the headline counters shown under the hero
type Stats struct {
	ProjectsCompleted int `json:"projects_completed"`
	YearsExperience   int `json:"years_experience"`
	TechnologiesUsed  int `json:"technologies_used"`
	GitHubRepos       int `json:"github_repos"`
	CoffeeCups        int `json:"coffee_cups"`
}

// ContactMessage is the contact form payload
type ContactMessage struct {
	Name    string `json:"name" form:"name" validate:"notblank"`
	Email   string `json:"email" form:"email" validate:"notblank,contact_email"`
	Subject string `json:"subject" form:"subject" validate:"notblank"`
	Message string `json:"message" form:"message" validate:"notblank"`
}

// ContactReceipt is the API reply to a delivered message
type ContactReceipt struct {
	Message string `json:"message"`
}

// Profile holds the five initial-load results together
type Profile struct {
	Developer    Developer
	Skills       []Skill
	Technologies []Technology
	Projects     []Project
	Experiences  []Experience
}

// FeaturedProjects filters projects flagged featured
func (p *Profile) FeaturedProjects() []Project {
	var out []Project
	for _, pr := range p.Projects {
		if pr.Featured {
			out = append(out, pr)
		}
	}
	return out
}

// SkillCategories returns categories in first-seen order
func (p *Profile) SkillCategories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range p.Skills {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}
