package portfolio

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrIncompleteRecord marks an API record missing an identifying field
var ErrIncompleteRecord = errors.New("incomplete record")

// Same shape check the contact form always used: something@something.tld
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

// FieldErrors maps a form field to the message shown beside it
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range []string{"name", "email", "subject", "message"} {
		if msg, ok := fe[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "invalid contact form: " + strings.Join(parts, "; ")
}

var contactMessages = map[string]string{
	"name":         "Your name helps me know who I'm talking to!",
	"email":        "I need your email to get back to you!",
	"email/format": "Looks like there's a typo in that email.",
	"subject":      "What's this message about?",
	"message":      "Don't be shy, tell me what's on your mind!",
}

// ValidateContact checks the form. A nil result means it may be sent.
func ValidateContact(msg ContactMessage) FieldErrors {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"message": err.Error()}
	}

	out := make(FieldErrors)
	for _, fe := range verrs {
		key := fe.Field()
		if fe.Tag() == "contact_email" {
			key = "email/format"
		}
		if _, done := out[fe.Field()]; !done {
			out[fe.Field()] = contactMessages[key]
		}
	}
	return out
}

// checkRecord rejects records missing required identity fields
func checkRecord(kind string, rec any) error {
	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s: %w: missing %s", kind, ErrIncompleteRecord, verrs[0].Field())
		}
		return fmt.Errorf("%s: %w", kind, err)
	}
	return nil
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}

func normalizeDeveloper(d *Developer) error {
	if d.YearsExperience < 0 {
		d.YearsExperience = 0
	}
	return checkRecord("developer", d)
}

func normalizeSkills(skills []Skill) error {
	for i := range skills {
		if err := checkRecord("skill", &skills[i]); err != nil {
			return err
		}
		skills[i].Proficiency = clampPercent(skills[i].Proficiency)
	}
	return nil
}

func normalizeTechnologies(techs []Technology) error {
	for i := range techs {
		if err := checkRecord("technology", &techs[i]); err != nil {
			return err
		}
		techs[i].Proficiency = clampPercent(techs[i].Proficiency)
	}
	return nil
}

func normalizeProjects(projects []Project) error {
	for i := range projects {
		p := &projects[i]
		if err := checkRecord("project", p); err != nil {
			return err
		}
		if p.Status == "" {
			p.Status = StatusCompleted
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
	}
	return nil
}

func normalizeExperiences(exps []Experience, now time.Time) error {
	for i := range exps {
		e := &exps[i]
		if err := checkRecord("experience", e); err != nil {
			return err
		}
		if e.Achievements == nil {
			e.Achievements = []string{}
		}
		if e.Technologies == nil {
			e.Technologies = []string{}
		}
		if e.Duration == "" {
			if label, err := SpanLabel(e.StartDate, e.EndDate, now); err == nil {
				e.Duration = label
			}
		}
	}
	return nil
}
