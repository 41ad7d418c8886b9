package config

// SiteConfig is the static content of the portfolio page.
type SiteConfig struct {
	Personal Personal     `yaml:"personal" koanf:"personal"`
	About    About        `yaml:"about" koanf:"about"`
	Skills   []SkillGroup `yaml:"skills" koanf:"skills"`
	Contact  Contact      `yaml:"contact" koanf:"contact"`
	Theme    Theme        `yaml:"theme" koanf:"theme"`
}

// Personal holds the site owner's identity.
type Personal struct {
	Name     string `yaml:"name" koanf:"name"`
	Title    string `yaml:"title" koanf:"title"`
	Email    string `yaml:"email" koanf:"email"`
	LinkedIn string `yaml:"linkedin" koanf:"linkedin"`
	GitHub   string `yaml:"github" koanf:"github"`
}

// About is the about section: a few paragraphs and headline numbers.
type About struct {
	Paragraphs []string `yaml:"paragraphs" koanf:"paragraphs"`
	Stats      []Stat   `yaml:"stats" koanf:"stats"`
}

// Stat is one headline number such as {"25+", "Public Repositories"}.
type Stat struct {
	Value string `yaml:"value" koanf:"value"`
	Label string `yaml:"label" koanf:"label"`
}

// SkillGroup is a named list of skills. Groups render in file order.
type SkillGroup struct {
	Category string   `yaml:"category" koanf:"category"`
	Items    []string `yaml:"items" koanf:"items"`
}

// Contact is the contact section.
type Contact struct {
	Title       string          `yaml:"title" koanf:"title"`
	Description string          `yaml:"description" koanf:"description"`
	Methods     []ContactMethod `yaml:"methods" koanf:"methods"`
}

// ContactMethod is one way to get in touch. Icon is a CSS class list.
type ContactMethod struct {
	Icon string `yaml:"icon" koanf:"icon"`
	Text string `yaml:"text" koanf:"text"`
	Link string `yaml:"link" koanf:"link"`
}

// Theme holds the CSS custom property colors.
type Theme struct {
	Primary   string `yaml:"primary" koanf:"primary"`
	Secondary string `yaml:"secondary" koanf:"secondary"`
	Accent    string `yaml:"accent" koanf:"accent"`
}

// DefaultSite returns the content used when the config file has no site section.
func DefaultSite() SiteConfig {
	return SiteConfig{
		Contact: Contact{
			Title:       "Let's Work Together",
			Description: "I'm always open to discussing new opportunities, interesting projects, or just having a chat about technology.",
		},
		Theme: Theme{
			Primary:   "#6366f1",
			Secondary: "#06b6d4",
			Accent:    "#f59e0b",
		},
	}
}
