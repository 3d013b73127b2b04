package reminders

import "fmt"

const (
	DefaultSubject    = "Don't Forget to make your Picks"
	DefaultBodyFormat = "%s Kick-off is almost here. Make your picks!"
)

// Template renders the reminder text for a period.
type Template struct {
	Subject    string `yaml:"subject"`
	BodyFormat string `yaml:"body_format"`
}

func DefaultTemplate() Template {
	return Template{
		Subject:    DefaultSubject,
		BodyFormat: DefaultBodyFormat,
	}
}

func (t Template) Render(periodName string) (subject, body string) {
	return t.Subject, fmt.Sprintf(t.BodyFormat, periodName)
}
