// Package email sends transactional mail over SMTP. The dialer is built
// once at process start and injected where a ConfirmationSender is
// needed, so tests can substitute a double instead of reaching for a
// process-wide transport.
package email

import (
	"bytes"
	"context"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/synthoshq/internal/helpers"
	"github.com/synthoshq/internal/pipeline"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"
)

const confirmationSubject = "Welcome to the SynthOS Waitlist! 🚀"

type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	From         string
	FromName     string
	TemplatePath string
}

type Sender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	template *template.Template
}

// NewSender parses the confirmation template up front so a broken
// template fails at boot, not on the first signup.
func NewSender(cfg Config) (*Sender, error) {
	absolutePath, err := filepath.Abs(cfg.TemplatePath)
	if err != nil {
		return nil, err
	}
	tmpl, err := helpers.ParseTemplateFile(absolutePath)
	if err != nil {
		return nil, err
	}

	return &Sender{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
		template: tmpl,
	}, nil
}

type templateContext struct {
	Name       string
	Occupation string
	Platform   string
}

// SendConfirmation renders and dispatches the signup confirmation.
func (s *Sender) SendConfirmation(ctx context.Context, to string, data pipeline.TemplateData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := new(bytes.Buffer)
	err := s.template.Execute(body, templateContext{
		Name:       displayName(to),
		Occupation: data.Occupation,
		Platform:   data.Platform,
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", confirmationSubject)
	m.SetBody("text/html", body.String())

	return s.dialer.DialAndSend(m)
}

// displayName makes a greeting name from the address local part, e.g.
// "jane.doe@example.com" → "Jane Doe".
func displayName(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	return cases.Title(language.English).String(local)
}
