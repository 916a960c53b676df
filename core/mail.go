package core

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"
	"net/mail"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"

	appfs "github.com/harmonyhs/harmony/fs"
)

var (
	textTemplates *texttmpl.Template
	htmlTemplates *htmltmpl.Template
	tmplInit      sync.Once
)

type (
	Attachment struct {
		Content     *bytes.Buffer
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		BodyStr     string // simple text/plain, non-templated content
		Attachments []Attachment

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		AppName         string
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently.
		SendMessages(messages ...*EmailMessage)
	}
)

// ParseEmailTemplates loads all embedded email templates.
// Safe to call more than once; only the first call parses.
func ParseEmailTemplates(logger Logger) {
	tmplInit.Do(func() {
		var err error
		if textTemplates, err = texttmpl.ParseFS(appfs.FS, "templates/email/*.txt"); err != nil {
			logger.Fatal("parsing text email templates", err)
		}
		if htmlTemplates, err = htmltmpl.ParseFS(appfs.FS, "templates/email/*.html"); err != nil {
			logger.Fatal("parsing html email templates", err)
		}
	})
}

func (m *EmailMessage) contextData(conf *Config) ContextData {
	return ContextData{
		AppName:         conf.AppName,
		FrontendBaseURL: conf.FrontendBaseURL,
		Data:            m.TemplateData,
	}
}

// Render resolves the message contents: either the plain BodyStr or the
// named text/html template pair under templates/email.
func (m *EmailMessage) Render(conf *Config) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}
	if textTemplates == nil || htmlTemplates == nil {
		return errors.New("email templates not parsed; call ParseEmailTemplates first")
	}

	data := m.contextData(conf)

	var txt bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&txt, m.TemplateName+".txt", data); err != nil {
		return errors.Wrapf(err, "executing template %s.txt", m.TemplateName)
	}
	m.TextContent = txt.String()

	var html bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, m.TemplateName+".html", data); err != nil {
		return errors.Wrapf(err, "executing template %s.html", m.TemplateName)
	}
	m.HTMLContent = html.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0 || len(m.Cc) > 0 || len(m.Bcc) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != "" || m.HTMLContent != ""
}

func (m *EmailMessage) HasAttachments() bool {
	return len(m.Attachments) > 0
}

func (m *EmailMessage) String() string {
	return fmt.Sprintf("EmailMessage(to=%v, subject=%q)", m.To, m.Subject)
}
