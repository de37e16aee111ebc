package mail

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/saint-brief/internal/config"
	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/report"
)

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/brief.html"))
	textTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/brief.txt"))
)

func NewEmailSender(cfg config.MailConfig, loc *time.Location) *EmailSender {
	s := &EmailSender{
		Host:       cfg.Host,
		Port:       cfg.Port,
		User:       cfg.User,
		Password:   cfg.Password,
		From:       cfg.From,
		Recipients: cfg.Recipients,
		Location:   loc,
		now:        time.Now,
	}
	dialer := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	s.send = func(m *gomail.Message) error { return dialer.DialAndSend(m) }
	return s
}

// SendBriefNotification envia o brief concluído para os destinatários fixos,
// com corpo em texto puro e alternativa HTML.
func (s *EmailSender) SendBriefNotification(ctx context.Context, b *entity.Brief) error {
	if len(s.Recipients) == 0 {
		return errors.New("nenhum destinatário configurado")
	}

	m, err := s.buildMessage(b)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.send(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) buildMessage(b *entity.Brief) (*gomail.Message, error) {
	text, html, err := s.render(b)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.Recipients...)
	m.SetHeader("Subject", report.Subject(b))
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)
	return m, nil
}

func (s *EmailSender) render(b *entity.Brief) (string, string, error) {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	data := BriefEmailData{
		View:   report.BuildView(b, loc),
		SentAt: s.now().In(loc).Format(entity.RowTimeLayout),
	}

	var text, html bytes.Buffer
	if err := textTemplate.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("erro ao processar template texto: %w", err)
	}
	if err := htmlTemplate.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("erro ao processar template html: %w", err)
	}
	return text.String(), html.String(), nil
}
