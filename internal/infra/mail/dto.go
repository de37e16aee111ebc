package mail

import (
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/saint-brief/internal/report"
)

type BriefEmailData struct {
	report.View
	SentAt string
}

type EmailSender struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	Recipients []string
	Location   *time.Location

	send func(m *gomail.Message) error
	now  func() time.Time
}
