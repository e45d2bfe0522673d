package mailservice

import (
	"fmt"
	"time"

	"github.com/go-mail/mail/v2"
)

// NewMailer returns a Mail that renders templates with tp and sends them over SMTP as sender.
func NewMailer(host string, port int, username, password, sender string, tp TemplateParser) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &Mail{
		dialer: dialer,
		sender: sender,
		parser: tp,
	}
}

// send renders the named template and delivers it to recipient as a plain text message with an HTML alternative.
// Each call dials its own connection, so the consumers can send concurrently.
func (m *Mail) send(recipient string, data any, name TemplateName) error {
	e, err := m.parser.Render(name, data)
	if err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(m.message(recipient, e)); err != nil {
		return fmt.Errorf("could not send %s to %s: %w", name, recipient, err)
	}

	return nil
}

func (m *Mail) message(recipient string, e *email) *mail.Message {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", e.subject)
	msg.SetDateHeader("Date", time.Now())
	msg.SetBody("text/plain", e.plainBody)
	msg.AddAlternative("text/html", e.htmlBody)

	return msg
}
