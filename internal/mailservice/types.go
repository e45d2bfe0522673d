package mailservice

import (
	"context"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/newsportal/internal/common"
)

type MailService struct {
	mb     common.MessageConsumer
	m      Mailer
	logger MailLogger
	retry  retryPolicy
	ctx    context.Context
	cancel context.CancelFunc
}

// retryPolicy is exponential backoff with full jitter.
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
}

var defaultRetryPolicy = retryPolicy{maxRetries: 5, baseDelay: 500 * time.Millisecond}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// TemplateName is a file under templates/ defining the subject, plainBody and htmlBody blocks.
type TemplateName string

const (
	ActivationTemplate TemplateName = "activation_email.html"
	NewPostTemplate    TemplateName = "new_post_email.html"
)

// templateNames are parsed when the service starts.
var templateNames = []TemplateName{ActivationTemplate, NewPostTemplate}

type Mail struct {
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, name TemplateName) error
}

type Template struct {
	set map[TemplateName]*template.Template
}

// email is a rendered template.
type email struct {
	subject   string
	plainBody string
	htmlBody  string
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	Render(name TemplateName, data any) (*email, error)
}

type activationData struct {
	ActivationToken string
}

type newPostData struct {
	PostID     int
	Title      string
	Preview    string
	Categories []string
}
