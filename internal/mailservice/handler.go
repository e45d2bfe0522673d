package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/newsportal/internal/common"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger *slog.Logger) (*MailService, error) {
	tp, err := NewTemplate()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, tp),
		logger: logger,
		retry:  defaultRetryPolicy,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// SendActivationEmail mails the activation token of every newly created user.
func (s *MailService) SendActivationEmail() {
	s.consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue, func(body []byte) {
		var event common.UserCreatedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
			return
		}

		s.sendWithRetry(event.Email, activationData{ActivationToken: event.Token}, ActivationTemplate)
	})
}

// SendNewPostEmail mails every subscriber of a new post's categories, one message per recipient.
func (s *MailService) SendNewPostEmail() {
	s.consume(common.PostCreatedKey, common.PostExchange, common.PostCreatedQueue, func(body []byte) {
		var event common.PostCreatedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
			return
		}

		data := newPostData{
			PostID:     event.PostID,
			Title:      event.Title,
			Preview:    event.Preview,
			Categories: event.Categories,
		}

		for _, recipient := range event.Recipients {
			if s.ctx.Err() != nil {
				return
			}
			s.sendWithRetry(recipient, data, NewPostTemplate)
		}
	})
}

// consume runs handle for every delivery until the queue closes or the service is closed.
// Deliveries are acked once handled, whether or not the mail went out.
func (s *MailService) consume(key common.BindingKey, exchange common.Exchange, queue common.Queue, handle func(body []byte)) {
	msgs, err := s.mb.Consume(key, exchange, queue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				handle(msg.Body)
				s.ack(msg, queue)

			case <-s.ctx.Done():
				s.logger.Info("stopping consumer due to context cancellation", slog.String("queue", string(queue)))
				return
			}
		}
	}()
}

func (s *MailService) ack(msg amqp.Delivery, queue common.Queue) {
	if msg.Acknowledger == nil {
		return
	}
	if err := msg.Ack(false); err != nil {
		s.logger.Error("could not ack message", slog.String("queue", string(queue)), slog.String("error", err.Error()))
	}
}

func (s *MailService) sendWithRetry(recipient string, data any, name TemplateName) bool {
	for attempt := 0; attempt < s.retry.maxRetries; attempt++ {
		err := s.m.send(recipient, data, name)
		if err == nil {
			s.logger.Info("email sent", slog.String("email", recipient), slog.String("template", string(name)))
			return true
		}

		delay := time.Duration(rand.Int63n(int64(s.retry.baseDelay) << uint(attempt)))
		s.logger.Info("delaying email", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return false
		}
	}

	s.logger.Error("could not send email", slog.String("email", recipient), slog.String("template", string(name)))
	return false
}

func (s *MailService) Close() {
	s.cancel()
}
