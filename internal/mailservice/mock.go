package mailservice

import (
	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/newsportal/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) Render(name TemplateName, data any) (*email, error) {
	args := m.Called(name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*email), args.Error(1)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) send(recipient string, data any, name TemplateName) error {
	args := m.Called(recipient, data, name)
	return args.Error(0)
}

// MockMessageConsumer delivers bodies once and then closes the channel.
type MockMessageConsumer struct {
	mock.Mock
	bodies [][]byte
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange, queue)
	if err := args.Error(0); err != nil {
		return nil, err
	}

	msgs := make(chan amqp.Delivery)

	go func() {
		defer close(msgs)
		for _, body := range m.bodies {
			msgs <- amqp.Delivery{Body: body}
		}
	}()

	return msgs, nil
}

// MockLogger drops log lines.
type MockLogger struct{}

func (MockLogger) Error(msg string, args ...any) {}
func (MockLogger) Info(msg string, args ...any)  {}
