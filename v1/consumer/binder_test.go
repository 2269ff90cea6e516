package consumer

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBindingConsumer(t *testing.T, cfg Config) *Consumer {
	t.Helper()
	c := newTestConsumer(t, cfg, &fakeDialer{})
	require.NoError(t, c.AddQueue("jobs", func(ctx context.Context, msg Message) error {
		return msg.AckMsg()
	}))
	c.newTag = func() string { return "test-tag" }
	t.Cleanup(c.termination.disarmIdle)
	return c
}

func TestBuild_DeclaresAndSubscribes(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := NewMockConnection(ctrl)
	ch := NewMockChannel(ctrl)

	var deliveries <-chan amqp.Delivery = make(chan amqp.Delivery)

	gomock.InOrder(
		conn.EXPECT().Channel().Return(ch, nil),
		ch.EXPECT().QueueDeclare("jobs", true, false, false, false, nil).Return(amqp.Queue{Name: "jobs"}, nil),
		ch.EXPECT().Consume("jobs", "test-tag", false, false, false, false, nil).Return(deliveries, nil),
	)

	c := newBindingConsumer(t, testConfig())
	b, err := c.build(context.Background(), conn)

	require.NoError(t, err)
	assert.Equal(t, "test-tag", b.tag)
	assert.Equal(t, deliveries, b.deliveries)
	assert.NotNil(t, b.handler)
	assert.Nil(t, c.termination.idleC(), "idle ticker must stay disarmed without an interval")
}

func TestBuild_NonDurableQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := NewMockConnection(ctrl)
	ch := NewMockChannel(ctrl)

	conn.EXPECT().Channel().Return(ch, nil)
	ch.EXPECT().QueueDeclare("jobs", false, false, false, false, nil).Return(amqp.Queue{}, nil)
	ch.EXPECT().Consume("jobs", "test-tag", false, false, false, false, nil).Return(make(chan amqp.Delivery), nil)

	cfg := testConfig()
	durable := false
	cfg.Durable = &durable

	_, err := newBindingConsumer(t, cfg).build(context.Background(), conn)
	require.NoError(t, err)
}

func TestBuild_DeadLetterExchangeAndPrefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := NewMockConnection(ctrl)
	ch := NewMockChannel(ctrl)

	gomock.InOrder(
		conn.EXPECT().Channel().Return(ch, nil),
		ch.EXPECT().QueueDeclare("jobs", true, false, false, false,
			amqp.Table{"x-dead-letter-exchange": "jobs.dlx"}).Return(amqp.Queue{}, nil),
		ch.EXPECT().Qos(10, 0, false).Return(nil),
		ch.EXPECT().Consume("jobs", "test-tag", false, false, false, false, nil).Return(make(chan amqp.Delivery), nil),
	)

	cfg := testConfig()
	cfg.DeadLetterExchange = "jobs.dlx"
	cfg.PrefetchCount = 10

	_, err := newBindingConsumer(t, cfg).build(context.Background(), conn)
	require.NoError(t, err)
}

func TestBuild_ArmsIdleTicker(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := NewMockConnection(ctrl)
	ch := NewMockChannel(ctrl)

	conn.EXPECT().Channel().Return(ch, nil)
	ch.EXPECT().QueueDeclare(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(amqp.Queue{}, nil)
	ch.EXPECT().Consume(gomock.Any(), gomock.Any(), false, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(make(chan amqp.Delivery), nil)

	cfg := testConfig()
	cfg.EmptyQueueDisconnectInterval = 60

	c := newBindingConsumer(t, cfg)
	_, err := c.build(context.Background(), conn)

	require.NoError(t, err)
	assert.NotNil(t, c.termination.idleC())
}

func TestBuild_Failures(t *testing.T) {
	brokerErr := errors.New("broker said no")

	tests := []struct {
		name  string
		setup func(conn *MockConnection, ch *MockChannel)
	}{
		{
			name: "channel",
			setup: func(conn *MockConnection, ch *MockChannel) {
				conn.EXPECT().Channel().Return(nil, brokerErr)
			},
		},
		{
			name: "declare",
			setup: func(conn *MockConnection, ch *MockChannel) {
				conn.EXPECT().Channel().Return(ch, nil)
				ch.EXPECT().QueueDeclare(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(amqp.Queue{}, brokerErr)
				ch.EXPECT().Close().Return(nil)
			},
		},
		{
			name: "qos",
			setup: func(conn *MockConnection, ch *MockChannel) {
				conn.EXPECT().Channel().Return(ch, nil)
				ch.EXPECT().QueueDeclare(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(amqp.Queue{}, nil)
				ch.EXPECT().Qos(5, 0, false).Return(brokerErr)
				ch.EXPECT().Close().Return(nil)
			},
		},
		{
			name: "consume",
			setup: func(conn *MockConnection, ch *MockChannel) {
				conn.EXPECT().Channel().Return(ch, nil)
				ch.EXPECT().QueueDeclare(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(amqp.Queue{}, nil)
				ch.EXPECT().Qos(5, 0, false).Return(nil)
				ch.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, brokerErr)
				ch.EXPECT().Close().Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			conn := NewMockConnection(ctrl)
			ch := NewMockChannel(ctrl)
			tt.setup(conn, ch)

			cfg := testConfig()
			cfg.PrefetchCount = 5
			cfg.EmptyQueueDisconnectInterval = 60

			c := newBindingConsumer(t, cfg)
			b, err := c.build(context.Background(), conn)

			assert.Nil(t, b)
			assert.ErrorIs(t, err, ErrQueueBinding)
			assert.ErrorIs(t, err, brokerErr)
			assert.Nil(t, c.termination.idleC())
		})
	}
}

func TestBindingRelease(t *testing.T) {
	var b *binding
	assert.NoError(t, b.release())

	ctrl := gomock.NewController(t)
	ch := NewMockChannel(ctrl)
	ch.EXPECT().Close().Return(amqp.ErrClosed)

	b = &binding{channel: ch}
	assert.ErrorIs(t, b.release(), amqp.ErrClosed)
}
