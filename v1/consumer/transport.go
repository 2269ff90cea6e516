package consumer

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultDialTimeout = 30 * time.Second

// Connection is the subset of *amqp.Connection used by the consumer.
//
//go:generate mockgen -source=transport.go -destination=mock_transport.go -package=consumer
type Connection interface {
	// Channel opens a new channel on the connection.
	Channel() (Channel, error)

	// NotifyClose registers a listener for the connection close event.
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error

	// Close performs the close handshake and waits for it to finish.
	Close() error

	// IsClosed reports whether the connection has been closed.
	IsClosed() bool
}

// Channel is the subset of *amqp.Channel used by the consumer.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueDeclarePassive(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Dialer opens broker connections. The default implementation uses amqp091-go.
type Dialer interface {
	Dial(ctx context.Context, cfg Config) (Connection, error)
}

// amqpDialer dials real brokers with amqp.DialConfig.
type amqpDialer struct{}

func (amqpDialer) Dial(ctx context.Context, cfg Config) (Connection, error) {
	amqpCfg := amqp.Config{
		Heartbeat:  cfg.Heartbeat,
		Properties: amqp.NewConnectionProperties(),
		Dial:       contextDial(ctx),
	}
	if cfg.ConnectionName != "" {
		amqpCfg.Properties.SetClientConnectionName(cfg.ConnectionName)
	}

	if cfg.TLS.Enabled() {
		tlsConfig, err := newTLSConfig(cfg.TLS)
		if err != nil {
			return nil, err
		}
		amqpCfg.TLSClientConfig = tlsConfig
	}

	conn, err := amqp.DialConfig(cfg.URL, amqpCfg)
	if err != nil {
		return nil, err
	}
	return amqpConnection{conn}, nil
}

// contextDial returns a dial function that aborts when ctx is cancelled and
// bounds the AMQP handshake with defaultDialTimeout. The deadline is cleared
// by amqp091-go once the connection is open.
func contextDial(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		d := net.Dialer{Timeout: defaultDialTimeout}
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(time.Now().Add(defaultDialTimeout)); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

func newTLSConfig(cfg TLS) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		ServerName: cfg.ServerName,
		MinVersion: tls.VersionTLS12,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA cert")
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCertPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// amqpConnection adapts *amqp.Connection to Connection.
type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) Channel() (Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}
