package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectRunCompleted announces a finished dataset build so downstream
// fine-tuning and persona services can pick up fresh artifacts without
// polling the filesystem.
const SubjectRunCompleted = "persona.corpus.run.completed"

// RunCompleted is the payload published on SubjectRunCompleted.
type RunCompleted struct {
	RunID            string   `json:"run_id"`
	Target           string   `json:"target"`
	ResponseExamples int      `json:"response_examples"`
	TimingExamples   int      `json:"timing_examples"`
	Artifacts        []string `json:"artifacts"`
	CompletedAt      string   `json:"completed_at"`
}

type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Close() {
	c.conn.Close()
}
