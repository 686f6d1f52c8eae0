package events

import (
	"context"
	"fmt"
	"io"
	"os"
	"skinwatch/internal/structures"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// Notification is one NDJSON record shown to the user by the local channel.
type Notification struct {
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Condition   string    `json:"condition,omitempty"`
	Probability float64   `json:"probability,omitempty"`
	ResultId    string    `json:"resultId,omitempty"`
}

type EmitterInterface interface {
	Emit(ctx context.Context, n Notification) error
}

// Emitter writes NDJSON notifications to an io.Writer safely across goroutines.
type Emitter struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w}
}

// NewEmitterProvider opens channels.local.output for appending; "-" or an
// empty value means stdout.
func NewEmitterProvider(conf *structures.Config) (EmitterInterface, func(), error) {
	out := conf.Channels.Local.Output
	if out == "" || out == "-" {
		return NewEmitter(os.Stdout), func() {}, nil
	}

	file, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open notification output %s: %w", out, err)
	}
	return NewEmitter(file), func() { _ = file.Close() }, nil
}

func (e *Emitter) Emit(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Type == "" {
		n.Type = "notification"
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.writer.Write(append(payload, '\n')); err != nil {
		return err
	}
	return nil
}
