package queue

import (
	"context"
	"fmt"
	"os"

	"sparkle-booking/core/constants"
	"sparkle-booking/core/logger"

	"github.com/hibiken/asynq"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) clientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: c.Addr, Password: c.Password, DB: c.DB}
}

// Enqueuer hands tasks to the background worker.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error
}

type Client struct {
	client *asynq.Client
}

func NewClient(cfg RedisConfig) *Client {
	return &Client{client: asynq.NewClient(cfg.clientOpt())}
}

func (c *Client) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	info, err := c.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		logger.Error("Queue:Enqueue:Error", "type", task.Type(), "error", err)
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	logger.Info("Queue:Enqueue:Success", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Worker runs task handlers registered by the modules.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker consumes the given queues, or the default queue when none are named.
func NewWorker(cfg RedisConfig, concurrency int, queues ...string) *Worker {
	srv := asynq.NewServer(cfg.clientOpt(), asynq.Config{
		Concurrency: concurrency,
		Queues:      workerQueues(queues),
		Logger:      asynqLogger{},
	})
	return &Worker{server: srv, mux: asynq.NewServeMux()}
}

func workerQueues(names []string) map[string]int {
	if len(names) == 0 {
		names = []string{constants.TaskQueueDefault}
	}
	out := make(map[string]int, len(names))
	for _, name := range names {
		out[name] = 1
	}
	return out
}

func (w *Worker) HandleFunc(taskType string, handler func(context.Context, *asynq.Task) error) {
	w.mux.HandleFunc(taskType, handler)
}

// Start is non-blocking.
func (w *Worker) Start() error {
	logger.Info("Queue:Worker:Starting")
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) { logger.Debug(fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...interface{})  { logger.Info(fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...interface{})  { logger.Warn(fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...interface{}) { logger.Error(fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...interface{}) {
	logger.Error(fmt.Sprint(args...))
	logger.Sync()
	os.Exit(1)
}
