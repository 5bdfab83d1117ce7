package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"roundtable-api/core/constants"
	"roundtable-api/core/logger"

	"github.com/hibiken/asynq"
)

// NotificationPayload is the body of a notification:deliver task.
type NotificationPayload struct {
	UserID  string         `json:"user_id"`
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

type NotificationHandler func(ctx context.Context, payload NotificationPayload) error

type Enqueuer interface {
	EnqueueNotification(ctx context.Context, payload NotificationPayload) error
}

const notificationMaxRetry = 3

func NewNotificationTask(payload NotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskNotificationDeliver, body,
		asynq.MaxRetry(notificationMaxRetry),
		asynq.Queue(constants.QueueDefault),
	), nil
}

type asynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer(client *asynq.Client) Enqueuer {
	return &asynqEnqueuer{client: client}
}

func (q *asynqEnqueuer) EnqueueNotification(ctx context.Context, payload NotificationPayload) error {
	task, err := NewNotificationTask(payload)
	if err != nil {
		return err
	}
	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("Queue:EnqueueNotification", err, "user_id", payload.UserID, "type", payload.Type)
		return err
	}
	logger.Debug("Queue:EnqueueNotification", "task_id", info.ID, "queue", info.Queue)
	return nil
}

type inlineEnqueuer struct {
	handler NotificationHandler
}

// NewInlineEnqueuer runs the handler synchronously. Used when no Redis is configured.
func NewInlineEnqueuer(handler NotificationHandler) Enqueuer {
	return &inlineEnqueuer{handler: handler}
}

func (q *inlineEnqueuer) EnqueueNotification(ctx context.Context, payload NotificationPayload) error {
	if q.handler == nil {
		return nil
	}
	return q.handler(ctx, payload)
}

// Worker consumes queued tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redisOpt asynq.RedisConnOpt, concurrency int) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{constants.QueueDefault: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", err, "type", task.Type())
		}),
	})
	return &Worker{server: srv, mux: asynq.NewServeMux()}
}

func (w *Worker) HandleNotifications(h NotificationHandler) {
	w.mux.HandleFunc(constants.TaskNotificationDeliver, NotificationTaskHandler(h))
}

// NotificationTaskHandler decodes the task body. Malformed payloads are not retried.
func NotificationTaskHandler(h NotificationHandler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload NotificationPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("decode notification payload: %v: %w", err, asynq.SkipRetry)
		}
		return h(ctx, payload)
	}
}

func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
