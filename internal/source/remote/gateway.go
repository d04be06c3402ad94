package remote

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/source"
)

// Gateway implements source.Gateway over the task service HTTP API.
type Gateway struct {
	client *Client
}

var _ source.Gateway = (*Gateway)(nil)

// NewGateway creates a gateway for the service at baseURL.
func NewGateway(
	baseURL string,
	token string,
	timeout time.Duration,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		client: NewClient(baseURL, token, timeout, logger),
	}
}

// ListTasks fetches every task due on or before maxDueDate. The boundary is
// sent as a zone-less local timestamp.
func (g *Gateway) ListTasks(ctx context.Context, maxDueDate time.Time) ([]model.Task, error) {
	query := url.Values{}
	query.Set("date", maxDueDate.Format(listDateLayout))

	var dtos []TaskDTO
	if err := g.client.Get(ctx, "list tasks", "/tasks", query, &dtos); err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(dtos))
	for _, dto := range dtos {
		tasks = append(tasks, dtoToTask(dto))
	}
	return tasks, nil
}

// CreateTask posts a new task.
func (g *Gateway) CreateTask(ctx context.Context, description string, estimatedAt time.Time) error {
	body := CreateTaskRequest{
		Desc:       description,
		EstimateAt: estimatedAt,
	}
	return g.client.Post(ctx, "create task", "/tasks", body)
}

// ToggleTask flips the done state of a task.
func (g *Gateway) ToggleTask(ctx context.Context, id string) error {
	return g.client.Put(ctx, "toggle task", "/tasks/"+url.PathEscape(id)+"/toggle")
}

// DeleteTask removes a task.
func (g *Gateway) DeleteTask(ctx context.Context, id string) error {
	return g.client.Delete(ctx, "delete task", "/tasks/"+url.PathEscape(id))
}

// dtoToTask converts a wire task to the model.
func dtoToTask(dto TaskDTO) model.Task {
	task := model.Task{
		ID:          string(dto.ID),
		Description: dto.Desc,
		EstimatedAt: dto.EstimateAt.Time,
	}
	if dto.DoneAt != nil && !dto.DoneAt.IsZero() {
		doneAt := dto.DoneAt.Time
		task.DoneAt = &doneAt
	}
	return task
}
