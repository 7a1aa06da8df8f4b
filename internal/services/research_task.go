package services

import (
	"context"
	"time"

	"github.com/yungbote/yoshkaflow-backend/internal/data/repos"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/research"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/ctxutil"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
	"github.com/yungbote/yoshkaflow-backend/internal/realtime/bus"
)

type ResearchTaskService interface {
	CRUDService[types.ResearchTask]
	ListByProductID(ctx context.Context, productID int64) ([]*types.ResearchTask, error)
	ListByStatus(ctx context.Context, status string) ([]*types.ResearchTask, error)
}

// researchTaskService announces every successful write on the event bus.
// Publishing is best effort: a failed publish is logged and the write still
// succeeds.
type researchTaskService struct {
	crudService[types.ResearchTask]
	log    *logger.Logger
	repo   repos.ResearchTaskRepo
	events bus.Bus
	now    func() time.Time
}

func NewResearchTaskService(log *logger.Logger, taskRepo repos.ResearchTaskRepo, events bus.Bus) ResearchTaskService {
	if events == nil {
		events = bus.NewNoopBus()
	}
	return &researchTaskService{
		crudService: crudService[types.ResearchTask]{repo: taskRepo},
		log:         log.With("service", "ResearchTaskService"),
		repo:        taskRepo,
		events:      events,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *researchTaskService) Add(ctx context.Context, t *types.ResearchTask) error {
	if err := s.repo.Add(dbctx.From(ctx), t); err != nil {
		return err
	}
	s.publish(ctx, bus.EventResearchTaskCreated, t.TaskID, t.ProductID, t.Status)
	return nil
}

func (s *researchTaskService) Update(ctx context.Context, t *types.ResearchTask) error {
	if err := s.repo.Update(dbctx.From(ctx), t); err != nil {
		return err
	}
	s.publish(ctx, bus.EventResearchTaskUpdated, t.TaskID, t.ProductID, t.Status)
	return nil
}

func (s *researchTaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(dbctx.From(ctx), id); err != nil {
		return err
	}
	s.publish(ctx, bus.EventResearchTaskDeleted, id, 0, "")
	return nil
}

func (s *researchTaskService) ListByProductID(ctx context.Context, productID int64) ([]*types.ResearchTask, error) {
	return s.repo.ListByProductID(dbctx.From(ctx), productID)
}

func (s *researchTaskService) ListByStatus(ctx context.Context, status string) ([]*types.ResearchTask, error) {
	return s.repo.ListByStatus(dbctx.From(ctx), status)
}

func (s *researchTaskService) publish(ctx context.Context, eventType string, id, productID int64, status string) {
	evt := bus.Event{
		Type:     eventType,
		Entity:   research.TaskTableName,
		ID:       id,
		ParentID: productID,
		Status:   status,
		At:       s.now(),
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		fields := append([]interface{}{"event", eventType, "task_id", id, "error", err}, ctxutil.LogFields(ctx)...)
		s.log.Warn("research task event publish failed", fields...)
	}
}
