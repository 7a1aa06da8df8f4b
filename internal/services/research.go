package services

import (
	"context"

	"github.com/yungbote/yoshkaflow-backend/internal/data/repos"
	types "github.com/yungbote/yoshkaflow-backend/internal/domain"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/dbctx"
	"github.com/yungbote/yoshkaflow-backend/internal/platform/logger"
)

type EvidenceService interface {
	CRUDService[types.Evidence]
	ListByTaskID(ctx context.Context, taskID int64) ([]*types.Evidence, error)
}

type evidenceService struct {
	crudService[types.Evidence]
	log  *logger.Logger
	repo repos.EvidenceRepo
}

func NewEvidenceService(log *logger.Logger, evidenceRepo repos.EvidenceRepo) EvidenceService {
	return &evidenceService{
		crudService: crudService[types.Evidence]{repo: evidenceRepo},
		log:         log.With("service", "EvidenceService"),
		repo:        evidenceRepo,
	}
}

func (s *evidenceService) ListByTaskID(ctx context.Context, taskID int64) ([]*types.Evidence, error) {
	return s.repo.ListByTaskID(dbctx.From(ctx), taskID)
}

type MetricService interface {
	CRUDService[types.Metric]
	ListByTaskID(ctx context.Context, taskID int64) ([]*types.Metric, error)
	FindByRawData(ctx context.Context, value any, keys ...string) ([]*types.Metric, error)
	FindWithRawDataKey(ctx context.Context, keys ...string) ([]*types.Metric, error)
	FindByPatternAnalysis(ctx context.Context, value any, keys ...string) ([]*types.Metric, error)
}

type metricService struct {
	crudService[types.Metric]
	log  *logger.Logger
	repo repos.MetricRepo
}

func NewMetricService(log *logger.Logger, metricRepo repos.MetricRepo) MetricService {
	return &metricService{
		crudService: crudService[types.Metric]{repo: metricRepo},
		log:         log.With("service", "MetricService"),
		repo:        metricRepo,
	}
}

func (s *metricService) ListByTaskID(ctx context.Context, taskID int64) ([]*types.Metric, error) {
	return s.repo.ListByTaskID(dbctx.From(ctx), taskID)
}

func (s *metricService) FindByRawData(ctx context.Context, value any, keys ...string) ([]*types.Metric, error) {
	return s.repo.FindByRawData(dbctx.From(ctx), value, keys...)
}

func (s *metricService) FindWithRawDataKey(ctx context.Context, keys ...string) ([]*types.Metric, error) {
	return s.repo.FindWithRawDataKey(dbctx.From(ctx), keys...)
}

func (s *metricService) FindByPatternAnalysis(ctx context.Context, value any, keys ...string) ([]*types.Metric, error) {
	return s.repo.FindByPatternAnalysis(dbctx.From(ctx), value, keys...)
}

type ConfidenceScoreService interface {
	CRUDService[types.ConfidenceScore]
	GetByMetricID(ctx context.Context, metricID int64) (*types.ConfidenceScore, error)
}

type confidenceScoreService struct {
	crudService[types.ConfidenceScore]
	log  *logger.Logger
	repo repos.ConfidenceScoreRepo
}

func NewConfidenceScoreService(log *logger.Logger, scoreRepo repos.ConfidenceScoreRepo) ConfidenceScoreService {
	return &confidenceScoreService{
		crudService: crudService[types.ConfidenceScore]{repo: scoreRepo},
		log:         log.With("service", "ConfidenceScoreService"),
		repo:        scoreRepo,
	}
}

func (s *confidenceScoreService) GetByMetricID(ctx context.Context, metricID int64) (*types.ConfidenceScore, error) {
	return s.repo.GetByMetricID(dbctx.From(ctx), metricID)
}

type PatternTrackingService interface {
	CRUDService[types.PatternTracking]
	GetByMetricID(ctx context.Context, metricID int64) (*types.PatternTracking, error)
	FindByPattern(ctx context.Context, column string, value any, keys ...string) ([]*types.PatternTracking, error)
}

type patternTrackingService struct {
	crudService[types.PatternTracking]
	log  *logger.Logger
	repo repos.PatternTrackingRepo
}

func NewPatternTrackingService(log *logger.Logger, patternRepo repos.PatternTrackingRepo) PatternTrackingService {
	return &patternTrackingService{
		crudService: crudService[types.PatternTracking]{repo: patternRepo},
		log:         log.With("service", "PatternTrackingService"),
		repo:        patternRepo,
	}
}

func (s *patternTrackingService) GetByMetricID(ctx context.Context, metricID int64) (*types.PatternTracking, error) {
	return s.repo.GetByMetricID(dbctx.From(ctx), metricID)
}

func (s *patternTrackingService) FindByPattern(ctx context.Context, column string, value any, keys ...string) ([]*types.PatternTracking, error) {
	return s.repo.FindByPattern(dbctx.From(ctx), column, value, keys...)
}

type DataGapService interface {
	CRUDService[types.DataGap]
	ListByTaskID(ctx context.Context, taskID int64) ([]*types.DataGap, error)
}

type dataGapService struct {
	crudService[types.DataGap]
	log  *logger.Logger
	repo repos.DataGapRepo
}

func NewDataGapService(log *logger.Logger, gapRepo repos.DataGapRepo) DataGapService {
	return &dataGapService{
		crudService: crudService[types.DataGap]{repo: gapRepo},
		log:         log.With("service", "DataGapService"),
		repo:        gapRepo,
	}
}

func (s *dataGapService) ListByTaskID(ctx context.Context, taskID int64) ([]*types.DataGap, error) {
	return s.repo.ListByTaskID(dbctx.From(ctx), taskID)
}
