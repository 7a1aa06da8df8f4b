package domain

import (
	"github.com/yungbote/yoshkaflow-backend/internal/domain/products"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/research"
	"github.com/yungbote/yoshkaflow-backend/internal/domain/user"
)

const (
	TaskStatusPending = research.StatusPending
)

type User = user.User

type Product = products.Product

type ResearchTask = research.ResearchTask
type Evidence = research.Evidence
type Metric = research.Metric
type ConfidenceScore = research.ConfidenceScore
type PatternTracking = research.PatternTracking
type DataGap = research.DataGap
