package service

import (
	"go.uber.org/zap"

	"github.com/wompwomp13/elderease-care-connect-sub000/config"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/chatbot"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/pricing"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/repository"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/jwt"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/redis"
)

// Service aggregates all business-logic services.
type Service struct {
	Auth         AuthService
	Request      RequestService
	Assignment   AssignmentService
	Volunteer    VolunteerService
	Chat         ChatService
	Availability AvailabilityService
	Export       ExportService
}

// NewService creates the service aggregate.
// redisClient may be nil; token revocation then degrades gracefully.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	rates := pricing.RateTable{
		Rates:         cfg.Pricing.Rates,
		CommissionPct: cfg.Pricing.CommissionPct,
		Strict:        true,
	}
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, redisClient, logger),
		Request:      NewRequestService(repo, rates, logger),
		Assignment:   NewAssignmentService(repo, rates, logger),
		Volunteer:    NewVolunteerService(repo, logger),
		Chat:         NewChatService(&cfg.Chat, chatbot.NewKeywordScorer(), logger),
		Availability: NewAvailabilityService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
