package services

import (
	"context"
	"log"
	"time"

	"github.com/rsystemautomacao/agrodrones/internal/caching"
	"github.com/rsystemautomacao/agrodrones/internal/models"
	"github.com/rsystemautomacao/agrodrones/internal/repositories"

	"github.com/google/uuid"
)

// DashboardStats are the headline numbers shown on the company dashboard.
type DashboardStats struct {
	AplicacoesMes  int `json:"aplicacoes_mes"`
	AplicacoesHoje int `json:"aplicacoes_hoje"`
	TotalClientes  int `json:"total_clientes"`
	TotalDrones    int `json:"total_drones"`
}

type DashboardService interface {
	Stats(ctx context.Context, companyID uuid.UUID) (*DashboardStats, error)
	// RecentApplications returns the latest spray events with their
	// references resolved, newest first.
	RecentApplications(ctx context.Context, companyID uuid.UUID, limit int) ([]*ResolvedApplication, error)
	// RefreshStats recomputes the stats and stores them in the cache. The
	// background scheduler calls it so dashboard loads stay warm.
	RefreshStats(ctx context.Context, companyID uuid.UUID) (*DashboardStats, error)
}

type dashboardService struct {
	applicationRepo repositories.ApplicationRepository
	clientRepo      repositories.ClientRepository
	droneRepo       repositories.DroneRepository
	exportService   ExportService
	cacheService    caching.CacheService
}

func NewDashboardService(applicationRepo repositories.ApplicationRepository, clientRepo repositories.ClientRepository, droneRepo repositories.DroneRepository, exportService ExportService, cacheService caching.CacheService) DashboardService {
	return &dashboardService{
		applicationRepo: applicationRepo,
		clientRepo:      clientRepo,
		droneRepo:       droneRepo,
		exportService:   exportService,
		cacheService:    cacheService,
	}
}

const statsCacheTTL = 5 * time.Minute

func (s *dashboardService) Stats(ctx context.Context, companyID uuid.UUID) (*DashboardStats, error) {
	if cached, err := s.cacheService.GetDashboardStats(ctx, companyID); cached != nil && err == nil {
		return statsFromMap(cached), nil
	} else if err != nil {
		// Cache errors never fail a dashboard load.
		log.Printf("Cache error for dashboard stats %s: %v", companyID, err)
	}
	return s.RefreshStats(ctx, companyID)
}

func (s *dashboardService) RefreshStats(ctx context.Context, companyID uuid.UUID) (*DashboardStats, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	aplicacoesMes, err := s.applicationRepo.CountStartedSince(ctx, companyID, startOfMonth)
	if err != nil {
		return nil, err
	}
	aplicacoesHoje, err := s.applicationRepo.CountStartedBetween(ctx, companyID, today, tomorrow)
	if err != nil {
		return nil, err
	}
	totalClientes, err := s.clientRepo.Count(ctx, companyID)
	if err != nil {
		return nil, err
	}
	totalDrones, err := s.droneRepo.CountActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		AplicacoesMes:  aplicacoesMes,
		AplicacoesHoje: aplicacoesHoje,
		TotalClientes:  totalClientes,
		TotalDrones:    totalDrones,
	}

	if cacheErr := s.cacheService.SetDashboardStats(ctx, companyID, statsToMap(stats), statsCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache dashboard stats for %s: %v", companyID, cacheErr)
	}
	return stats, nil
}

func (s *dashboardService) RecentApplications(ctx context.Context, companyID uuid.UUID, limit int) ([]*ResolvedApplication, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.exportService.Resolve(ctx, companyID, &models.ApplicationFilter{Limit: limit})
}

func statsToMap(stats *DashboardStats) map[string]interface{} {
	return map[string]interface{}{
		"aplicacoes_mes":  stats.AplicacoesMes,
		"aplicacoes_hoje": stats.AplicacoesHoje,
		"total_clientes":  stats.TotalClientes,
		"total_drones":    stats.TotalDrones,
	}
}

func statsFromMap(m map[string]interface{}) *DashboardStats {
	asInt := func(key string) int {
		switch v := m[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		default:
			return 0
		}
	}
	return &DashboardStats{
		AplicacoesMes:  asInt("aplicacoes_mes"),
		AplicacoesHoje: asInt("aplicacoes_hoje"),
		TotalClientes:  asInt("total_clientes"),
		TotalDrones:    asInt("total_drones"),
	}
}
