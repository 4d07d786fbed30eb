package services

import (
	"time"

	"order_portal/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardStats is the fixed-shape record every dashboard renders. Fields
// that do not apply to a role stay at their zero value.
type DashboardStats struct {
	TotalOrdersToday int64            `json:"total_orders_today"`
	OrdersThisMonth  int64            `json:"orders_this_month"`
	PendingOrders    int64            `json:"pending_orders"`
	TotalRetailers   int64            `json:"total_retailers"`
	TotalSalesmen    int64            `json:"total_salesmen"`
	TotalBrands      int64            `json:"total_brands"`
	TotalOrders      int64            `json:"total_orders"`
	OrdersByStatus   map[string]int64 `json:"orders_by_status"`
	RecentOrders     []RecentOrder    `json:"recent_orders"`
}

type RecentOrder struct {
	ID           string          `json:"id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	RetailerName string          `json:"retailer_name,omitempty"`
}

// DashboardService runs the role-keyed aggregation queries the UI renders
// verbatim. A failed query degrades to zeroed stats rather than an error so a
// broken dashboard never blocks the rest of a page.
type DashboardService interface {
	AdminStats() DashboardStats
	SalesmanStats(salesmanID string) DashboardStats
	RetailerStats(retailerID string) DashboardStats
}

type dashboardService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDashboardService(db *gorm.DB, log *zap.Logger) DashboardService {
	return &dashboardService{db: db, log: log}
}

func (s *dashboardService) AdminStats() DashboardStats {
	stats := emptyStats()

	if err := s.collect(func() error {
		if err := s.countUsers(string(models.Retailer), &stats.TotalRetailers); err != nil {
			return err
		}
		if err := s.countUsers(string(models.Salesman), &stats.TotalSalesmen); err != nil {
			return err
		}
		if err := s.db.Model(&models.Brand{}).Count(&stats.TotalBrands).Error; err != nil {
			return err
		}
		if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
			return err
		}
		if err := s.ordersByStatus(s.db.Model(&models.Order{}), &stats); err != nil {
			return err
		}
		return s.recentOrders(s.db.Model(&models.Order{}), &stats)
	}); err != nil {
		return emptyStats()
	}
	return stats
}

func (s *dashboardService) SalesmanStats(salesmanID string) DashboardStats {
	stats := emptyStats()
	scope := func() *gorm.DB { return s.db.Model(&models.Order{}).Where("salesman_id = ?", salesmanID) }

	if err := s.collect(func() error {
		if err := s.db.Model(&models.User{}).
			Where("role = ? AND assigned_salesman_id = ?", string(models.Retailer), salesmanID).
			Count(&stats.TotalRetailers).Error; err != nil {
			return err
		}
		if err := scope().Count(&stats.TotalOrders).Error; err != nil {
			return err
		}
		if err := s.ordersByStatus(scope(), &stats); err != nil {
			return err
		}
		return s.recentOrders(scope(), &stats)
	}); err != nil {
		return emptyStats()
	}
	return stats
}

func (s *dashboardService) RetailerStats(retailerID string) DashboardStats {
	stats := emptyStats()
	scope := func() *gorm.DB { return s.db.Model(&models.Order{}).Where("retailer_id = ?", retailerID) }

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	if err := s.collect(func() error {
		if err := scope().Count(&stats.TotalOrders).Error; err != nil {
			return err
		}
		if err := scope().Where("created_at >= ?", dayStart).Count(&stats.TotalOrdersToday).Error; err != nil {
			return err
		}
		if err := scope().Where("created_at >= ?", monthStart).Count(&stats.OrdersThisMonth).Error; err != nil {
			return err
		}
		if err := s.ordersByStatus(scope(), &stats); err != nil {
			return err
		}
		return s.recentOrders(scope(), &stats)
	}); err != nil {
		return emptyStats()
	}
	return stats
}

func (s *dashboardService) collect(fn func() error) error {
	if err := fn(); err != nil {
		s.log.Warn("dashboard aggregation failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *dashboardService) countUsers(role string, dest *int64) error {
	return s.db.Model(&models.User{}).Where("role = ?", role).Count(dest).Error
}

func (s *dashboardService) ordersByStatus(q *gorm.DB, stats *DashboardStats) error {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := q.Select("status, count(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		stats.OrdersByStatus[row.Status] = row.Count
		if row.Status == string(models.OrderPending) {
			stats.PendingOrders = row.Count
		}
	}
	return nil
}

func (s *dashboardService) recentOrders(q *gorm.DB, stats *DashboardStats) error {
	var orders []models.Order
	if err := q.Preload("Retailer").Order("created_at desc").Limit(5).Find(&orders).Error; err != nil {
		return err
	}
	for _, o := range orders {
		recent := RecentOrder{
			ID:          o.ID,
			TotalAmount: o.TotalAmount,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
		}
		if o.Retailer != nil {
			if o.Retailer.BusinessName != nil && *o.Retailer.BusinessName != "" {
				recent.RetailerName = *o.Retailer.BusinessName
			} else {
				recent.RetailerName = o.Retailer.OwnerName
			}
		}
		stats.RecentOrders = append(stats.RecentOrders, recent)
	}
	return nil
}

func emptyStats() DashboardStats {
	return DashboardStats{
		OrdersByStatus: map[string]int64{},
		RecentOrders:   []RecentOrder{},
	}
}
