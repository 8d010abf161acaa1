package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StockRepository            *StockRepository
	StockTransactionRepository *StockTransactionRepository
	BorrowRepository           *BorrowRepository
	CourseRepository           *CourseRepository
	CourseItemRepository       *CourseItemRepository
	PurchaseRepository         *PurchaseRepository
	SearchRepository           *SearchRepository
	AnalyticsRepository        *AnalyticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StockRepository:            NewStockRepository(db),
		StockTransactionRepository: NewStockTransactionRepository(db),
		BorrowRepository:           NewBorrowRepository(db),
		CourseRepository:           NewCourseRepository(db),
		CourseItemRepository:       NewCourseItemRepository(db),
		PurchaseRepository:         NewPurchaseRepository(db),
		SearchRepository:           NewSearchRepository(db),
		AnalyticsRepository:        NewAnalyticsRepository(db),
	}
}
