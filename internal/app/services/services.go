package services

// Services defined in this package:
// - StockService: stock item store, quantity transactions, purchase intake
// - BorrowService: checkout and return of stock
// - CourseService: course item registration, reservation and completion
// - PurchaseService: purchase pipeline and arrival handoff to stock
// - SearchService: cross-entity substring search
// - AnalyticsService: dashboard aggregates
//
// Each service depends on narrow store interfaces satisfied by the pgx
// repositories, so the quantity rules can be exercised against in-memory
// fakes in tests.
