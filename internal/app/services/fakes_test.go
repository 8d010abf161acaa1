package services

import (
	"context"
	"strings"
	"time"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/app/repositories"
)

// fakeStockStore is an in-memory stand-in for the stock repository. It
// mirrors the repository contract, including the guarded updates that
// fail with ErrStockConditionFailed instead of going negative.
type fakeStockStore struct {
	items  map[int64]*models.StockItem
	nextID int64

	reserveErr error
}

func newFakeStockStore() *fakeStockStore {
	return &fakeStockStore{items: map[int64]*models.StockItem{}, nextID: 1}
}

func (f *fakeStockStore) add(item *models.StockItem) *models.StockItem {
	item.ID = f.nextID
	f.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ID] = item
	return item
}

func (f *fakeStockStore) Create(_ context.Context, item *models.StockItem) error {
	f.add(item)
	return nil
}

func (f *fakeStockStore) GetByID(_ context.Context, id int64) (*models.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrStockItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStockStore) GetAll(_ context.Context) ([]*models.StockItem, error) {
	items := make([]*models.StockItem, 0, len(f.items))
	for _, item := range f.items {
		copied := *item
		items = append(items, &copied)
	}
	return items, nil
}

func (f *fakeStockStore) UpdateDetails(_ context.Context, id int64, name string, purchasePrice *float64, location, courseTag *string) (*models.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrStockItemNotFound
	}
	item.Name = name
	item.PurchasePrice = purchasePrice
	item.Location = location
	item.CourseTag = courseTag
	item.UpdatedAt = time.Now()
	copied := *item
	return &copied, nil
}

func (f *fakeStockStore) FindByNameAndCourseTag(_ context.Context, name string, courseTag *string) (*models.StockItem, error) {
	for _, item := range f.items {
		if item.Name != name {
			continue
		}
		if (item.CourseTag == nil) != (courseTag == nil) {
			continue
		}
		if item.CourseTag != nil && *item.CourseTag != *courseTag {
			continue
		}
		copied := *item
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStockStore) FindBestMatch(_ context.Context, name string) (*models.StockItem, error) {
	var best *models.StockItem
	for _, item := range f.items {
		if !strings.Contains(strings.ToLower(item.Name), strings.ToLower(name)) {
			continue
		}
		if best == nil || item.AvailableQuantity > best.AvailableQuantity {
			best = item
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func (f *fakeStockStore) AddQuantities(_ context.Context, id int64, qty int) (*models.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrStockItemNotFound
	}
	item.Quantity += qty
	item.AvailableQuantity += qty
	item.Status = models.DeriveStockStatus(item.Quantity)
	copied := *item
	return &copied, nil
}

func (f *fakeStockStore) RemoveQuantities(_ context.Context, id int64, qty int) (*models.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrStockItemNotFound
	}
	if item.Quantity < qty || item.AvailableQuantity < qty {
		return nil, repositories.ErrStockConditionFailed
	}
	item.Quantity -= qty
	item.AvailableQuantity -= qty
	item.Status = models.DeriveStockStatus(item.Quantity)
	copied := *item
	return &copied, nil
}

func (f *fakeStockStore) ReserveAvailable(_ context.Context, id int64, qty int) (*models.StockItem, error) {
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrStockItemNotFound
	}
	if item.AvailableQuantity < qty {
		return nil, repositories.ErrStockConditionFailed
	}
	item.AvailableQuantity -= qty
	copied := *item
	return &copied, nil
}

func (f *fakeStockStore) ReleaseAvailable(_ context.Context, id int64, qty int) (*models.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrStockItemNotFound
	}
	item.AvailableQuantity += qty
	copied := *item
	return &copied, nil
}

func (f *fakeStockStore) DeductQuantity(_ context.Context, id int64, qty int) (*models.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrStockItemNotFound
	}
	if item.Quantity < qty {
		return nil, repositories.ErrStockConditionFailed
	}
	item.Quantity -= qty
	item.Status = models.DeriveStockStatus(item.Quantity)
	copied := *item
	return &copied, nil
}

// fakeTransactionLog records appended transactions in order.
type fakeTransactionLog struct {
	entries   []*models.StockTransaction
	appendErr error
}

func (f *fakeTransactionLog) Append(_ context.Context, txn *models.StockTransaction) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	txn.ID = int64(len(f.entries) + 1)
	txn.Date = time.Now()
	f.entries = append(f.entries, txn)
	return nil
}

func (f *fakeTransactionLog) ListByStockItem(_ context.Context, stockItemID int64) ([]*models.StockTransaction, error) {
	var out []*models.StockTransaction
	for _, txn := range f.entries {
		if txn.StockItemID == stockItemID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTransactionLog) lastReason() string {
	if len(f.entries) == 0 {
		return ""
	}
	last := f.entries[len(f.entries)-1]
	if last.Reason == nil {
		return ""
	}
	return *last.Reason
}

// fakeBorrowStore is an in-memory stand-in for the borrow repository.
type fakeBorrowStore struct {
	records   map[int64]*models.BorrowRecord
	nextID    int64
	createErr error
}

func newFakeBorrowStore() *fakeBorrowStore {
	return &fakeBorrowStore{records: map[int64]*models.BorrowRecord{}, nextID: 1}
}

func (f *fakeBorrowStore) Create(_ context.Context, record *models.BorrowRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	record.ID = f.nextID
	f.nextID++
	record.BorrowDate = time.Now()
	record.CreatedAt = record.BorrowDate
	record.UpdatedAt = record.BorrowDate
	f.records[record.ID] = record
	return nil
}

func (f *fakeBorrowStore) GetByID(_ context.Context, id int64) (*models.BorrowRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, repositories.ErrBorrowRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeBorrowStore) GetAll(_ context.Context) ([]*models.BorrowRecord, error) {
	records := make([]*models.BorrowRecord, 0, len(f.records))
	for _, record := range f.records {
		copied := *record
		records = append(records, &copied)
	}
	return records, nil
}

func (f *fakeBorrowStore) MarkReturned(_ context.Context, id int64, status models.BorrowStatus, returnedAt time.Time) (*models.BorrowRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, repositories.ErrBorrowRecordNotFound
	}
	record.Status = status
	record.ActualReturnDate = &returnedAt
	record.UpdatedAt = returnedAt
	copied := *record
	return &copied, nil
}

// fakeCourseStore is an in-memory stand-in for the course repository.
type fakeCourseStore struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: map[int64]*models.Course{}, nextID: 1}
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = f.nextID
	f.nextID++
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseStore) GetAll(_ context.Context) ([]*models.Course, error) {
	courses := make([]*models.Course, 0, len(f.courses))
	for _, course := range f.courses {
		copied := *course
		courses = append(courses, &copied)
	}
	return courses, nil
}

func (f *fakeCourseStore) UpdateStatus(_ context.Context, id int64, status models.CourseStatus) error {
	course, ok := f.courses[id]
	if !ok {
		return repositories.ErrCourseNotFound
	}
	course.Status = status
	course.UpdatedAt = time.Now()
	return nil
}

// fakeCourseItemStore is an in-memory stand-in for the course item repository.
type fakeCourseItemStore struct {
	items  map[int64]*models.CourseItem
	nextID int64
}

func newFakeCourseItemStore() *fakeCourseItemStore {
	return &fakeCourseItemStore{items: map[int64]*models.CourseItem{}, nextID: 1}
}

func (f *fakeCourseItemStore) Create(_ context.Context, item *models.CourseItem) error {
	item.ID = f.nextID
	f.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ID] = item
	return nil
}

func (f *fakeCourseItemStore) ListByCourse(_ context.Context, courseID int64) ([]*models.CourseItem, error) {
	var out []*models.CourseItem
	for _, item := range f.items {
		if item.CourseID == courseID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCourseItemStore) ListResolvedByStatus(_ context.Context, courseID int64, status models.CourseItemStatus) ([]*models.CourseItem, error) {
	var out []*models.CourseItem
	for _, item := range f.items {
		if item.CourseID == courseID && item.Status == status && item.StockItemID != nil {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCourseItemStore) MarkReserved(_ context.Context, id int64, reservedQuantity int) error {
	item, ok := f.items[id]
	if !ok {
		return repositories.ErrCourseItemNotFound
	}
	item.Status = models.CourseItemStatusReserved
	item.ReservedQuantity = reservedQuantity
	item.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCourseItemStore) UpdateStatus(_ context.Context, id int64, status models.CourseItemStatus) error {
	item, ok := f.items[id]
	if !ok {
		return repositories.ErrCourseItemNotFound
	}
	item.Status = status
	item.UpdatedAt = time.Now()
	return nil
}

// fakePurchaseStore is an in-memory stand-in for the purchase repository.
type fakePurchaseStore struct {
	items  map[int64]*models.PurchaseItem
	nextID int64
}

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{items: map[int64]*models.PurchaseItem{}, nextID: 1}
}

func (f *fakePurchaseStore) Create(_ context.Context, item *models.PurchaseItem) error {
	item.ID = f.nextID
	f.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items[item.ID] = item
	return nil
}

func (f *fakePurchaseStore) GetByID(_ context.Context, id int64) (*models.PurchaseItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrPurchaseItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakePurchaseStore) GetAll(_ context.Context) ([]*models.PurchaseItem, error) {
	items := make([]*models.PurchaseItem, 0, len(f.items))
	for _, item := range f.items {
		copied := *item
		items = append(items, &copied)
	}
	return items, nil
}

func (f *fakePurchaseStore) UpdateStatus(_ context.Context, id int64, status models.PurchaseStatus) (*models.PurchaseItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrPurchaseItemNotFound
	}
	item.Status = status
	item.UpdatedAt = time.Now()
	copied := *item
	return &copied, nil
}

func (f *fakePurchaseStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repositories.ErrPurchaseItemNotFound
	}
	delete(f.items, id)
	return nil
}
