package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/pkg/apperrors"
)

type courseFixture struct {
	svc         *CourseService
	stock       *fakeStockStore
	courses     *fakeCourseStore
	courseItems *fakeCourseItemStore
	txnLog      *fakeTransactionLog
}

func newCourseFixture() *courseFixture {
	f := &courseFixture{
		stock:       newFakeStockStore(),
		courses:     newFakeCourseStore(),
		courseItems: newFakeCourseItemStore(),
		txnLog:      &fakeTransactionLog{},
	}
	f.svc = NewCourseService(f.courses, f.courseItems, f.stock, f.stock, f.txnLog, zerolog.Nop())
	return f
}

func (f *courseFixture) addStock(name string, quantity int) *models.StockItem {
	return f.stock.add(&models.StockItem{
		Name:              name,
		Quantity:          quantity,
		AvailableQuantity: quantity,
		Status:            models.StockStatusInStock,
	})
}

func (f *courseFixture) createCourse(t *testing.T) *models.Course {
	t.Helper()
	course, err := f.svc.CreateCourse(context.Background(), CourseInput{Name: "Robotics 101"})
	require.NoError(t, err)
	return course
}

func TestCreateCourse(t *testing.T) {
	f := newCourseFixture()

	course := f.createCourse(t)
	assert.Equal(t, models.CourseStatusPlanning, course.Status)

	_, err := f.svc.CreateCourse(context.Background(), CourseInput{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestAddItems_SufficiencyCheck(t *testing.T) {
	f := newCourseFixture()
	f.addStock("Arduino Uno", 10)
	f.addStock("Servo motor", 2)
	course := f.createCourse(t)

	result, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "arduino", RequiredQuantity: 5},
		{ItemName: "servo", RequiredQuantity: 4},
		{ItemName: "flux capacitor", RequiredQuantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, 1, result.SufficientItems)
	assert.Equal(t, 2, result.InsufficientItems)

	byName := map[string]*models.CourseItem{}
	for _, item := range result.Items {
		byName[item.ItemName] = item
	}

	arduino := byName["arduino"]
	require.NotNil(t, arduino)
	assert.Equal(t, models.CourseItemStatusSufficient, arduino.Status)
	assert.Equal(t, 10, arduino.AvailableQuantity)
	require.NotNil(t, arduino.StockItemID)

	servo := byName["servo"]
	require.NotNil(t, servo)
	assert.Equal(t, models.CourseItemStatusInsufficient, servo.Status)

	unmatched := byName["flux capacitor"]
	require.NotNil(t, unmatched)
	assert.Nil(t, unmatched.StockItemID)
	assert.Equal(t, 0, unmatched.AvailableQuantity)
	assert.Equal(t, models.CourseItemStatusInsufficient, unmatched.Status)
}

func TestAddItems_NoStockMutation(t *testing.T) {
	f := newCourseFixture()
	item := f.addStock("Arduino Uno", 10)
	course := f.createCourse(t)

	_, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "arduino", RequiredQuantity: 5},
	})
	require.NoError(t, err)

	got, err := f.stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.AvailableQuantity, "registration is a planning step, not a reservation")
}

func TestAddItems_PicksHighestAvailability(t *testing.T) {
	f := newCourseFixture()
	f.addStock("Servo motor SG90", 2)
	big := f.addStock("Servo motor MG996", 8)
	course := f.createCourse(t)

	result, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "servo motor", RequiredQuantity: 5},
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Items[0].StockItemID)
	assert.Equal(t, big.ID, *result.Items[0].StockItemID)
	assert.Equal(t, models.CourseItemStatusSufficient, result.Items[0].Status)
}

func TestAddItems_Validation(t *testing.T) {
	f := newCourseFixture()
	course := f.createCourse(t)

	_, err := f.svc.AddItems(context.Background(), course.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{{ItemName: "x", RequiredQuantity: 0}})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.AddItems(context.Background(), 999, []CourseItemRequest{{ItemName: "x", RequiredQuantity: 1}})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestReserveItems_AllSucceedActivatesCourse(t *testing.T) {
	f := newCourseFixture()
	item := f.addStock("Arduino Uno", 10)
	course := f.createCourse(t)

	_, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "arduino", RequiredQuantity: 6},
	})
	require.NoError(t, err)

	result, err := f.svc.ReserveItems(context.Background(), course.ID)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ReservedItems)
	assert.Empty(t, result.FailedItems)

	got, err := f.stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.AvailableQuantity)
	assert.Equal(t, 10, got.Quantity, "reservation must not change total quantity")

	updated, err := f.courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusActive, updated.Status)

	assert.Equal(t, models.ReasonReservedForCourse, f.txnLog.lastReason())
}

func TestReserveItems_StaleSnapshotFails(t *testing.T) {
	f := newCourseFixture()
	item := f.addStock("Arduino Uno", 10)
	course := f.createCourse(t)

	_, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "arduino", RequiredQuantity: 6},
	})
	require.NoError(t, err)

	// Stock drains between registration and reservation. The snapshot
	// said sufficient; the live check must still reject.
	_, err = f.stock.ReserveAvailable(context.Background(), item.ID, 7)
	require.NoError(t, err)

	result, err := f.svc.ReserveItems(context.Background(), course.ID)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.ReservedItems)
	assert.Equal(t, []string{"arduino (insufficient stock)"}, result.FailedItems)

	updated, err := f.courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPlanning, updated.Status, "a failed reservation must not activate the course")
}

func TestReserveItems_PartialFailureKeepsSuccesses(t *testing.T) {
	f := newCourseFixture()
	arduino := f.addStock("Arduino Uno", 10)
	servo := f.addStock("Servo motor", 6)
	course := f.createCourse(t)

	_, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "arduino", RequiredQuantity: 4},
		{ItemName: "servo", RequiredQuantity: 5},
	})
	require.NoError(t, err)

	// Drain the servo pool behind the course's back.
	_, err = f.stock.ReserveAvailable(context.Background(), servo.ID, 3)
	require.NoError(t, err)

	result, err := f.svc.ReserveItems(context.Background(), course.ID)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.ReservedItems)
	assert.Equal(t, []string{"servo (insufficient stock)"}, result.FailedItems)

	// The successful reservation stands; no rollback.
	got, err := f.stock.GetByID(context.Background(), arduino.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.AvailableQuantity)

	updated, err := f.courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPlanning, updated.Status)
}

func TestReserveItems_ReservationFailureEntry(t *testing.T) {
	f := newCourseFixture()
	f.addStock("Arduino Uno", 10)
	course := f.createCourse(t)

	_, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "arduino", RequiredQuantity: 4},
	})
	require.NoError(t, err)

	f.stock.reserveErr = errors.New("connection reset")

	result, err := f.svc.ReserveItems(context.Background(), course.ID)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, []string{"arduino (reservation failed)"}, result.FailedItems)
}

func TestReserveItems_NoItems(t *testing.T) {
	f := newCourseFixture()
	course := f.createCourse(t)

	result, err := f.svc.ReserveItems(context.Background(), course.ID)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ReservedItems)

	updated, err := f.courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPlanning, updated.Status, "an empty reservation run must not activate the course")
}

func reserveCourseWithItem(t *testing.T, f *courseFixture, required int) (*models.Course, *models.StockItem) {
	t.Helper()
	item := f.addStock("Arduino Uno", 10)
	course := f.createCourse(t)

	_, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "arduino", RequiredQuantity: required},
	})
	require.NoError(t, err)

	result, err := f.svc.ReserveItems(context.Background(), course.ID)
	require.NoError(t, err)
	require.True(t, result.Success)
	return course, item
}

func TestCompleteCourse_ReturnItems(t *testing.T) {
	f := newCourseFixture()
	course, item := reserveCourseWithItem(t, f, 6)

	result, err := f.svc.CompleteCourse(context.Background(), course.ID, true)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ReturnedItems)
	assert.Equal(t, 0, result.DeductedItems)

	got, err := f.stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, 10, got.AvailableQuantity)

	updated, err := f.courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusCompleted, updated.Status)

	assert.Equal(t, models.ReasonReturnedFromCourse, f.txnLog.lastReason())
}

func TestCompleteCourse_ConsumeItems(t *testing.T) {
	f := newCourseFixture()
	course, item := reserveCourseWithItem(t, f, 6)

	result, err := f.svc.CompleteCourse(context.Background(), course.ID, false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.ReturnedItems)
	assert.Equal(t, 1, result.DeductedItems)

	// The available pool already dropped at reservation; consumption
	// removes the units from the total as well.
	got, err := f.stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)
	assert.Equal(t, 4, got.AvailableQuantity)
	assert.Equal(t, models.StockStatusLowStock, got.Status)

	assert.Equal(t, models.ReasonUsedInCourse, f.txnLog.lastReason())
}

func TestCompleteCourse_Idempotent(t *testing.T) {
	f := newCourseFixture()
	course, item := reserveCourseWithItem(t, f, 6)

	_, err := f.svc.CompleteCourse(context.Background(), course.ID, true)
	require.NoError(t, err)

	// A second completion finds no reserved items and changes nothing.
	result, err := f.svc.CompleteCourse(context.Background(), course.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ReturnedItems)

	got, err := f.stock.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.AvailableQuantity)
}

func TestCompleteCourse_UnknownCourse(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.CompleteCourse(context.Background(), 999, true)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestGetCourse_WithItems(t *testing.T) {
	f := newCourseFixture()
	f.addStock("Arduino Uno", 10)
	course := f.createCourse(t)

	_, err := f.svc.AddItems(context.Background(), course.ID, []CourseItemRequest{
		{ItemName: "arduino", RequiredQuantity: 2},
	})
	require.NoError(t, err)

	details, err := f.svc.GetCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, details.Course.ID)
	assert.Len(t, details.Items, 1)
}
