package orderControllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func testUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	user := models.User{
		ID:       uuid.NewString(),
		Name:     "Тест",
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		OrderItems: []OrderItemInput{
			{ProductID: 1, Name: "Диван Премиум", Price: 1000, Quantity: 2},
			{ProductID: 2, Name: "Стол", Price: 500, Quantity: 1},
		},
		ShippingAddress: ShippingAddressInput{
			FullName:   "Иванов Иван",
			Address:    "ул. Ленина, 1",
			City:       "Москва",
			PostalCode: "101000",
			Phone:      "+79990001122",
		},
		PaymentMethod:  "card",
		DeliveryMethod: "courier",
	}
}

func kindOf(t *testing.T, err error) httpapi.Kind {
	var apiErr *httpapi.Error
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Kind
}

func TestGuestOrderTotals(t *testing.T) {
	db := setupTestDB(t)

	order, err := CreateOrder(db, validRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2500.0, order.ItemsPrice)
	assert.Equal(t, 0.0, order.ShippingPrice)
	assert.Equal(t, 2500.0, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.UserID)
	assert.NotZero(t, order.ID)
	assert.Len(t, order.Items, 2)
}

func TestTotalInvariantHeldAfterReload(t *testing.T) {
	db := setupTestDB(t)
	admin := testUser(t, db, models.RoleAdmin)

	order, err := CreateOrder(db, validRequest(), nil)
	require.NoError(t, err)

	// A later catalog price change must not leak into the stored order.
	reloaded, err := GetOrder(db, order.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, reloaded.TotalPrice, reloaded.ItemsPrice+reloaded.ShippingPrice)
	assert.Equal(t, 1000.0, reloaded.Items[0].Price)
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB(t)

	empty := validRequest()
	empty.OrderItems = nil
	_, err := CreateOrder(db, empty, nil)
	assert.Equal(t, httpapi.KindValidation, kindOf(t, err))

	badQty := validRequest()
	badQty.OrderItems[0].Quantity = 0
	_, err = CreateOrder(db, badQty, nil)
	assert.Equal(t, httpapi.KindValidation, kindOf(t, err))

	noCity := validRequest()
	noCity.ShippingAddress.City = ""
	_, err = CreateOrder(db, noCity, nil)
	assert.Equal(t, httpapi.KindValidation, kindOf(t, err))

	badPay := validRequest()
	badPay.PaymentMethod = "bitcoin"
	_, err = CreateOrder(db, badPay, nil)
	assert.Equal(t, httpapi.KindValidation, kindOf(t, err))

	badDelivery := validRequest()
	badDelivery.DeliveryMethod = "drone"
	_, err = CreateOrder(db, badDelivery, nil)
	assert.Equal(t, httpapi.KindValidation, kindOf(t, err))
}

func TestOrderBelongsToAuthenticatedUser(t *testing.T) {
	db := setupTestDB(t)
	user := testUser(t, db, models.RoleUser)

	order, err := CreateOrder(db, validRequest(), user)
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, user.ID, *order.UserID)
}

func TestGetOrderAuthorization(t *testing.T) {
	db := setupTestDB(t)
	owner := testUser(t, db, models.RoleUser)
	stranger := testUser(t, db, models.RoleUser)
	admin := testUser(t, db, models.RoleAdmin)

	order, err := CreateOrder(db, validRequest(), owner)
	require.NoError(t, err)

	_, err = GetOrder(db, order.ID, owner)
	assert.NoError(t, err)

	_, err = GetOrder(db, order.ID, admin)
	assert.NoError(t, err)

	_, err = GetOrder(db, order.ID, stranger)
	assert.Equal(t, httpapi.KindAuthorization, kindOf(t, err))

	_, err = GetOrder(db, order.ID, nil)
	assert.Equal(t, httpapi.KindAuthorization, kindOf(t, err))

	_, err = GetOrder(db, 9999, admin)
	assert.Equal(t, httpapi.KindNotFound, kindOf(t, err))
}

func TestGuestOrderVisibleOnlyToAdmin(t *testing.T) {
	db := setupTestDB(t)
	user := testUser(t, db, models.RoleUser)
	admin := testUser(t, db, models.RoleAdmin)

	order, err := CreateOrder(db, validRequest(), nil)
	require.NoError(t, err)

	_, err = GetOrder(db, order.ID, admin)
	assert.NoError(t, err)

	_, err = GetOrder(db, order.ID, user)
	assert.Equal(t, httpapi.KindAuthorization, kindOf(t, err))
}

func TestSetStatusHappyPath(t *testing.T) {
	db := setupTestDB(t)
	admin := testUser(t, db, models.RoleAdmin)

	order, err := CreateOrder(db, validRequest(), nil)
	require.NoError(t, err)

	for _, next := range []models.OrderStatus{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		order, err = SetStatus(db, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
	}

	reloaded, err := GetOrder(db, order.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, reloaded.Status)
	assert.True(t, reloaded.IsPaid)
	require.NotNil(t, reloaded.PaidAt)
}

func TestSetStatusCancellation(t *testing.T) {
	db := setupTestDB(t)
	admin := testUser(t, db, models.RoleAdmin)

	order, err := CreateOrder(db, validRequest(), nil)
	require.NoError(t, err)

	order, err = SetStatus(db, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.False(t, order.IsPaid)

	reloaded, err := GetOrder(db, order.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, reloaded.Status)

	// Cancelled is terminal.
	_, err = SetStatus(db, order.ID, models.OrderStatusPending)
	assert.Equal(t, httpapi.KindInvalidTransition, kindOf(t, err))
}

func TestSetStatusRejectsIllegalTransitions(t *testing.T) {
	db := setupTestDB(t)

	order, err := CreateOrder(db, validRequest(), nil)
	require.NoError(t, err)

	// pending cannot skip straight to shipped or delivered
	_, err = SetStatus(db, order.ID, models.OrderStatusShipped)
	assert.Equal(t, httpapi.KindInvalidTransition, kindOf(t, err))
	_, err = SetStatus(db, order.ID, models.OrderStatusDelivered)
	assert.Equal(t, httpapi.KindInvalidTransition, kindOf(t, err))

	_, err = SetStatus(db, 404, models.OrderStatusProcessing)
	assert.Equal(t, httpapi.KindNotFound, kindOf(t, err))
}

func TestDeliveredStampsPaidAtOnce(t *testing.T) {
	db := setupTestDB(t)

	order, err := CreateOrder(db, validRequest(), nil)
	require.NoError(t, err)

	order, err = SetStatus(db, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	order, err = SetStatus(db, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	order, err = SetStatus(db, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)

	require.NotNil(t, order.PaidAt)
	firstPaidAt := *order.PaidAt

	// Delivered is terminal; the paid timestamp cannot be rewritten.
	_, err = SetStatus(db, order.ID, models.OrderStatusDelivered)
	assert.Equal(t, httpapi.KindInvalidTransition, kindOf(t, err))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	require.NotNil(t, reloaded.PaidAt)
	assert.WithinDuration(t, firstPaidAt, *reloaded.PaidAt, time.Second)
}
