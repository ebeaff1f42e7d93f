package payments

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/Mina-Sayed/tocaan-payment-api/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceTest(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewService(gdb, NewResolver()), mock
}

func expectLockedOrder(mock sqlmock.Sqlmock, status string, total string) {
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE "orders"\."id" = \$1(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total"}).
			AddRow(1, 7, status, total))
}

func expectSuccessfulPaymentCount(mock sqlmock.Sqlmock, count int) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func TestService_ProcessSettlesSuccessfulPayment(t *testing.T) {
	setForcedOutcome(t, true)
	service, mock := newServiceTest(t)

	mock.ExpectBegin()
	expectLockedOrder(mock, models.OrderStatusConfirmed, "42.00")
	expectSuccessfulPaymentCount(mock, 0)
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "payments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment, err := service.Process(&models.Order{ID: 1}, ChargeRequest{Method: "credit_card"})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusSuccessful, payment.Status)
	assert.Equal(t, "credit_card", payment.Method)
	assert.Equal(t, "credit_card", payment.Gateway)
	assert.NotEmpty(t, payment.PaymentReference)
	assert.True(t, payment.Amount.Equal(decimal.RequireFromString("42.00")))
	assert.Equal(t, "credit_card", payment.Meta["provider"])
	assert.Equal(t, "42.00", payment.Meta["amount"])
	assert.NotEmpty(t, payment.Meta["transaction_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ProcessRecordsFailedOutcome(t *testing.T) {
	setForcedOutcome(t, true)
	service, mock := newServiceTest(t)

	mock.ExpectBegin()
	expectLockedOrder(mock, models.OrderStatusConfirmed, "42.00")
	expectSuccessfulPaymentCount(mock, 0)
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "payments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment, err := service.Process(&models.Order{ID: 1}, ChargeRequest{
		Method:          "paypal",
		SimulateOutcome: models.PaymentStatusFailed,
	})
	require.NoError(t, err)

	// A failed charge is a terminal state, not an error.
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "paypal", payment.Gateway)
	assert.Equal(t, "paypal", payment.Meta["provider"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ProcessRejectsUnconfirmedOrder(t *testing.T) {
	service, mock := newServiceTest(t)

	mock.ExpectBegin()
	expectLockedOrder(mock, models.OrderStatusPending, "15.00")
	mock.ExpectRollback()

	payment, err := service.Process(&models.Order{ID: 1}, ChargeRequest{Method: "credit_card"})
	assert.Nil(t, payment)
	assert.True(t, utils.IsConflictError(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ProcessRejectsAlreadyPaidOrder(t *testing.T) {
	service, mock := newServiceTest(t)

	mock.ExpectBegin()
	expectLockedOrder(mock, models.OrderStatusConfirmed, "42.00")
	expectSuccessfulPaymentCount(mock, 1)
	mock.ExpectRollback()

	payment, err := service.Process(&models.Order{ID: 1}, ChargeRequest{Method: "credit_card"})
	assert.Nil(t, payment)
	assert.True(t, utils.IsConflictError(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ProcessRollsBackOnUnsupportedMethod(t *testing.T) {
	service, mock := newServiceTest(t)

	mock.ExpectBegin()
	expectLockedOrder(mock, models.OrderStatusConfirmed, "42.00")
	expectSuccessfulPaymentCount(mock, 0)
	mock.ExpectQuery(`INSERT INTO "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	// The pending payment row must not survive a resolution failure.
	payment, err := service.Process(&models.Order{ID: 1}, ChargeRequest{Method: "bank_transfer"})
	assert.Nil(t, payment)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)

	assert.NoError(t, mock.ExpectationsWereMet())
}
