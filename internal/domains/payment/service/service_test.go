package service_test

import (
	"context"
	"errors"
	"testing"

	"tourism/config"
	"tourism/infras/otel/mocks"
	"tourism/infras/paymongo"
	paymongoMocks "tourism/infras/paymongo/mocks"
	bookingModel "tourism/internal/domains/booking/model"
	bookingDto "tourism/internal/domains/booking/model/dto"
	bookingMocks "tourism/internal/domains/booking/service/mocks"
	paymentMocks "tourism/internal/domains/payment/mocks"
	"tourism/internal/domains/payment/model"
	"tourism/internal/domains/payment/model/dto"
	"tourism/internal/domains/payment/service"
	userMocks "tourism/internal/domains/user/mocks"
	userModel "tourism/internal/domains/user/model"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type deps struct {
	repo     *paymentMocks.MockPayment
	bookings *bookingMocks.MockBooking
	userRepo *userMocks.MockUser
	client   *paymongoMocks.MockClient
}

func setup(t *testing.T) (service.Payment, deps) {
	ctrl := gomock.NewController(t)

	d := deps{
		repo:     paymentMocks.NewMockPayment(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		client:   paymongoMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.BaseURL = "https://api.example"
	cfg.App.FrontendURL = "https://app.example"

	return service.New(d.repo, d.bookings, d.userRepo, d.client, cfg, mocks.NewOtel()), d
}

func customerContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleCustomer)
}

func acceptedBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:          "booking-id",
		Reference:   "BK-0000AAAA",
		CustomerID:  "customer-id",
		TotalAmount: 500000,
		DownPayment: 150000,
		Status:      bookingModel.StatusAccepted,
	}
}

func pendingPayment() model.Payment {
	return model.Payment{
		ID:              "payment-id",
		BookingID:       "booking-id",
		PaymentIntentID: "pi_1",
		Status:          model.StatusPending,
	}
}

func expectStatusUpdate(t *testing.T, d deps, status string) {
	t.Helper()

	d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, status, req[model.FieldStatus])

			return nil
		})
}

func TestPaymentService_Checkout(t *testing.T) {
	req := dto.CheckoutRequest{MethodType: paymongo.MethodGCash}

	t.Run("creates intent and returns checkout url", func(t *testing.T) {
		svc, d := setup(t)
		d.bookings.EXPECT().Payable(gomock.Any(), "booking-id").Return(acceptedBooking(), nil)
		d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		d.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{
			ID: "customer-id", FullName: "Juan Dela Cruz", Email: "juan@example.com",
		}, nil)
		d.client.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params paymongo.CreateIntentParams) (paymongo.PaymentIntent, error) {
				assert.Equal(t, int64(150000), params.Amount)
				assert.Equal(t, paymongo.MethodGCash, params.MethodType)

				return paymongo.PaymentIntent{ID: "pi_1", ClientKey: "pi_1_key", Status: paymongo.IntentAwaitingPaymentMethod}, nil
			})
		d.client.EXPECT().CreatePaymentMethod(gomock.Any(), paymongo.MethodGCash, paymongo.Billing{
			Name: "Juan Dela Cruz", Email: "juan@example.com",
		}).Return(paymongo.PaymentMethod{ID: "pm_1"}, nil)
		d.client.EXPECT().AttachPaymentIntent(gomock.Any(), "pi_1", "pm_1", "pi_1_key",
			"https://api.example/v1/payments/return?booking_id=booking-id").
			Return(paymongo.PaymentIntent{
				ID:         "pi_1",
				Status:     paymongo.IntentAwaitingNextAction,
				NextAction: &paymongo.NextAction{Type: "redirect", Redirect: &paymongo.Redirect{URL: "https://pay.example/gcash"}},
			}, nil)
		d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, payment model.Payment) error {
			assert.Equal(t, model.StatusPending, payment.Status)
			assert.Equal(t, "pm_1", payment.PaymentMethodID)

			return nil
		})

		res, err := svc.Checkout(customerContext(), "booking-id", req)

		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/gcash", res.CheckoutURL)
		assert.Equal(t, "pi_1", res.PaymentIntentID)
		assert.InDelta(t, 1500.0, res.AmountInPeso, 0.001)
	})

	t.Run("already paid", func(t *testing.T) {
		svc, d := setup(t)
		d.bookings.EXPECT().Payable(gomock.Any(), "booking-id").Return(acceptedBooking(), nil)
		d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Checkout(customerContext(), "booking-id", req)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("booking not payable", func(t *testing.T) {
		svc, d := setup(t)
		d.bookings.EXPECT().Payable(gomock.Any(), "booking-id").
			Return(bookingModel.Booking{}, failure.UnprocessableEntity("booking has expired"))

		_, err := svc.Checkout(customerContext(), "booking-id", req)
		assert.Equal(t, 422, failure.GetCode(err))
	})

	t.Run("gateway rejects", func(t *testing.T) {
		svc, d := setup(t)
		d.bookings.EXPECT().Payable(gomock.Any(), "booking-id").Return(acceptedBooking(), nil)
		d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		d.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "customer-id"}, nil)
		d.client.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).
			Return(paymongo.PaymentIntent{}, &paymongo.Error{StatusCode: 400, Detail: "amount is too low"})

		_, err := svc.Checkout(customerContext(), "booking-id", req)
		assert.Equal(t, 502, failure.GetCode(err))
	})
}

func TestPaymentService_Return(t *testing.T) {
	t.Run("succeeded intent settles payment and booking", func(t *testing.T) {
		svc, d := setup(t)
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Payment{pendingPayment()}, nil)
		d.client.EXPECT().RetrievePaymentIntent(gomock.Any(), "pi_1").
			Return(paymongo.PaymentIntent{ID: "pi_1", Status: paymongo.IntentSucceeded}, nil)
		expectStatusUpdate(t, d, model.StatusPaid)
		d.bookings.EXPECT().MarkPaid(gomock.Any(), "booking-id").Return(nil)

		redirect, err := svc.Return(context.Background(), "booking-id", constant.Empty)

		require.NoError(t, err)
		assert.Equal(t, "https://app.example/bookings/booking-id?payment=paid", redirect)
	})

	t.Run("abandoned intent fails payment", func(t *testing.T) {
		svc, d := setup(t)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPayment(), nil)
		d.client.EXPECT().RetrievePaymentIntent(gomock.Any(), "pi_1").
			Return(paymongo.PaymentIntent{ID: "pi_1", Status: paymongo.IntentAwaitingPaymentMethod}, nil)
		expectStatusUpdate(t, d, model.StatusFailed)

		redirect, err := svc.Return(context.Background(), "booking-id", "pi_1")

		require.NoError(t, err)
		assert.Equal(t, "https://app.example/bookings/booking-id?payment=failed", redirect)
	})

	t.Run("processing intent is left alone", func(t *testing.T) {
		svc, d := setup(t)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPayment(), nil)
		d.client.EXPECT().RetrievePaymentIntent(gomock.Any(), "pi_1").
			Return(paymongo.PaymentIntent{ID: "pi_1", Status: paymongo.IntentProcessing}, nil)

		redirect, err := svc.Return(context.Background(), "booking-id", "pi_1")

		require.NoError(t, err)
		assert.Equal(t, "https://app.example/bookings/booking-id?payment=pending", redirect)
	})

	t.Run("unknown payment", func(t *testing.T) {
		svc, d := setup(t)
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		redirect, err := svc.Return(context.Background(), "booking-id", constant.Empty)

		require.NoError(t, err)
		assert.Equal(t, "https://app.example/bookings/booking-id?payment=unknown", redirect)
	})
}

func TestPaymentService_Webhook(t *testing.T) {
	paidEvent := []byte(`{"data":{"id":"evt_1","attributes":{"type":"payment.paid","livemode":false,
		"data":{"id":"pay_1","attributes":{"status":"paid","payment_intent_id":"pi_1"}}}}}`)

	t.Run("paid event settles", func(t *testing.T) {
		svc, d := setup(t)
		d.client.EXPECT().VerifyWebhookSignature("sig", paidEvent, false).Return(nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPayment(), nil)
		expectStatusUpdate(t, d, model.StatusPaid)
		d.bookings.EXPECT().MarkPaid(gomock.Any(), "booking-id").Return(nil)

		assert.NoError(t, svc.Webhook(context.Background(), "sig", paidEvent))
	})

	t.Run("redelivered paid event only re-checks the booking", func(t *testing.T) {
		svc, d := setup(t)
		paid := pendingPayment()
		paid.Status = model.StatusPaid
		d.client.EXPECT().VerifyWebhookSignature("sig", paidEvent, false).Return(nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paid, nil)
		d.bookings.EXPECT().MarkPaid(gomock.Any(), "booking-id").Return(nil)

		assert.NoError(t, svc.Webhook(context.Background(), "sig", paidEvent))
	})

	t.Run("booking raced by the return redirect", func(t *testing.T) {
		svc, d := setup(t)
		d.client.EXPECT().VerifyWebhookSignature("sig", paidEvent, false).Return(nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingPayment(), nil)
		expectStatusUpdate(t, d, model.StatusPaid)
		gomock.InOrder(
			d.bookings.EXPECT().MarkPaid(gomock.Any(), "booking-id").Return(failure.Conflict("changed")),
			d.bookings.EXPECT().MarkPaid(gomock.Any(), "booking-id").Return(nil),
		)

		assert.NoError(t, svc.Webhook(context.Background(), "sig", paidEvent))
	})

	t.Run("bad signature", func(t *testing.T) {
		svc, d := setup(t)
		d.client.EXPECT().VerifyWebhookSignature("sig", paidEvent, false).Return(paymongo.ErrInvalidSignature)

		err := svc.Webhook(context.Background(), "sig", paidEvent)
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("unrelated event", func(t *testing.T) {
		svc, d := setup(t)
		body := []byte(`{"data":{"id":"evt_2","attributes":{"type":"source.chargeable","data":{"id":"src_1"}}}}`)
		d.client.EXPECT().VerifyWebhookSignature("sig", body, false).Return(nil)

		assert.NoError(t, svc.Webhook(context.Background(), "sig", body))
	})

	t.Run("malformed body", func(t *testing.T) {
		svc, _ := setup(t)

		err := svc.Webhook(context.Background(), "sig", []byte("not json"))
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestPaymentService_ListByBooking(t *testing.T) {
	t.Run("visible booking", func(t *testing.T) {
		svc, d := setup(t)
		d.bookings.EXPECT().Get(gomock.Any(), "booking-id").Return(bookingDto.BookingResponse{ID: "booking-id"}, nil)
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Payment{pendingPayment()}, nil)

		res, err := svc.ListByBooking(customerContext(), "booking-id")

		require.NoError(t, err)
		assert.Len(t, res.Payments, 1)
	})

	t.Run("hidden booking", func(t *testing.T) {
		svc, d := setup(t)
		d.bookings.EXPECT().Get(gomock.Any(), "booking-id").Return(bookingDto.BookingResponse{}, failure.ResourceRestrictedError)

		_, err := svc.ListByBooking(customerContext(), "booking-id")
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		svc, d := setup(t)
		d.bookings.EXPECT().Get(gomock.Any(), "booking-id").Return(bookingDto.BookingResponse{ID: "booking-id"}, nil)
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.ListByBooking(customerContext(), "booking-id")
		assert.Error(t, err)
	})
}
