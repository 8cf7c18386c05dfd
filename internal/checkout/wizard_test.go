package checkout

import (
	"context"
	"net/http"
	"testing"

	"bookstore/internal/domain/model"
	"bookstore/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: OrderPlacer
// =====================

type MockPlacer struct {
	mock.Mock
}

func (m *MockPlacer) CreateOrder(ctx context.Context, email string, req model.OrderRequest) (model.Order, error) {
	args := m.Called(ctx, email, req)
	order, _ := args.Get(0).(model.Order)
	return order, args.Error(1)
}

// カートのスタブ
type stubCart struct {
	items   []model.CartItem
	cleared bool
}

func (s *stubCart) Items() []model.CartItem { return s.items }

func (s *stubCart) Total() float64 { return model.CartTotal(s.items) }

func (s *stubCart) ClearCart(ctx context.Context) error {
	s.items = nil
	s.cleared = true
	return nil
}

type stubSubject struct{ email string }

func (s *stubSubject) Subject() string { return s.email }

func cartWith(bookID int64, price float64, qty int64) *stubCart {
	return &stubCart{items: []model.CartItem{{
		BookID:   bookID,
		Book:     model.Book{BookID: bookID, Price: price},
		Quantity: qty,
	}}}
}

func newTestWizard(c *stubCart) (*Wizard, *MockPlacer) {
	placer := new(MockPlacer)
	return NewWizard(placer, c, &stubSubject{email: "buyer@example.com"}), placer
}

func TestWizard_StartsAtAddressStep(t *testing.T) {
	w, _ := newTestWizard(cartWith(7, 200, 2))
	assert.Equal(t, StepAddress, w.Step())
}

func TestWizard_CannotAdvanceWithoutSelectedAddress(t *testing.T) {
	w, _ := newTestWizard(cartWith(7, 200, 2))
	w.Addresses = &AddressBook{} //住所なし

	err := w.Next()
	assert.ErrorIs(t, err, ErrNoAddress)
	assert.Equal(t, StepAddress, w.Step())
	assert.NotEmpty(t, w.Err())
}

func TestWizard_DefaultAddressIsPreselected(t *testing.T) {
	w, _ := newTestWizard(cartWith(7, 200, 2))

	addr, ok := w.Addresses.Selected()
	require.True(t, ok)
	assert.True(t, addr.IsDefault)

	require.NoError(t, w.Next())
	assert.Equal(t, StepPayment, w.Step())
}

func TestWizard_PaymentGuards(t *testing.T) {
	w, _ := newTestWizard(cartWith(7, 200, 2))
	require.NoError(t, w.Next())

	//未選択
	err := w.Next()
	assert.ErrorIs(t, err, ErrNoPayment)
	assert.Equal(t, StepPayment, w.Step())

	//カードは入力必須（存在チェックのみ）
	w.SelectPayment(PaymentCard, CardDetails{CardNumber: "4111"})
	err = w.Next()
	assert.ErrorIs(t, err, ErrCardIncomplete)
	assert.Equal(t, StepPayment, w.Step())

	w.SelectPayment(PaymentCard, CardDetails{
		CardNumber: "4111111111111111", ExpiryDate: "12/30", CVV: "123", CardholderName: "Buyer",
	})
	require.NoError(t, w.Next())
	assert.Equal(t, StepReview, w.Step())
}

func TestWizard_CODNeedsNoCardDetails(t *testing.T) {
	w, _ := newTestWizard(cartWith(7, 200, 2))
	require.NoError(t, w.Next())

	w.SelectPayment(PaymentCOD, CardDetails{})
	require.NoError(t, w.Next())
	assert.Equal(t, StepReview, w.Step())
}

func TestWizard_BackTransitions(t *testing.T) {
	w, _ := newTestWizard(cartWith(7, 200, 2))
	require.NoError(t, w.Next())
	w.SelectPayment(PaymentCOD, CardDetails{})
	require.NoError(t, w.Next())

	require.NoError(t, w.Back()) //3→2
	assert.Equal(t, StepPayment, w.Step())
	require.NoError(t, w.Back()) //2→1
	assert.Equal(t, StepAddress, w.Step())

	//1からは戻れない
	assert.ErrorIs(t, w.Back(), ErrWrongStep)
}

func TestWizard_NoForwardSkipFromReview(t *testing.T) {
	w, _ := newTestWizard(cartWith(7, 200, 2))
	require.NoError(t, w.Next())
	w.SelectPayment(PaymentCOD, CardDetails{})
	require.NoError(t, w.Next())

	//Successへの前進はSubmit経由のみ
	assert.ErrorIs(t, w.Next(), ErrWrongStep)
	assert.Equal(t, StepReview, w.Step())
}

func TestWizard_SubmitOnlyFromReview(t *testing.T) {
	w, _ := newTestWizard(cartWith(7, 200, 2))
	assert.ErrorIs(t, w.Submit(context.Background()), ErrWrongStep)
}

func TestWizard_SubmitSuccess(t *testing.T) {
	c := cartWith(7, 200, 2)
	w, placer := newTestWizard(c)
	ctx := context.Background()

	require.NoError(t, w.Next())
	w.SelectPayment(PaymentCOD, CardDetails{})
	require.NoError(t, w.Next())

	placer.On("CreateOrder", ctx, "buyer@example.com", mock.MatchedBy(func(req model.OrderRequest) bool {
		//単価は送信時点で確定している
		return req.TotalAmount == 400 &&
			req.Status == model.OrderStatusPending &&
			len(req.Items) == 1 &&
			req.Items[0].BookID == 7 &&
			req.Items[0].Quantity == 2 &&
			req.Items[0].PriceAtPurchase == 200
	})).Return(model.Order{OrderID: 42, Status: model.OrderStatusPending}, nil).Once()

	require.NoError(t, w.Submit(ctx))

	assert.Equal(t, StepSuccess, w.Step())
	assert.Equal(t, "ORD42", w.OrderID())
	assert.Equal(t, model.OrderStatusPending, w.OrderStatus())
	assert.True(t, c.cleared)
	placer.AssertExpectations(t)
}

func TestWizard_SubmitSynthesizesOrderIDWhenAbsent(t *testing.T) {
	c := cartWith(7, 200, 1)
	w, placer := newTestWizard(c)
	ctx := context.Background()

	require.NoError(t, w.Next())
	w.SelectPayment(PaymentCOD, CardDetails{})
	require.NoError(t, w.Next())

	placer.On("CreateOrder", ctx, mock.Anything, mock.Anything).
		Return(model.Order{}, nil).Once()

	require.NoError(t, w.Submit(ctx))

	assert.Equal(t, StepSuccess, w.Step())
	assert.Contains(t, w.OrderID(), "ORD-")
}

func TestWizard_SubmitFailureStaysInReview(t *testing.T) {
	c := cartWith(7, 200, 2)
	w, placer := newTestWizard(c)
	ctx := context.Background()

	require.NoError(t, w.Next())
	w.SelectPayment(PaymentCOD, CardDetails{})
	require.NoError(t, w.Next())

	placer.On("CreateOrder", ctx, mock.Anything, mock.Anything).
		Return(model.Order{}, gateway.NewAPIError(http.StatusBadRequest, "stock exceeded")).Once()

	err := w.Submit(ctx)
	require.Error(t, err)

	assert.Equal(t, StepReview, w.Step())
	assert.Equal(t, "stock exceeded", w.Err())
	assert.False(t, c.cleared)

	//2回目の成功で初めて完了する
	placer.On("CreateOrder", ctx, mock.Anything, mock.Anything).
		Return(model.Order{OrderID: 1}, nil).Once()
	require.NoError(t, w.Submit(ctx))
	assert.Equal(t, StepSuccess, w.Step())

	//完了後の再送信は拒否
	assert.ErrorIs(t, w.Submit(ctx), ErrWrongStep)
}

func TestWizard_ShouldRedirectOnEmptyCart(t *testing.T) {
	empty := &stubCart{}
	w, _ := newTestWizard(empty)

	assert.True(t, w.ShouldRedirect())

	//成功後は空でもリダイレクトしない
	c := cartWith(7, 200, 1)
	w2, placer := newTestWizard(c)
	require.NoError(t, w2.Next())
	w2.SelectPayment(PaymentCOD, CardDetails{})
	require.NoError(t, w2.Next())
	placer.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).
		Return(model.Order{OrderID: 5}, nil).Once()
	require.NoError(t, w2.Submit(context.Background()))

	assert.False(t, w2.ShouldRedirect())
	assert.Empty(t, c.Items())
}

func TestAddressBook_AddValidatesRequiredFields(t *testing.T) {
	b := NewAddressBook()

	_, err := b.Add(model.Address{FullName: "X"})
	assert.Error(t, err)

	addr, err := b.Add(model.Address{
		FullName:     "Buyer Two",
		PhoneNumber:  "1234567890",
		AddressLine1: "456 Side Street",
		City:         "Pune",
		State:        "Maharashtra",
		Pincode:      "411001",
	})
	require.NoError(t, err)

	//追加した住所が選択される
	sel, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, addr.ID, sel.ID)
	assert.Len(t, b.List(), 2)
}

func TestAddressBook_SelectUnknownIDKeepsSelection(t *testing.T) {
	b := NewAddressBook()

	assert.False(t, b.Select(999))
	sel, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(1), sel.ID)
}
