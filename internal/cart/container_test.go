package cart

import (
	"context"
	"errors"
	"testing"

	"bookstore/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: Gateway
// =====================

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FetchCart(ctx context.Context) ([]model.CartItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *MockGateway) AddToCart(ctx context.Context, bookID int64) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockGateway) UpdateCartItem(ctx context.Context, bookID int64, quantity int64) error {
	args := m.Called(ctx, bookID, quantity)
	return args.Error(0)
}

func (m *MockGateway) RemoveFromCart(ctx context.Context, bookID int64) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockGateway) ClearCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fakeSession struct {
	token string
}

func (f *fakeSession) Token() (string, bool) {
	return f.token, f.token != ""
}

func line(bookID int64, price float64, qty int64) model.CartItem {
	return model.CartItem{
		BookID:   bookID,
		Book:     model.Book{BookID: bookID, Title: "t", Price: price},
		Quantity: qty,
	}
}

func TestFetchCart_ReplacesLocalState(t *testing.T) {
	gw := new(MockGateway)
	c := NewContainer(gw, &fakeSession{token: "tok"})
	ctx := context.Background()

	gw.On("FetchCart", ctx).Return([]model.CartItem{line(7, 200, 2)}, nil).Once()

	require.NoError(t, c.FetchCart(ctx))

	assert.Equal(t, int64(2), c.Count())
	assert.Equal(t, 400.0, c.Total())
	assert.Equal(t, "", c.Err())
	assert.False(t, c.Loading())
	gw.AssertExpectations(t)
}

func TestFetchCart_NoSessionIsNoop(t *testing.T) {
	gw := new(MockGateway)
	c := NewContainer(gw, &fakeSession{})

	require.NoError(t, c.FetchCart(context.Background()))

	//リクエストは一切送らない
	gw.AssertNotCalled(t, "FetchCart", mock.Anything)
	assert.Equal(t, int64(0), c.Count())
}

func TestAddToCart_MutateThenRefetch(t *testing.T) {
	gw := new(MockGateway)
	c := NewContainer(gw, &fakeSession{token: "tok"})
	ctx := context.Background()

	gw.On("AddToCart", ctx, int64(7)).Return(nil).Once()
	gw.On("FetchCart", ctx).Return([]model.CartItem{line(7, 200, 1)}, nil).Once()

	require.NoError(t, c.AddToCart(ctx, 7))

	assert.Equal(t, int64(1), c.Count())
	assert.Equal(t, 200.0, c.Total())
	gw.AssertExpectations(t)
}

func TestUpdateQuantity_RefetchRecomputesTotal(t *testing.T) {
	gw := new(MockGateway)
	c := NewContainer(gw, &fakeSession{token: "tok"})
	ctx := context.Background()

	gw.On("FetchCart", ctx).Return([]model.CartItem{line(7, 200, 2)}, nil).Once()
	require.NoError(t, c.FetchCart(ctx))
	assert.Equal(t, 400.0, c.Total())

	gw.On("UpdateCartItem", ctx, int64(7), int64(3)).Return(nil).Once()
	gw.On("FetchCart", ctx).Return([]model.CartItem{line(7, 200, 3)}, nil).Once()

	require.NoError(t, c.UpdateQuantity(ctx, 7, 3))

	assert.Equal(t, int64(3), c.Count())
	assert.Equal(t, 600.0, c.Total())
	gw.AssertExpectations(t)
}

func TestUpdateQuantity_ZeroOrNegativeMeansRemove(t *testing.T) {
	for _, qty := range []int64{0, -1} {
		gw := new(MockGateway)
		c := NewContainer(gw, &fakeSession{token: "tok"})
		ctx := context.Background()

		gw.On("RemoveFromCart", ctx, int64(7)).Return(nil).Once()
		gw.On("FetchCart", ctx).Return([]model.CartItem{}, nil).Once()

		require.NoError(t, c.UpdateQuantity(ctx, 7, qty))

		gw.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything)
		gw.AssertExpectations(t)
	}
}

func TestClearCart_EmptiesLocallyWithoutRefetch(t *testing.T) {
	gw := new(MockGateway)
	c := NewContainer(gw, &fakeSession{token: "tok"})
	ctx := context.Background()

	gw.On("FetchCart", ctx).Return([]model.CartItem{line(1, 100, 1)}, nil).Once()
	require.NoError(t, c.FetchCart(ctx))

	gw.On("ClearCart", ctx).Return(nil).Once()
	require.NoError(t, c.ClearCart(ctx))

	assert.Equal(t, int64(0), c.Count())
	assert.Equal(t, 0.0, c.Total())
	//取り直しは発生しない
	gw.AssertNumberOfCalls(t, "FetchCart", 1)
}

func TestMutatorFailure_KeepsPreviousState(t *testing.T) {
	gw := new(MockGateway)
	c := NewContainer(gw, &fakeSession{token: "tok"})
	ctx := context.Background()

	gw.On("FetchCart", ctx).Return([]model.CartItem{line(7, 200, 2)}, nil).Once()
	require.NoError(t, c.FetchCart(ctx))

	gw.On("AddToCart", ctx, int64(9)).Return(errors.New("boom")).Once()

	err := c.AddToCart(ctx, 9)
	require.Error(t, err)

	//前の状態は残る。ロールバック不要（楽観的な先行更新をしていないので）。
	assert.Equal(t, int64(2), c.Count())
	assert.Equal(t, 400.0, c.Total())
	assert.Equal(t, "Failed to add item to cart", c.Err())
	assert.False(t, c.Loading())
}

func TestRefetchFailure_KeepsPreviousStateAndFlagsError(t *testing.T) {
	gw := new(MockGateway)
	c := NewContainer(gw, &fakeSession{token: "tok"})
	ctx := context.Background()

	gw.On("FetchCart", ctx).Return([]model.CartItem{line(7, 200, 2)}, nil).Once()
	require.NoError(t, c.FetchCart(ctx))

	gw.On("UpdateCartItem", ctx, int64(7), int64(5)).Return(nil).Once()
	gw.On("FetchCart", ctx).Return(nil, errors.New("network")).Once()

	err := c.UpdateQuantity(ctx, 7, 5)
	require.Error(t, err)

	assert.Equal(t, int64(2), c.Count())
	assert.Equal(t, "Failed to update cart item", c.Err())
	assert.False(t, c.Loading())
}

func TestErrorClearedOnNextSuccessfulOperation(t *testing.T) {
	gw := new(MockGateway)
	c := NewContainer(gw, &fakeSession{token: "tok"})
	ctx := context.Background()

	gw.On("AddToCart", ctx, int64(1)).Return(errors.New("boom")).Once()
	_ = c.AddToCart(ctx, 1)
	assert.NotEmpty(t, c.Err())

	gw.On("FetchCart", ctx).Return([]model.CartItem{}, nil).Once()
	require.NoError(t, c.FetchCart(ctx))
	assert.Equal(t, "", c.Err())
}
