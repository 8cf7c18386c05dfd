package mockapi

import (
	"testing"

	"bookstore/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyerID(t *testing.T, s *Store) int64 {
	t.Helper()

	u, err := s.CreateUser(model.SignupRequest{
		Name: "Buyer", Email: "buyer@example.com", Password: "Buyer@123",
	})
	require.NoError(t, err)
	return u.UserID
}

func TestStore_SignupDefaultsToBuyerRole(t *testing.T) {
	s := NewStore()

	u, err := s.CreateUser(model.SignupRequest{
		Name: "X", Email: "x@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleBuyer, u.Role)

	//メールは大文字小文字を無視して一意
	_, err = s.CreateUser(model.SignupRequest{
		Name: "Y", Email: "X@EXAMPLE.COM", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStore_AuthenticateChecksPassword(t *testing.T) {
	s := NewStore()

	_, err := s.Authenticate("seller@bookstore.local", "Seller@1")
	require.NoError(t, err)

	_, err = s.Authenticate("seller@bookstore.local", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_AddToCartIncrementsDuplicates(t *testing.T) {
	s := NewStore()
	uid := buyerID(t, s)

	_, err := s.AddToCart(uid, 1, 1)
	require.NoError(t, err)
	item, err := s.AddToCart(uid, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(2), item.Quantity)
	assert.Len(t, s.Cart(uid), 1)
}

func TestStore_UpdateCartItemZeroRemovesLine(t *testing.T) {
	s := NewStore()
	uid := buyerID(t, s)

	_, err := s.AddToCart(uid, 1, 2)
	require.NoError(t, err)

	_, err = s.UpdateCartItem(uid, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, s.Cart(uid))
}

func TestStore_CreateOrderDecrementsStockAndClearsCart(t *testing.T) {
	s := NewStore()
	uid := buyerID(t, s)

	_, err := s.AddToCart(uid, 2, 3)
	require.NoError(t, err)

	order, err := s.CreateOrder(uid, model.OrderRequest{
		TotalAmount: 600,
		Status:      model.OrderStatusPending,
		Items:       []model.OrderItem{{BookID: 2, Quantity: 3, PriceAtPurchase: 200}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	b, err := s.BookByID(2)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Stock)
	assert.Empty(t, s.Cart(uid))
}

func TestStore_CreateOrderRejectsExcessQuantity(t *testing.T) {
	s := NewStore()
	uid := buyerID(t, s)

	_, err := s.CreateOrder(uid, model.OrderRequest{
		Items: []model.OrderItem{{BookID: 2, Quantity: 100}},
	})
	assert.ErrorIs(t, err, ErrOutOfStock)

	//失敗した注文は在庫を減らさない
	b, err := s.BookByID(2)
	require.NoError(t, err)
	assert.Equal(t, 7, b.Stock)
}

func TestStore_CancelRestoresStockAndIsPendingOnly(t *testing.T) {
	s := NewStore()
	uid := buyerID(t, s)

	order, err := s.CreateOrder(uid, model.OrderRequest{
		Items: []model.OrderItem{{BookID: 2, Quantity: 3, PriceAtPurchase: 200}},
	})
	require.NoError(t, err)

	cancelled, err := s.CancelOrder(uid, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	b, err := s.BookByID(2)
	require.NoError(t, err)
	assert.Equal(t, 7, b.Stock)

	_, err = s.CancelOrder(uid, order.OrderID)
	assert.ErrorIs(t, err, ErrNotCancelable)
}

func TestStore_OrdersAreScopedToUser(t *testing.T) {
	s := NewStore()
	uid := buyerID(t, s)
	other, err := s.CreateUser(model.SignupRequest{
		Name: "Other", Email: "other@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	order, err := s.CreateOrder(uid, model.OrderRequest{
		Items: []model.OrderItem{{BookID: 1, Quantity: 1, PriceAtPurchase: 450}},
	})
	require.NoError(t, err)

	_, err = s.OrderByID(other.UserID, order.OrderID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.OrdersByUser(other.UserID))
}

func TestStore_SellerOwnershipEnforced(t *testing.T) {
	s := NewStore()

	_, err := s.UpdateBook("intruder@example.com", 1, model.BookRequest{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)

	err = s.DeleteBook("intruder@example.com", 1, false)
	assert.ErrorIs(t, err, ErrForbidden)

	//管理者は所有チェックを通らない
	require.NoError(t, s.DeleteBook("admin@bookstore.local", 1, true))
}
