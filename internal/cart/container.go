package cart

import (
	"context"
	"sync"

	"bookstore/internal/domain/model"
)

// Gatewayはカート操作に必要なバックエンド呼び出しの約束
type Gateway interface {
	FetchCart(ctx context.Context) ([]model.CartItem, error)
	AddToCart(ctx context.Context, bookID int64) error
	UpdateCartItem(ctx context.Context, bookID int64, quantity int64) error
	RemoveFromCart(ctx context.Context, bookID int64) error
	ClearCart(ctx context.Context) error
}

// Sessionはトークン有無の確認だけに使う
type Session interface {
	Token() (string, bool)
}

// 画面に出す固定メッセージ
const (
	msgFetchFailed  = "Failed to fetch cart"
	msgAddFailed    = "Failed to add item to cart"
	msgUpdateFailed = "Failed to update cart item"
	msgRemoveFailed = "Failed to remove item from cart"
	msgClearFailed  = "Failed to clear cart"
)

// Containerは現在のカートの唯一のメモリ上の真実。
// 変更は必ず「サーバーへ依頼→成功したら全件取り直し」の順で行い、
// ローカル状態を予測的にマージしない。
type Container struct {
	gw   Gateway
	sess Session

	// 変更後に取り直すか。契約として明示するためのフラグ。
	refreshAfterMutation bool

	mu      sync.Mutex
	items   []model.CartItem
	loading bool
	errMsg  string
}

// DI
func NewContainer(gw Gateway, sess Session) *Container {
	return &Container{
		gw:                   gw,
		sess:                 sess,
		refreshAfterMutation: true,
	}
}

// FetchCartはサーバーの現在の状態でローカルを置き換える。
// トークンが無ければ何もしない。
func (c *Container) FetchCart(ctx context.Context) error {
	if _, ok := c.sess.Token(); !ok {
		return nil
	}

	c.begin()
	defer c.end()

	return c.refresh(ctx)
}

// AddToCartは数量1で追加を依頼し、成功したら取り直す。
func (c *Container) AddToCart(ctx context.Context, bookID int64) error {
	c.begin()
	defer c.end()

	if err := c.gw.AddToCart(ctx, bookID); err != nil {
		c.setError(msgAddFailed)
		return err
	}

	if c.refreshAfterMutation {
		return c.refreshAs(ctx, msgAddFailed)
	}
	return nil
}

// UpdateQuantityは0以下なら削除と同じ扱い。
func (c *Container) UpdateQuantity(ctx context.Context, bookID int64, quantity int64) error {
	if quantity <= 0 {
		return c.RemoveFromCart(ctx, bookID)
	}

	c.begin()
	defer c.end()

	if err := c.gw.UpdateCartItem(ctx, bookID, quantity); err != nil {
		c.setError(msgUpdateFailed)
		return err
	}

	if c.refreshAfterMutation {
		return c.refreshAs(ctx, msgUpdateFailed)
	}
	return nil
}

func (c *Container) RemoveFromCart(ctx context.Context, bookID int64) error {
	c.begin()
	defer c.end()

	if err := c.gw.RemoveFromCart(ctx, bookID); err != nil {
		c.setError(msgRemoveFailed)
		return err
	}

	if c.refreshAfterMutation {
		return c.refreshAs(ctx, msgRemoveFailed)
	}
	return nil
}

// ClearCartだけは取り直さず、成功したらローカルを直接空にする。
func (c *Container) ClearCart(ctx context.Context) error {
	c.begin()
	defer c.end()

	if err := c.gw.ClearCart(ctx); err != nil {
		c.setError(msgClearFailed)
		return err
	}

	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	return nil
}

func (c *Container) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Countは数量の合計。毎回導出する。
func (c *Container) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.CartCount(c.items)
}

// Totalは単価×数量の合計。独立して保存しない。
func (c *Container) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.CartTotal(c.items)
}

func (c *Container) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Errは直近の操作のエラーメッセージ（成功で消える）
func (c *Container) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Container) begin() {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()
}

func (c *Container) end() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

func (c *Container) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *Container) refresh(ctx context.Context) error {
	return c.refreshAs(ctx, msgFetchFailed)
}

// refreshAsはサーバー状態で全置き換え。失敗時は前の状態を残す。
func (c *Container) refreshAs(ctx context.Context, failMsg string) error {
	items, err := c.gw.FetchCart(ctx)
	if err != nil {
		c.setError(failMsg)
		return err
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}
