package checkout

import (
	"context"
	"errors"
	"strconv"

	"bookstore/internal/domain/model"
	"bookstore/internal/gateway"

	"github.com/google/uuid"
)

// 4状態の直線的なウィザード。前進はスキップ不可。
type Step int

const (
	StepAddress Step = iota + 1
	StepPayment
	StepReview
	StepSuccess
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCOD  PaymentMethod = "cod"
)

// カード入力。存在チェックのみ（決済自体はモック）。
type CardDetails struct {
	CardNumber     string
	ExpiryDate     string
	CVV            string
	CardholderName string
}

var (
	ErrNoAddress       = errors.New("address not selected")
	ErrNoPayment       = errors.New("payment method not selected")
	ErrCardIncomplete  = errors.New("card details incomplete")
	ErrWrongStep       = errors.New("operation not allowed in current step")
	ErrAlreadyComplete = errors.New("order already placed")
)

// OrderPlacerは注文の送信だけを約束する
type OrderPlacer interface {
	CreateOrder(ctx context.Context, email string, req model.OrderRequest) (model.Order, error)
}

// Cartはウィザードが読むカート側の約束
type Cart interface {
	Items() []model.CartItem
	Total() float64
	ClearCart(ctx context.Context) error
}

// Subjectは注文先ユーザー（メール）の取得
type Subject interface {
	Subject() string
}

type Wizard struct {
	gw   OrderPlacer
	cart Cart
	sess Subject

	Addresses *AddressBook

	step    Step
	payment PaymentMethod
	card    CardDetails

	orderID     string
	orderStatus model.OrderStatus
	placed      bool
	errMsg      string
}

// DI
func NewWizard(gw OrderPlacer, cart Cart, sess Subject) *Wizard {
	return &Wizard{
		gw:        gw,
		cart:      cart,
		sess:      sess,
		Addresses: NewAddressBook(),
		step:      StepAddress,
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Err() string { return w.errMsg }

// OrderIDは成功後にだけ意味を持つ
func (w *Wizard) OrderID() string { return w.orderID }

func (w *Wizard) OrderStatus() model.OrderStatus { return w.orderStatus }

// SelectPaymentは支払い方法の選択。cardなら後でカード入力が必須になる。
func (w *Wizard) SelectPayment(method PaymentMethod, card CardDetails) {
	w.payment = method
	w.card = card
}

// Nextは1段だけ前へ。Review→Successの前進はSubmit経由のみ。
func (w *Wizard) Next() error {
	switch w.step {
	case StepAddress:
		if _, ok := w.Addresses.Selected(); !ok {
			w.errMsg = "Please select a delivery address"
			return ErrNoAddress
		}
		w.step = StepPayment

	case StepPayment:
		if w.payment != PaymentCard && w.payment != PaymentCOD {
			w.errMsg = "Please select a payment method"
			return ErrNoPayment
		}
		if w.payment == PaymentCard {
			if w.card.CardNumber == "" || w.card.ExpiryDate == "" || w.card.CVV == "" || w.card.CardholderName == "" {
				w.errMsg = "Please fill all card details"
				return ErrCardIncomplete
			}
		}
		w.step = StepReview

	default:
		return ErrWrongStep
	}

	w.errMsg = ""
	return nil
}

// Backは2→1と3→2だけ
func (w *Wizard) Back() error {
	switch w.step {
	case StepPayment:
		w.step = StepAddress
	case StepReview:
		w.step = StepPayment
	default:
		return ErrWrongStep
	}

	w.errMsg = ""
	return nil
}

// ShouldRedirectは成功前にカートが空になったらtrue。
// 別タブでの操作などで空カートのまま進ませないため。
func (w *Wizard) ShouldRedirect() bool {
	if w.placed || w.step == StepSuccess {
		return false
	}
	return len(w.cart.Items()) == 0
}

// SubmitはReviewからだけ呼べる。
// 成功で4へ進みカートを空にする。失敗時は3のままメッセージを出す。
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step != StepReview {
		return ErrWrongStep
	}
	if w.placed {
		return ErrAlreadyComplete
	}

	addr, ok := w.Addresses.Selected()
	if !ok {
		w.errMsg = "Please select a delivery address"
		return ErrNoAddress
	}

	items := w.cart.Items()
	if len(items) == 0 {
		w.errMsg = "Your cart is empty"
		return ErrWrongStep
	}

	//単価は送信時点の値を確定させる
	lines := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, model.OrderItem{
			BookID:          it.BookID,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.Book.Price,
		})
	}

	draft := model.OrderRequest{
		TotalAmount:     w.cart.Total(),
		ShippingAddress: addr.FormatShipping(),
		Status:          model.OrderStatusPending,
		Items:           lines,
	}

	order, err := w.gw.CreateOrder(ctx, w.sess.Subject(), draft)
	if err != nil {
		w.errMsg = submitErrorMessage(err)
		return err
	}

	//レスポンスにIDが無ければ合成する
	if order.OrderID > 0 {
		w.orderID = "ORD" + strconv.FormatInt(order.OrderID, 10)
	} else {
		w.orderID = "ORD-" + uuid.NewString()
	}

	w.orderStatus = model.OrderStatusPending
	w.placed = true
	w.step = StepSuccess
	w.errMsg = ""

	//成功後にカートを空にする。ここでの失敗は注文を巻き戻さない。
	_ = w.cart.ClearCart(ctx)

	return nil
}

func submitErrorMessage(err error) string {
	if ae, ok := gateway.AsAPIError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return "An error occurred while placing the order"
}
