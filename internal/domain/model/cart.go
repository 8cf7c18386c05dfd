package model

// カートの明細
// 同一bookIdにつき1行。quantityが残っている間は必ず正。
type CartItem struct {
	BookID   int64 `json:"bookId"`
	Book     Book  `json:"book"`
	Quantity int64 `json:"quantity"`
}

// カートへの追加リクエスト
type AddCartRequest struct {
	BookID   int64 `json:"bookId"`
	Quantity int64 `json:"quantity"`
}

// CartCountは数量の合計
func CartCount(items []CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// CartTotalは単価×数量の合計。保存せず毎回導出する。
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Book.Price * float64(it.Quantity)
	}
	return total
}
