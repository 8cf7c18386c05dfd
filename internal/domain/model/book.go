package model

type Book struct {
	BookID        int64     `json:"bookId"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Stock         int       `json:"stock"`
	Category      *Category `json:"category,omitempty"`
	CoverImageURL string    `json:"coverImageUrl"`
}

// 出品者がPOST/PUTで送る内容
type BookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	CategoryID    int64   `json:"categoryId"`
	CoverImageURL string  `json:"coverImageUrl"`
}
