package models

type StickerBook struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	CoverURL string `json:"cover_url"`
}

type Sticker struct {
	ID         int64  `json:"id"`
	BookID     int64  `json:"book_id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
	OrderIndex int    `json:"order_index"`
	Unlocked   bool   `json:"unlocked"`
}
