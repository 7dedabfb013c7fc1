package models

import "time"

// Card is one vocabulary item of the catalog.
type Card struct {
	ID                 int64     `json:"id"`
	FrontImageURL      string    `json:"front_image_url"`
	BackImageURL       string    `json:"back_image_url"`
	Hanzi              string    `json:"hanzi"`
	Pinyin             string    `json:"pinyin"`
	Translation        string    `json:"translation"`
	Example            string    `json:"example"`
	ExampleTranslation string    `json:"example_translation"`
	TestSentence       string    `json:"test_sentence"`
	CreatedAt          time.Time `json:"created_at"`
}
