package models

// Word слово в контексте конкретного предложения.
// Одно слово может встречаться у пользователя в нескольких предложениях
type Word struct {
	Word       string   `json:"word"`
	Meanings   []string `json:"meanings"`
	WordID     int64    `json:"word_id"`
	SentenceID int64    `json:"sentence_id"`
}
