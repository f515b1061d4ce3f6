package api

// Meaning одно значение слова
type Meaning struct {
	Meaning string `json:"meaning"`
}

// Word слово из словаря пользователя вместе с предложением, в котором оно встретилось
type Word struct {
	Word       string    `json:"word"`
	Meanings   []Meaning `json:"meanings"`
	WordID     int64     `json:"wordId"`
	SentenceID int64     `json:"sentenceId"`
}
