package words

// Deck хранит видимость значений для каждой карточки.
// Не потокобезопасен: принадлежит одному экрану
type Deck struct {
	visible map[string]bool
	cards   []Card
	showAll bool
}

// NewDeck создает колоду, все значения скрыты
func NewDeck(cards []Card) *Deck {
	return &Deck{
		cards:   cards,
		visible: make(map[string]bool, len(cards)),
	}
}

// Cards возвращает карточки в исходном порядке
func (d *Deck) Cards() []Card {
	return d.cards
}

// Toggle переключает видимость значений одной карточки и возвращает новое состояние
func (d *Deck) Toggle(id string) bool {
	d.visible[id] = !d.Visible(id)
	return d.visible[id]
}

// ShowAll показывает или скрывает значения у всех карточек.
// Индивидуальные переключения сбрасываются
func (d *Deck) ShowAll(show bool) {
	d.showAll = show
	clear(d.visible)
}

// Visible сообщает, видны ли значения карточки
func (d *Deck) Visible(id string) bool {
	if v, ok := d.visible[id]; ok {
		return v
	}
	return d.showAll
}

// ToggleAll инвертирует общий переключатель и возвращает новое состояние
func (d *Deck) ToggleAll() bool {
	d.ShowAll(!d.showAll)
	return d.showAll
}
