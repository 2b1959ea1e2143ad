package domain

import "time"

// Message — одно сообщение в диалоге. Action и Media по исходным данным
// не взаимоисключающие, хотя обычно заполнено не более одного из них.
type Message struct {
	ID     int64
	Date   time.Time
	Edited time.Time

	// FromID — идентификатор отправителя (пользователя), 0 — неизвестен.
	FromID int64
	// Signature — подпись автора в каналах.
	Signature string
	// ForwardedFromID — пир-источник пересылки; нулевой PeerID — нет пересылки.
	ForwardedFromID PeerID
	// ReplyToMsgID — идентификатор сообщения, на которое дан ответ.
	ReplyToMsgID int64
	// ViaBotID — идентификатор inline-бота, через которого отправлено сообщение.
	ViaBotID int64

	Text   string
	Action Action
	Media  Media
}

// MessagesSlice — одна страница сообщений, переданная источником данных,
// вместе с таблицей пиров для разрешения имен.
type MessagesSlice struct {
	List  []Message
	Peers map[PeerID]Peer
}
