package domain

import "strings"

// PeerKind различает пространства идентификаторов пользователей и чатов.
// Числовые идентификаторы этих пространств могут пересекаться, поэтому
// пир всегда адресуется составным ключом PeerID, а не голым числом.
type PeerKind int

const (
	PeerKindUser PeerKind = iota
	PeerKindChat
)

// PeerID — составной ключ пира: вид плюс числовой идентификатор.
type PeerID struct {
	Kind PeerKind
	ID   int64
}

// Zero сообщает, что идентификатор не задан.
func (id PeerID) Zero() bool {
	return id.ID == 0
}

// UserPeerID строит ключ пира для пользователя.
func UserPeerID(id int64) PeerID {
	return PeerID{Kind: PeerKindUser, ID: id}
}

// ChatPeerID строит ключ пира для группы или канала.
func ChatPeerID(id int64) PeerID {
	return PeerID{Kind: PeerKindChat, ID: id}
}

// User представляет пользователя Telegram в данных экспорта.
type User struct {
	ID          int64
	FirstName   string
	LastName    string
	PhoneNumber string
	Username    string
	IsBot       bool
}

// Name возвращает отображаемое имя пользователя.
// Пустая строка означает удаленный или неизвестный аккаунт.
func (u User) Name() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// Chat представляет группу, супергруппу или канал.
type Chat struct {
	ID        int64
	Title     string
	Username  string
	Broadcast bool
}

// Peer — размеченное объединение {User, Chat}. Ровно одно из полей
// заполнено; пустой Peer допустим и ведет себя как неизвестный пользователь.
type Peer struct {
	user *User
	chat *Chat
}

// UserPeer оборачивает пользователя в Peer.
func UserPeer(u User) Peer {
	return Peer{user: &u}
}

// ChatPeer оборачивает группу или канал в Peer.
func ChatPeer(c Chat) Peer {
	return Peer{chat: &c}
}

// User возвращает пользователя или nil, если пир — не пользователь.
func (p Peer) User() *User {
	return p.user
}

// Chat возвращает группу/канал или nil, если пир — не группа.
func (p Peer) Chat() *Chat {
	return p.chat
}

// Name возвращает отображаемое имя пира; пустая строка — имя неизвестно.
func (p Peer) Name() string {
	switch {
	case p.user != nil:
		return p.user.Name()
	case p.chat != nil:
		return p.chat.Title
	}
	return ""
}

// ID возвращает составной ключ пира.
func (p Peer) ID() PeerID {
	switch {
	case p.user != nil:
		return UserPeerID(p.user.ID)
	case p.chat != nil:
		return ChatPeerID(p.chat.ID)
	}
	return PeerID{}
}
