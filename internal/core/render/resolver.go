// Package render превращает доменные сущности экспорта в текстовые записи.
package render

import "telegram-history-export/internal/domain"

// Плейсхолдеры двух разных классов: сбой разрешения идентификатора
// против сущности-надгробия с пустыми полями. Не смешивать.
const (
	unknownPeerLabel = "(unknown peer)"
	unknownUserLabel = "(unknown user)"
)

// Resolver разрешает идентификаторы пиров по таблице одного запуска экспорта.
// Таблица неизменяема на время запуска.
type Resolver struct {
	peers map[domain.PeerID]domain.Peer
}

// NewResolver строит резолвер поверх таблицы пиров; nil-таблица допустима.
func NewResolver(peers map[domain.PeerID]domain.Peer) Resolver {
	return Resolver{peers: peers}
}

// Peer возвращает пира по ключу; отсутствующий ключ дает пустого пира.
func (r Resolver) Peer(id domain.PeerID) domain.Peer {
	if p, ok := r.peers[id]; ok {
		return p
	}
	return domain.Peer{}
}

// User возвращает пользователя по идентификатору; отсутствующий или
// не-пользовательский пир дает пустого пользователя.
func (r Resolver) User(id int64) domain.User {
	if u := r.Peer(domain.UserPeerID(id)).User(); u != nil {
		return *u
	}
	return domain.User{}
}

// PeerName возвращает имя пира или плейсхолдер "(unknown peer)".
func (r Resolver) PeerName(id domain.PeerID) string {
	if name := r.Peer(id).Name(); name != "" {
		return name
	}
	return unknownPeerLabel
}

// UserName возвращает имя пользователя или плейсхолдер "(unknown user)".
func (r Resolver) UserName(id int64) string {
	if name := r.User(id).Name(); name != "" {
		return name
	}
	return unknownUserLabel
}
