package domain

import (
	"sort"
	"strings"
	"time"
)

// PersonalInfo — сведения о владельце аккаунта.
type PersonalInfo struct {
	User User
	Bio  string
}

// Userpic — одна фотография профиля. Нулевая дата означает удаленную фотографию.
type Userpic struct {
	Date  time.Time
	Image Image
}

// UserpicsInfo — анонс общего числа фотографий профиля.
type UserpicsInfo struct {
	Count int
}

// UserpicsSlice — одна страница фотографий профиля.
type UserpicsSlice struct {
	List []Userpic
}

// Contact — запись телефонной книги.
type Contact struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Date        time.Time
}

// Deleted сообщает, что все идентифицирующие поля контакта пусты.
func (c Contact) Deleted() bool {
	return c.FirstName == "" && c.LastName == "" && c.PhoneNumber == ""
}

// ContactsList — полный список контактов.
type ContactsList struct {
	List []Contact
}

// SortedContactsIndices возвращает индексы контактов в порядке вывода:
// по имени без учета регистра, удаленные записи в конце.
func SortedContactsIndices(data ContactsList) []int {
	indices := make([]int, len(data.List))
	for i := range indices {
		indices[i] = i
	}
	key := func(c Contact) string {
		return strings.ToLower(strings.TrimSpace(c.FirstName + " " + c.LastName))
	}
	sort.SliceStable(indices, func(a, b int) bool {
		ca, cb := data.List[indices[a]], data.List[indices[b]]
		if ca.Deleted() != cb.Deleted() {
			return !ca.Deleted()
		}
		return key(ca) < key(cb)
	})
	return indices
}

// Session — один авторизованный сеанс аккаунта.
type Session struct {
	LastActive         time.Time
	Created            time.Time
	IP                 string
	Country            string
	Region             string
	ApplicationName    string
	ApplicationVersion string
	DeviceModel        string
	Platform           string
	SystemVersion      string
}

// SessionsList — полный список сеансов.
type SessionsList struct {
	List []Session
}

// DialogExport — один диалог вместе с его сообщениями и таблицей пиров,
// материализованный источником данных.
type DialogExport struct {
	Info     DialogInfo
	Messages []Message
	Peers    map[PeerID]Peer
}

// Snapshot — полный материализованный набор данных одного запуска экспорта.
type Snapshot struct {
	Personal  PersonalInfo
	Userpics  []Userpic
	Contacts  ContactsList
	Sessions  SessionsList
	Dialogs   []DialogExport
	LeftChats []DialogExport
}

// DialogSummary — итог записи одного диалога.
type DialogSummary struct {
	Name     string     `json:"name"`
	Type     DialogType `json:"type"`
	Messages int        `json:"messages"`
	Path     string     `json:"path"`
}

// ExportStats — сводка завершенного запуска экспорта.
type ExportStats struct {
	OutputDir    string          `json:"output_dir"`
	MainFilePath string          `json:"main_file_path"`
	Userpics     int             `json:"userpics"`
	Contacts     int             `json:"contacts"`
	Sessions     int             `json:"sessions"`
	Messages     int             `json:"messages"`
	Dialogs      []DialogSummary `json:"dialogs"`
	LeftChats    []DialogSummary `json:"left_chats"`
}
