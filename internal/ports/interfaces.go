package ports

import "telegram-history-export/internal/domain"

// DataSource определяет интерфейс для получения исходных байтов снапшота.
type DataSource interface {
	// Fetch загружает данные из источника и возвращает их в виде байтового среза.
	Fetch() ([]byte, error)
}

// SnapshotParser определяет интерфейс для разбора снапшота в доменную модель.
type SnapshotParser interface {
	Parse(data []byte) (*domain.Snapshot, error)
}

// Appender — абстракция дозаписываемого файла вывода. Реализация сама
// решает, когда создавать файл; ядро только дописывает блоки.
type Appender interface {
	// WriteBlock дописывает блок в конец файла.
	WriteBlock(data []byte) error
	// Empty сообщает, был ли через этот Appender записан хотя бы один байт.
	Empty() bool
	// Close освобождает файл; повторный Close допустим.
	Close() error
}

// FileOpener создает Appender по относительному пути внутри каталога экспорта.
type FileOpener interface {
	Open(relativePath string) (Appender, error)
}

// HistoryWriter — протокол фаз экспорта. Методы вызываются внешним
// драйвером строго в порядке фаз; нарушение порядка — фатальная ошибка.
type HistoryWriter interface {
	WritePersonal(data domain.PersonalInfo) error

	WriteUserpicsStart(data domain.UserpicsInfo) error
	WriteUserpicsSlice(data domain.UserpicsSlice) error
	WriteUserpicsEnd() error

	WriteContactsList(data domain.ContactsList) error
	WriteSessionsList(data domain.SessionsList) error

	WriteDialogsStart(data domain.DialogsInfo) error
	WriteDialogStart(data domain.DialogInfo) error
	WriteDialogSlice(data domain.MessagesSlice) error
	WriteDialogEnd() error
	WriteDialogsEnd() error

	WriteLeftChannelsStart(data domain.DialogsInfo) error
	WriteLeftChannelStart(data domain.DialogInfo) error
	WriteLeftChannelSlice(data domain.MessagesSlice) error
	WriteLeftChannelEnd() error
	WriteLeftChannelsEnd() error

	Finish() error
}
