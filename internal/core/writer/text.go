// Package writer реализует контроллер сессии текстового экспорта:
// пофазную запись данных аккаунта в result.txt и файлы-спутники.
package writer

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"telegram-history-export/internal/core/format"
	"telegram-history-export/internal/core/render"
	"telegram-history-export/internal/domain"
	"telegram-history-export/internal/ports"
)

// ErrProtocol — нарушение протокола фаз: вызов вне очереди или с данными,
// противоречащими ранее анонсированным. Экспорт после такой ошибки
// продолжать нельзя.
var ErrProtocol = errors.New("export protocol violation")

// MainFileName — имя главного файла экспорта.
const MainFileName = "result.txt"

// Settings — параметры одного запуска текстового экспорта.
type Settings struct {
	// Path — каталог вывода; обязан заканчиваться разделителем пути.
	Path string
	// InternalLinksDomain — домен для построения ссылок на игры ботов.
	InternalLinksDomain string
}

// TextWriter последовательно принимает фазы экспорта и дописывает
// форматированные блоки в открытые файлы. Не потокобезопасен:
// рассчитан на одного внешнего драйвера.
type TextWriter struct {
	settings Settings
	opener   ports.FileOpener

	result ports.Appender
	chat   ports.Appender

	userpicsCount int
	dialogsCount  int
	dialogIndex   int
	dialogEmpty   bool
	dialogOnlyMy  bool

	messagesWritten int
}

// NewTextWriter создает контроллер поверх переданного FileOpener;
// nil opener означает запись на диск в каталог Settings.Path.
func NewTextWriter(opener ports.FileOpener) *TextWriter {
	return &TextWriter{opener: opener}
}

// Start проверяет настройки и открывает главный файл. Обязан быть
// первым вызовом протокола.
func (w *TextWriter) Start(settings Settings) error {
	if !strings.HasSuffix(settings.Path, "/") && !strings.HasSuffix(settings.Path, string(os.PathSeparator)) {
		return fmt.Errorf("%w: output path %q must end with a path separator", ErrProtocol, settings.Path)
	}
	if w.result != nil {
		return fmt.Errorf("%w: Start called twice", ErrProtocol)
	}
	w.settings = settings
	if w.opener == nil {
		w.opener = DirOpener{Base: settings.Path}
	}
	result, err := w.opener.Open(MainFileName)
	if err != nil {
		return err
	}
	w.result = result
	return nil
}

// MainFilePath возвращает полный путь главного файла экспорта.
func (w *TextWriter) MainFilePath() string {
	return w.settings.Path + MainFileName
}

// MessagesWritten возвращает число сообщений, записанных за сессию.
func (w *TextWriter) MessagesWritten() int {
	return w.messagesWritten
}

// WritePersonal пишет блок сведений о владельце аккаунта в главный файл.
func (w *TextWriter) WritePersonal(data domain.PersonalInfo) error {
	if w.result == nil {
		return fmt.Errorf("%w: WritePersonal before Start", ErrProtocol)
	}
	serialized := "Personal information" + format.LineBreak + format.LineBreak +
		string(render.PersonalInfo(data)) + format.LineBreak
	return w.result.WriteBlock([]byte(serialized))
}

// WriteUserpicsStart анонсирует общее число фотографий профиля.
func (w *TextWriter) WriteUserpicsStart(data domain.UserpicsInfo) error {
	if w.result == nil {
		return fmt.Errorf("%w: WriteUserpicsStart before Start", ErrProtocol)
	}
	w.userpicsCount = data.Count
	if w.userpicsCount == 0 {
		return nil
	}
	header := "Personal photos (" + strconv.Itoa(w.userpicsCount) + ")" +
		format.LineBreak + format.LineBreak
	return w.result.WriteBlock([]byte(header))
}

// WriteUserpicsSlice пишет одну страницу фотографий профиля.
func (w *TextWriter) WriteUserpicsSlice(data domain.UserpicsSlice) error {
	if w.result == nil {
		return fmt.Errorf("%w: WriteUserpicsSlice before Start", ErrProtocol)
	}
	if len(data.List) == 0 {
		return fmt.Errorf("%w: empty userpics slice", ErrProtocol)
	}
	var lines []byte
	for _, userpic := range data.List {
		lines = append(lines, render.Userpic(userpic)...)
		lines = append(lines, format.LineBreak...)
	}
	return w.result.WriteBlock(lines)
}

// WriteUserpicsEnd завершает блок фотографий профиля.
func (w *TextWriter) WriteUserpicsEnd() error {
	if w.result == nil {
		return fmt.Errorf("%w: WriteUserpicsEnd before Start", ErrProtocol)
	}
	if w.userpicsCount == 0 {
		return nil
	}
	return w.result.WriteBlock([]byte(format.LineBreak))
}

// WriteContactsList пишет contacts.txt и анонс в главном файле.
func (w *TextWriter) WriteContactsList(data domain.ContactsList) error {
	if w.result == nil {
		return fmt.Errorf("%w: WriteContactsList before Start", ErrProtocol)
	}
	if len(data.List) == 0 {
		return nil
	}
	list := make([][]byte, 0, len(data.List))
	for _, index := range domain.SortedContactsIndices(data) {
		list = append(list, render.Contact(data.List[index]))
	}
	if err := w.writeSatellite("contacts.txt", format.JoinList([]byte(format.LineBreak), list)); err != nil {
		return err
	}
	return w.writeListHeader("Contacts", len(data.List), "contacts.txt")
}

// WriteSessionsList пишет sessions.txt и анонс в главном файле.
func (w *TextWriter) WriteSessionsList(data domain.SessionsList) error {
	if w.result == nil {
		return fmt.Errorf("%w: WriteSessionsList before Start", ErrProtocol)
	}
	if len(data.List) == 0 {
		return nil
	}
	list := make([][]byte, 0, len(data.List))
	for _, session := range data.List {
		list = append(list, render.Session(session))
	}
	if err := w.writeSatellite("sessions.txt", format.JoinList([]byte(format.LineBreak), list)); err != nil {
		return err
	}
	return w.writeListHeader("Sessions", len(data.List), "sessions.txt")
}

// WriteDialogsStart анонсирует группу диалогов и пишет оглавление chats.txt.
func (w *TextWriter) WriteDialogsStart(data domain.DialogsInfo) error {
	return w.writeChatsStart(data, "Chats", "chats.txt")
}

// WriteDialogStart открывает файл сообщений очередного диалога.
func (w *TextWriter) WriteDialogStart(data domain.DialogInfo) error {
	return w.writeChatStart(data)
}

// WriteDialogSlice пишет одну страницу сообщений текущего диалога.
func (w *TextWriter) WriteDialogSlice(data domain.MessagesSlice) error {
	return w.writeChatSlice(data)
}

// WriteDialogEnd закрывает файл текущего диалога.
func (w *TextWriter) WriteDialogEnd() error {
	return w.writeChatEnd()
}

// WriteDialogsEnd завершает группу диалогов.
func (w *TextWriter) WriteDialogsEnd() error {
	return nil
}

// WriteLeftChannelsStart анонсирует покинутые чаты и пишет left_chats.txt.
func (w *TextWriter) WriteLeftChannelsStart(data domain.DialogsInfo) error {
	return w.writeChatsStart(data, "Left chats", "left_chats.txt")
}

// WriteLeftChannelStart открывает файл сообщений покинутого чата.
func (w *TextWriter) WriteLeftChannelStart(data domain.DialogInfo) error {
	return w.writeChatStart(data)
}

// WriteLeftChannelSlice пишет страницу сообщений покинутого чата.
func (w *TextWriter) WriteLeftChannelSlice(data domain.MessagesSlice) error {
	return w.writeChatSlice(data)
}

// WriteLeftChannelEnd закрывает файл покинутого чата.
func (w *TextWriter) WriteLeftChannelEnd() error {
	return w.writeChatEnd()
}

// WriteLeftChannelsEnd завершает группу покинутых чатов.
func (w *TextWriter) WriteLeftChannelsEnd() error {
	return nil
}

// Finish закрывает главный файл и завершает сессию.
func (w *TextWriter) Finish() error {
	if w.result == nil {
		return fmt.Errorf("%w: Finish before Start", ErrProtocol)
	}
	if w.chat != nil {
		return fmt.Errorf("%w: Finish with an open chat file", ErrProtocol)
	}
	err := w.result.Close()
	w.result = nil
	return err
}

func (w *TextWriter) writeChatsStart(data domain.DialogsInfo, listName, fileName string) error {
	if w.result == nil {
		return fmt.Errorf("%w: %s list before Start", ErrProtocol, listName)
	}
	if w.chat != nil {
		return fmt.Errorf("%w: %s list with an open chat file", ErrProtocol, listName)
	}
	if len(data.List) == 0 {
		return nil
	}

	// Нумерация ведется внутри группы: каждая группа получает свой
	// анонсированный итог и свой счетчик.
	w.dialogsCount = len(data.List)
	w.dialogIndex = 0

	list := make([][]byte, 0, len(data.List))
	for i, dialog := range data.List {
		path := w.chatRelativePath(i, dialog) + "messages.txt"
		list = append(list, render.DialogListEntry(dialog, path))
	}
	if err := w.writeSatellite(fileName, format.JoinList([]byte(format.LineBreak), list)); err != nil {
		return err
	}
	return w.writeListHeader(listName, len(data.List), fileName)
}

func (w *TextWriter) writeChatStart(data domain.DialogInfo) error {
	if w.result == nil {
		return fmt.Errorf("%w: chat start before Start", ErrProtocol)
	}
	if w.chat != nil {
		return fmt.Errorf("%w: chat start while another chat file is open", ErrProtocol)
	}
	if w.dialogIndex >= w.dialogsCount {
		return fmt.Errorf("%w: dialog index %d reached the announced total %d", ErrProtocol, w.dialogIndex, w.dialogsCount)
	}
	path := w.chatRelativePath(w.dialogIndex, data) + "messages.txt"
	w.dialogIndex++

	chat, err := w.opener.Open(path)
	if err != nil {
		return err
	}
	w.chat = chat
	w.dialogEmpty = true
	w.dialogOnlyMy = data.OnlyMyMessages
	return nil
}

func (w *TextWriter) writeChatSlice(data domain.MessagesSlice) error {
	if w.chat == nil {
		return fmt.Errorf("%w: chat slice with no open chat file", ErrProtocol)
	}
	if len(data.List) == 0 {
		return fmt.Errorf("%w: empty messages slice", ErrProtocol)
	}
	w.dialogEmpty = false
	list := make([][]byte, 0, len(data.List))
	for _, message := range data.List {
		serialized, err := render.Message(message, data.Peers, w.settings.InternalLinksDomain)
		if err != nil {
			return err
		}
		list = append(list, serialized)
	}
	full := format.JoinList([]byte(format.LineBreak), list)
	if !w.chat.Empty() {
		full = append([]byte(format.LineBreak), full...)
	}
	if err := w.chat.WriteBlock(full); err != nil {
		return err
	}
	w.messagesWritten += len(data.List)
	return nil
}

func (w *TextWriter) writeChatEnd() error {
	if w.chat == nil {
		return fmt.Errorf("%w: chat end with no open chat file", ErrProtocol)
	}
	chat := w.chat
	w.chat = nil
	if w.dialogEmpty {
		sentinel := "No messages in this chat."
		if w.dialogOnlyMy {
			sentinel = "No outgoing messages in this chat."
		}
		if err := chat.WriteBlock([]byte(sentinel)); err != nil {
			chat.Close()
			return err
		}
	}
	return chat.Close()
}

func (w *TextWriter) chatRelativePath(index int, data domain.DialogInfo) string {
	return ChatRelativePath(index, w.dialogsCount, data)
}

// ChatRelativePath возвращает каталог диалога с завершающим разделителем.
// Заданный заранее путь используется как есть; иначе путь выводится из
// порядкового номера, дополненного нулями до ширины анонсированного итога.
func ChatRelativePath(index, total int, data domain.DialogInfo) string {
	if data.RelativePath != "" {
		return data.RelativePath
	}
	digits := len(strconv.Itoa(total - 1))
	return fmt.Sprintf("chats/%0*d_%s/", digits, index+1, dialogSlug(data))
}

func dialogSlug(data domain.DialogInfo) string {
	var b strings.Builder
	for _, r := range strings.ToLower(data.Name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "chat"
	}
	return slug
}

// writeSatellite пишет файл-спутник целиком и закрывает его.
func (w *TextWriter) writeSatellite(fileName string, full []byte) error {
	file, err := w.opener.Open(fileName)
	if err != nil {
		return err
	}
	if err := file.WriteBlock(full); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// writeListHeader анонсирует файл-спутник в главном файле.
func (w *TextWriter) writeListHeader(listName string, count int, fileName string) error {
	header := listName + " (" + strconv.Itoa(count) + ") - " + fileName +
		format.LineBreak + format.LineBreak
	return w.result.WriteBlock([]byte(header))
}
