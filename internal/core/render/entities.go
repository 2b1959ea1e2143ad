package render

import (
	"telegram-history-export/internal/core/format"
	"telegram-history-export/internal/domain"
)

// FormatUsername добавляет '@' к непустому имени пользователя.
func FormatUsername(username string) string {
	if username == "" {
		return ""
	}
	return "@" + username
}

// PersonalInfo сериализует блок сведений о владельце аккаунта.
func PersonalInfo(data domain.PersonalInfo) []byte {
	return format.SerializeKeyValue([]format.KV{
		{Key: "First name", Value: data.User.FirstName},
		{Key: "Last name", Value: data.User.LastName},
		{Key: "Phone number", Value: domain.FormatPhoneNumber(data.User.PhoneNumber)},
		{Key: "Username", Value: FormatUsername(data.User.Username)},
		{Key: "Bio", Value: data.Bio},
	})
}

// Userpic сериализует одну строку списка фотографий профиля.
func Userpic(userpic domain.Userpic) []byte {
	if userpic.Date.IsZero() {
		return []byte("(deleted photo)")
	}
	line := domain.FormatDateTime(userpic.Date) + " - "
	if userpic.Image.File.RelativePath == "" {
		line += "(file unavailable)"
	} else {
		line += userpic.Image.File.RelativePath
	}
	return []byte(line)
}

// Contact сериализует запись контакта; полностью пустая запись
// дает надгробие "(deleted user)".
func Contact(contact domain.Contact) []byte {
	if contact.Deleted() {
		return []byte("(deleted user)" + format.LineBreak)
	}
	return format.SerializeKeyValue([]format.KV{
		{Key: "First name", Value: contact.FirstName},
		{Key: "Last name", Value: contact.LastName},
		{Key: "Phone number", Value: domain.FormatPhoneNumber(contact.PhoneNumber)},
		{Key: "Date", Value: domain.FormatDateTime(contact.Date)},
	})
}

// Session сериализует запись авторизованного сеанса.
func Session(session domain.Session) []byte {
	applicationName := session.ApplicationName
	if applicationName == "" {
		applicationName = "(unknown)"
	}
	return format.SerializeKeyValue([]format.KV{
		{Key: "Last active", Value: domain.FormatDateTime(session.LastActive)},
		{Key: "Last IP address", Value: session.IP},
		{Key: "Last country", Value: session.Country},
		{Key: "Last region", Value: session.Region},
		{Key: "Application name", Value: applicationName},
		{Key: "Application version", Value: session.ApplicationVersion},
		{Key: "Device model", Value: session.DeviceModel},
		{Key: "Platform", Value: session.Platform},
		{Key: "System version", Value: session.SystemVersion},
		{Key: "Created", Value: domain.FormatDateTime(session.Created)},
	})
}

// DialogListEntry сериализует одну запись оглавления диалогов;
// contentPath — путь к файлу сообщений диалога.
func DialogListEntry(dialog domain.DialogInfo, contentPath string) []byte {
	return format.SerializeKeyValue([]format.KV{
		{Key: "Name", Value: DialogName(dialog.Name, dialog.Type)},
		{Key: "Type", Value: DialogTypeString(dialog.Type)},
		{Key: "Content", Value: contentPath},
	})
}

// DialogTypeString возвращает метку типа диалога.
// Публичный канал намеренно дает "Private channel" — так помечает
// оба вида каналов формат, с которым сверяются потребители экспорта.
func DialogTypeString(t domain.DialogType) string {
	switch t {
	case domain.DialogPersonal:
		return "Personal chat"
	case domain.DialogBot:
		return "Bot chat"
	case domain.DialogPrivateGroup:
		return "Private group"
	case domain.DialogPublicGroup:
		return "Public group"
	case domain.DialogPrivateChannel:
		return "Private channel"
	case domain.DialogPublicChannel:
		return "Private channel"
	}
	return "(unknown)"
}

// DialogName возвращает имя диалога либо надгробие по его типу.
// Пустое имя — признак удаленной сущности, не сбоя разрешения.
func DialogName(name string, t domain.DialogType) string {
	if name != "" {
		return name
	}
	switch t {
	case domain.DialogPersonal:
		return "(deleted user)"
	case domain.DialogBot:
		return "(deleted bot)"
	case domain.DialogPrivateGroup, domain.DialogPublicGroup:
		return "(deleted group)"
	case domain.DialogPrivateChannel, domain.DialogPublicChannel:
		return "(deleted channel)"
	}
	return "(unknown)"
}
