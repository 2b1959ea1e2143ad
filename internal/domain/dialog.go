package domain

// DialogType — тип диалога.
type DialogType int

const (
	DialogUnknown DialogType = iota
	DialogPersonal
	DialogBot
	DialogPrivateGroup
	DialogPublicGroup
	DialogPrivateChannel
	DialogPublicChannel
)

// DialogInfo — заголовок одного экспортируемого диалога.
type DialogInfo struct {
	Type DialogType
	// Name — отображаемое имя; пустое означает удаленную сущность.
	Name string
	// RelativePath — относительный каталог вывода диалога с завершающим
	// разделителем. Пустой путь контроллер выводит сам из номера и имени.
	RelativePath string
	// OnlyMyMessages — в экспорте сохранены только исходящие сообщения.
	OnlyMyMessages bool
}

// DialogsInfo — анонс группы диалогов перед их пофазной записью.
type DialogsInfo struct {
	List []DialogInfo
}
