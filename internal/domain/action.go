package domain

// CallDiscardReason — причина завершения звонка. Закрытый набор значений;
// неизвестные причины при рендеринге молча опускаются.
type CallDiscardReason int

const (
	CallDiscardUnknown CallDiscardReason = iota
	CallDiscardBusy
	CallDiscardDisconnect
	CallDiscardHangup
	CallDiscardMissed
)

// SecureValueType — тип значения Telegram Passport.
type SecureValueType int

const (
	SecureValuePersonalDetails SecureValueType = iota
	SecureValuePassport
	SecureValueDriverLicense
	SecureValueIdentityCard
	SecureValueInternalPassport
	SecureValueAddress
	SecureValueUtilityBill
	SecureValueBankStatement
	SecureValueRentalAgreement
	SecureValuePassportRegistration
	SecureValueTemporaryRegistration
	SecureValuePhone
	SecureValueEmail
)

// ActionContent — запечатанное объединение сервисных событий чата.
type ActionContent interface {
	actionContent()
}

// ActionChatCreate — создание группы.
type ActionChatCreate struct {
	Title   string
	UserIDs []int64
}

// ActionChatEditTitle — смена названия группы.
type ActionChatEditTitle struct {
	Title string
}

// ActionChatEditPhoto — смена фотографии группы.
type ActionChatEditPhoto struct {
	Photo Photo
}

// ActionChatDeletePhoto — удаление фотографии группы.
type ActionChatDeletePhoto struct{}

// ActionChatAddUser — приглашение участников.
type ActionChatAddUser struct {
	UserIDs []int64
}

// ActionChatDeleteUser — удаление участника.
type ActionChatDeleteUser struct {
	UserID int64
}

// ActionChatJoinedByLink — вступление в группу по ссылке.
type ActionChatJoinedByLink struct {
	InviterID int64
}

// ActionChannelCreate — создание канала.
type ActionChannelCreate struct {
	Title string
}

// ActionChatMigrateTo — миграция группы в супергруппу.
type ActionChatMigrateTo struct{}

// ActionChannelMigrateFrom — миграция супергруппы из группы.
type ActionChannelMigrateFrom struct {
	Title string
}

// ActionPinMessage — закрепление сообщения.
type ActionPinMessage struct{}

// ActionHistoryClear — очистка истории.
type ActionHistoryClear struct{}

// ActionGameScore — результат в игре.
type ActionGameScore struct {
	Score int
}

// ActionPaymentSent — отправка платежа.
type ActionPaymentSent struct {
	Currency string
	Amount   int64
}

// ActionPhoneCall — телефонный звонок.
type ActionPhoneCall struct {
	// Duration — длительность в секундах, 0 — не задана.
	Duration      int
	DiscardReason CallDiscardReason
}

// ActionScreenshotTaken — снимок экрана.
type ActionScreenshotTaken struct{}

// ActionCustomAction — произвольное сервисное сообщение.
type ActionCustomAction struct {
	Message string
}

// ActionBotAllowed — разрешение боту писать после входа на домене.
type ActionBotAllowed struct {
	Domain string
}

// ActionSecureValuesSent — отправка значений Telegram Passport.
type ActionSecureValuesSent struct {
	Types []SecureValueType
}

func (*ActionChatCreate) actionContent()         {}
func (*ActionChatEditTitle) actionContent()      {}
func (*ActionChatEditPhoto) actionContent()      {}
func (*ActionChatDeletePhoto) actionContent()    {}
func (*ActionChatAddUser) actionContent()        {}
func (*ActionChatDeleteUser) actionContent()     {}
func (*ActionChatJoinedByLink) actionContent()   {}
func (*ActionChannelCreate) actionContent()      {}
func (*ActionChatMigrateTo) actionContent()      {}
func (*ActionChannelMigrateFrom) actionContent() {}
func (*ActionPinMessage) actionContent()         {}
func (*ActionHistoryClear) actionContent()       {}
func (*ActionGameScore) actionContent()          {}
func (*ActionPaymentSent) actionContent()        {}
func (*ActionPhoneCall) actionContent()          {}
func (*ActionScreenshotTaken) actionContent()    {}
func (*ActionCustomAction) actionContent()       {}
func (*ActionBotAllowed) actionContent()         {}
func (*ActionSecureValuesSent) actionContent()   {}

// Action — сервисное событие сообщения. Content == nil означает,
// что сообщение обычное, без сервисного события.
type Action struct {
	Content ActionContent
}
