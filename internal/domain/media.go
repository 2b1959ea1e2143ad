package domain

// SkipReason объясняет, почему файл, на который ссылается медиа,
// не был включен в экспорт.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipUnavailable
	SkipFileSize
	SkipFileType
)

// File — ссылка на файл относительно каталога экспорта.
// Инвариант: RelativePath непуст, если SkipReason == SkipNone.
type File struct {
	RelativePath string
	SkipReason   SkipReason
}

// Image — изображение с размерами и файлом на диске.
type Image struct {
	Width  int
	Height int
	File   File
}

// MediaContent — запечатанное объединение вариантов медиа-нагрузки.
// Варианты перечислены в этом файле; диспетчеризация — type switch.
type MediaContent interface {
	mediaContent()
}

// Photo — фотография.
type Photo struct {
	ID    int64
	Image Image
}

// Document — документ с набором флагов подвида. Флаги по построению
// не взаимоисключающие: рендерер выбирает метку по фиксированному приоритету.
type Document struct {
	File File

	IsSticker      bool
	IsVideoMessage bool
	IsVoiceMessage bool
	IsAnimated     bool
	IsVideoFile    bool
	IsAudioFile    bool

	StickerEmoji  string
	SongPerformer string
	SongTitle     string
	Mime          string
	Duration      int
	Width         int
	Height        int
}

// ContactInfo — контакт, отправленный сообщением.
type ContactInfo struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

// GeoPoint — географическая точка; Valid=false означает пустое значение.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
	Valid     bool
}

// Venue — место с названием и адресом.
type Venue struct {
	Point   GeoPoint
	Title   string
	Address string
}

// Game — игра, привязанная к боту.
type Game struct {
	ID          int64
	ShortName   string
	Title       string
	Description string
	BotID       int64
}

// Invoice — счет на оплату.
type Invoice struct {
	Title        string
	Description  string
	Currency     string
	Amount       int64
	ReceiptMsgID int64
}

// UnsupportedMedia — медиа, неизвестное этой версии экспортера.
type UnsupportedMedia struct{}

func (*Photo) mediaContent()            {}
func (*Document) mediaContent()         {}
func (*ContactInfo) mediaContent()      {}
func (*GeoPoint) mediaContent()         {}
func (*Venue) mediaContent()            {}
func (*Game) mediaContent()             {}
func (*Invoice) mediaContent()          {}
func (*UnsupportedMedia) mediaContent() {}

// Media — медиа-нагрузка сообщения. Content == nil означает отсутствие медиа.
type Media struct {
	// TTL — период самоуничтожения в секундах, 0 — не задан.
	TTL     int
	Content MediaContent
}
