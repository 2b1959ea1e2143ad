// Package parser разбирает JSON-снапшот данных аккаунта в доменную модель.
package parser

import (
	"encoding/json"
	"fmt"
	"time"

	"telegram-history-export/internal/domain"
	"telegram-history-export/internal/ports"
)

// dateLayout — формат дат в снапшоте.
const dateLayout = "2006-01-02T15:04:05"

// JSONParser реализует интерфейс SnapshotParser для JSON-снапшотов.
type JSONParser struct{}

// NewJSONParser создает новый экземпляр JSONParser.
func NewJSONParser() ports.SnapshotParser {
	return &JSONParser{}
}

type rawSnapshot struct {
	PersonalInformation rawPersonal  `json:"personal_information"`
	ProfilePictures     []rawUserpic `json:"profile_pictures"`
	Contacts            []rawContact `json:"contacts"`
	Sessions            []rawSession `json:"sessions"`
	Peers               rawPeers     `json:"peers"`
	Chats               []rawDialog  `json:"chats"`
	LeftChats           []rawDialog  `json:"left_chats"`
}

type rawPersonal struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
	Bio         string `json:"bio"`
}

type rawUserpic struct {
	Date   string `json:"date"`
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type rawContact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Date        string `json:"date"`
}

type rawSession struct {
	LastActive         string `json:"last_active"`
	Created            string `json:"created"`
	IP                 string `json:"ip"`
	Country            string `json:"country"`
	Region             string `json:"region"`
	ApplicationName    string `json:"application_name"`
	ApplicationVersion string `json:"application_version"`
	DeviceModel        string `json:"device_model"`
	Platform           string `json:"platform"`
	SystemVersion      string `json:"system_version"`
}

type rawPeers struct {
	Users []rawUser `json:"users"`
	Chats []rawChat `json:"chats"`
}

type rawUser struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
	IsBot       bool   `json:"is_bot"`
}

type rawChat struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Username  string `json:"username"`
	Broadcast bool   `json:"is_broadcast"`
}

type rawDialog struct {
	Name           string       `json:"name"`
	Type           string       `json:"type"`
	RelativePath   string       `json:"relative_path"`
	OnlyMyMessages bool         `json:"only_my_messages"`
	Messages       []rawMessage `json:"messages"`
}

type rawMessage struct {
	ID            int64      `json:"id"`
	Date          string     `json:"date"`
	Edited        string     `json:"edited"`
	FromID        int64      `json:"from_id"`
	Signature     string     `json:"signature"`
	ForwardedFrom *rawPeerID `json:"forwarded_from"`
	ReplyToMsgID  int64      `json:"reply_to_message_id"`
	ViaBotID      int64      `json:"via_bot_id"`
	Text          string     `json:"text"`
	TTL           int        `json:"ttl"`
	Action        *rawAction `json:"action"`
	Media         *rawMedia  `json:"media"`
}

type rawPeerID struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

type rawAction struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Members       []int64  `json:"members"`
	Member        int64    `json:"member"`
	Inviter       int64    `json:"inviter"`
	Score         int      `json:"score"`
	Amount        int64    `json:"amount"`
	Currency      string   `json:"currency"`
	Duration      int      `json:"duration"`
	DiscardReason string   `json:"discard_reason"`
	Message       string   `json:"message"`
	Domain        string   `json:"domain"`
	ValueTypes    []string `json:"value_types"`
	Photo         *rawFile `json:"photo"`
}

type rawMedia struct {
	Type string `json:"type"`

	File   *rawFile `json:"file"`
	Width  int      `json:"width"`
	Height int      `json:"height"`

	IsSticker      bool   `json:"is_sticker"`
	StickerEmoji   string `json:"sticker_emoji"`
	IsVideoMessage bool   `json:"is_video_message"`
	IsVoiceMessage bool   `json:"is_voice_message"`
	IsAnimated     bool   `json:"is_animated"`
	IsVideoFile    bool   `json:"is_video_file"`
	IsAudioFile    bool   `json:"is_audio_file"`
	SongPerformer  string `json:"performer"`
	SongTitle      string `json:"song_title"`
	Mime           string `json:"mime_type"`
	Duration       int    `json:"duration"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Title       string `json:"title"`
	Address     string `json:"address"`
	Description string `json:"description"`

	BotID     int64  `json:"bot_id"`
	ShortName string `json:"short_name"`

	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	ReceiptMsgID int64  `json:"receipt_message_id"`
}

type rawFile struct {
	Path       string `json:"path"`
	SkipReason string `json:"skip_reason"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// Parse преобразует срез байт с JSON-снапшотом в доменную модель.
func (p *JSONParser) Parse(data []byte) (*domain.Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot json: %w", err)
	}

	snapshot := &domain.Snapshot{
		Personal: domain.PersonalInfo{
			User: domain.User{
				FirstName:   raw.PersonalInformation.FirstName,
				LastName:    raw.PersonalInformation.LastName,
				PhoneNumber: raw.PersonalInformation.PhoneNumber,
				Username:    raw.PersonalInformation.Username,
			},
			Bio: raw.PersonalInformation.Bio,
		},
		Contacts: domain.ContactsList{List: make([]domain.Contact, 0, len(raw.Contacts))},
		Sessions: domain.SessionsList{List: make([]domain.Session, 0, len(raw.Sessions))},
	}

	for i, userpic := range raw.ProfilePictures {
		date, err := parseDate(userpic.Date)
		if err != nil {
			return nil, fmt.Errorf("profile_pictures[%d]: %w", i, err)
		}
		snapshot.Userpics = append(snapshot.Userpics, domain.Userpic{
			Date: date,
			Image: domain.Image{
				Width:  userpic.Width,
				Height: userpic.Height,
				File:   domain.File{RelativePath: userpic.Path},
			},
		})
	}

	for i, contact := range raw.Contacts {
		date, err := parseDate(contact.Date)
		if err != nil {
			return nil, fmt.Errorf("contacts[%d]: %w", i, err)
		}
		snapshot.Contacts.List = append(snapshot.Contacts.List, domain.Contact{
			FirstName:   contact.FirstName,
			LastName:    contact.LastName,
			PhoneNumber: contact.PhoneNumber,
			Date:        date,
		})
	}

	for i, session := range raw.Sessions {
		lastActive, err := parseDate(session.LastActive)
		if err != nil {
			return nil, fmt.Errorf("sessions[%d]: %w", i, err)
		}
		created, err := parseDate(session.Created)
		if err != nil {
			return nil, fmt.Errorf("sessions[%d]: %w", i, err)
		}
		snapshot.Sessions.List = append(snapshot.Sessions.List, domain.Session{
			LastActive:         lastActive,
			Created:            created,
			IP:                 session.IP,
			Country:            session.Country,
			Region:             session.Region,
			ApplicationName:    session.ApplicationName,
			ApplicationVersion: session.ApplicationVersion,
			DeviceModel:        session.DeviceModel,
			Platform:           session.Platform,
			SystemVersion:      session.SystemVersion,
		})
	}

	peers := make(map[domain.PeerID]domain.Peer, len(raw.Peers.Users)+len(raw.Peers.Chats))
	for _, user := range raw.Peers.Users {
		peers[domain.UserPeerID(user.ID)] = domain.UserPeer(domain.User{
			ID:          user.ID,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			PhoneNumber: user.PhoneNumber,
			Username:    user.Username,
			IsBot:       user.IsBot,
		})
	}
	for _, chat := range raw.Peers.Chats {
		peers[domain.ChatPeerID(chat.ID)] = domain.ChatPeer(domain.Chat{
			ID:        chat.ID,
			Title:     chat.Title,
			Username:  chat.Username,
			Broadcast: chat.Broadcast,
		})
	}

	var err error
	if snapshot.Dialogs, err = parseDialogs(raw.Chats, peers, "chats"); err != nil {
		return nil, err
	}
	if snapshot.LeftChats, err = parseDialogs(raw.LeftChats, peers, "left_chats"); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func parseDialogs(list []rawDialog, peers map[domain.PeerID]domain.Peer, scope string) ([]domain.DialogExport, error) {
	result := make([]domain.DialogExport, 0, len(list))
	for i, dialog := range list {
		messages := make([]domain.Message, 0, len(dialog.Messages))
		for j, message := range dialog.Messages {
			parsed, err := parseMessage(message)
			if err != nil {
				return nil, fmt.Errorf("%s[%d].messages[%d]: %w", scope, i, j, err)
			}
			messages = append(messages, parsed)
		}
		result = append(result, domain.DialogExport{
			Info: domain.DialogInfo{
				Type:           parseDialogType(dialog.Type),
				Name:           dialog.Name,
				RelativePath:   dialog.RelativePath,
				OnlyMyMessages: dialog.OnlyMyMessages,
			},
			Messages: messages,
			Peers:    peers,
		})
	}
	return result, nil
}

func parseMessage(raw rawMessage) (domain.Message, error) {
	date, err := parseDate(raw.Date)
	if err != nil {
		return domain.Message{}, err
	}
	edited, err := parseDate(raw.Edited)
	if err != nil {
		return domain.Message{}, err
	}

	message := domain.Message{
		ID:           raw.ID,
		Date:         date,
		Edited:       edited,
		FromID:       raw.FromID,
		Signature:    raw.Signature,
		ReplyToMsgID: raw.ReplyToMsgID,
		ViaBotID:     raw.ViaBotID,
		Text:         raw.Text,
		Media:        domain.Media{TTL: raw.TTL},
	}
	if raw.ForwardedFrom != nil {
		switch raw.ForwardedFrom.Kind {
		case "chat":
			message.ForwardedFromID = domain.ChatPeerID(raw.ForwardedFrom.ID)
		default:
			message.ForwardedFromID = domain.UserPeerID(raw.ForwardedFrom.ID)
		}
	}
	if raw.Action != nil {
		content, err := parseAction(*raw.Action)
		if err != nil {
			return domain.Message{}, err
		}
		message.Action.Content = content
	}
	if raw.Media != nil {
		content, err := parseMedia(*raw.Media)
		if err != nil {
			return domain.Message{}, err
		}
		message.Media.Content = content
	}
	return message, nil
}

func parseAction(raw rawAction) (domain.ActionContent, error) {
	switch raw.Type {
	case "chat_create":
		return &domain.ActionChatCreate{Title: raw.Title, UserIDs: raw.Members}, nil
	case "edit_chat_title":
		return &domain.ActionChatEditTitle{Title: raw.Title}, nil
	case "edit_chat_photo":
		photo := domain.Photo{}
		if raw.Photo != nil {
			file, err := parseFile(*raw.Photo)
			if err != nil {
				return nil, err
			}
			photo.Image = domain.Image{Width: raw.Photo.Width, Height: raw.Photo.Height, File: file}
		}
		return &domain.ActionChatEditPhoto{Photo: photo}, nil
	case "delete_chat_photo":
		return &domain.ActionChatDeletePhoto{}, nil
	case "invite_members":
		return &domain.ActionChatAddUser{UserIDs: raw.Members}, nil
	case "remove_members":
		return &domain.ActionChatDeleteUser{UserID: raw.Member}, nil
	case "join_group_by_link":
		return &domain.ActionChatJoinedByLink{InviterID: raw.Inviter}, nil
	case "create_channel":
		return &domain.ActionChannelCreate{Title: raw.Title}, nil
	case "migrate_to_supergroup":
		return &domain.ActionChatMigrateTo{}, nil
	case "migrate_from_group":
		return &domain.ActionChannelMigrateFrom{Title: raw.Title}, nil
	case "pin_message":
		return &domain.ActionPinMessage{}, nil
	case "clear_history":
		return &domain.ActionHistoryClear{}, nil
	case "score_in_game":
		return &domain.ActionGameScore{Score: raw.Score}, nil
	case "send_payment":
		return &domain.ActionPaymentSent{Currency: raw.Currency, Amount: raw.Amount}, nil
	case "phone_call":
		return &domain.ActionPhoneCall{
			Duration:      raw.Duration,
			DiscardReason: parseDiscardReason(raw.DiscardReason),
		}, nil
	case "take_screenshot":
		return &domain.ActionScreenshotTaken{}, nil
	case "custom":
		return &domain.ActionCustomAction{Message: raw.Message}, nil
	case "allow_sending_messages":
		return &domain.ActionBotAllowed{Domain: raw.Domain}, nil
	case "send_passport_values":
		types := make([]domain.SecureValueType, 0, len(raw.ValueTypes))
		for _, value := range raw.ValueTypes {
			t, err := parseSecureValueType(value)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		return &domain.ActionSecureValuesSent{Types: types}, nil
	}
	return nil, fmt.Errorf("unknown action type %q", raw.Type)
}

func parseMedia(raw rawMedia) (domain.MediaContent, error) {
	switch raw.Type {
	case "photo":
		file, err := parseOptionalFile(raw.File)
		if err != nil {
			return nil, err
		}
		return &domain.Photo{
			Image: domain.Image{Width: raw.Width, Height: raw.Height, File: file},
		}, nil
	case "document":
		file, err := parseOptionalFile(raw.File)
		if err != nil {
			return nil, err
		}
		return &domain.Document{
			File:           file,
			IsSticker:      raw.IsSticker,
			StickerEmoji:   raw.StickerEmoji,
			IsVideoMessage: raw.IsVideoMessage,
			IsVoiceMessage: raw.IsVoiceMessage,
			IsAnimated:     raw.IsAnimated,
			IsVideoFile:    raw.IsVideoFile,
			IsAudioFile:    raw.IsAudioFile,
			SongPerformer:  raw.SongPerformer,
			SongTitle:      raw.SongTitle,
			Mime:           raw.Mime,
			Duration:       raw.Duration,
			Width:          raw.Width,
			Height:         raw.Height,
		}, nil
	case "contact":
		return &domain.ContactInfo{
			FirstName:   raw.FirstName,
			LastName:    raw.LastName,
			PhoneNumber: raw.PhoneNumber,
		}, nil
	case "geo_point":
		return &domain.GeoPoint{
			Latitude:  raw.Latitude,
			Longitude: raw.Longitude,
			Valid:     raw.Latitude != 0 || raw.Longitude != 0,
		}, nil
	case "venue":
		return &domain.Venue{
			Point: domain.GeoPoint{
				Latitude:  raw.Latitude,
				Longitude: raw.Longitude,
				Valid:     raw.Latitude != 0 || raw.Longitude != 0,
			},
			Title:   raw.Title,
			Address: raw.Address,
		}, nil
	case "game":
		return &domain.Game{
			ShortName:   raw.ShortName,
			Title:       raw.Title,
			Description: raw.Description,
			BotID:       raw.BotID,
		}, nil
	case "invoice":
		return &domain.Invoice{
			Title:        raw.Title,
			Description:  raw.Description,
			Currency:     raw.Currency,
			Amount:       raw.Amount,
			ReceiptMsgID: raw.ReceiptMsgID,
		}, nil
	case "unsupported":
		return &domain.UnsupportedMedia{}, nil
	}
	return nil, fmt.Errorf("unknown media type %q", raw.Type)
}

func parseOptionalFile(raw *rawFile) (domain.File, error) {
	if raw == nil {
		return domain.File{SkipReason: domain.SkipUnavailable}, nil
	}
	return parseFile(*raw)
}

func parseFile(raw rawFile) (domain.File, error) {
	file := domain.File{RelativePath: raw.Path}
	switch raw.SkipReason {
	case "":
		file.SkipReason = domain.SkipNone
	case "unavailable":
		file.SkipReason = domain.SkipUnavailable
	case "file_size":
		file.SkipReason = domain.SkipFileSize
	case "file_type":
		file.SkipReason = domain.SkipFileType
	default:
		return domain.File{}, fmt.Errorf("unknown skip reason %q", raw.SkipReason)
	}
	if file.RelativePath == "" && file.SkipReason == domain.SkipNone {
		return domain.File{}, fmt.Errorf("file entry has neither path nor skip reason")
	}
	return file, nil
}

func parseDialogType(value string) domain.DialogType {
	switch value {
	case "personal_chat":
		return domain.DialogPersonal
	case "bot_chat":
		return domain.DialogBot
	case "private_group":
		return domain.DialogPrivateGroup
	case "public_group":
		return domain.DialogPublicGroup
	case "private_channel":
		return domain.DialogPrivateChannel
	case "public_channel":
		return domain.DialogPublicChannel
	}
	return domain.DialogUnknown
}

// parseDiscardReason намеренно терпим к неизвестным значениям:
// они отображаются в CallDiscardUnknown и опускаются при рендеринге.
func parseDiscardReason(value string) domain.CallDiscardReason {
	switch value {
	case "busy":
		return domain.CallDiscardBusy
	case "disconnect":
		return domain.CallDiscardDisconnect
	case "hangup":
		return domain.CallDiscardHangup
	case "missed":
		return domain.CallDiscardMissed
	}
	return domain.CallDiscardUnknown
}

func parseSecureValueType(value string) (domain.SecureValueType, error) {
	switch value {
	case "personal_details":
		return domain.SecureValuePersonalDetails, nil
	case "passport":
		return domain.SecureValuePassport, nil
	case "driver_license":
		return domain.SecureValueDriverLicense, nil
	case "identity_card":
		return domain.SecureValueIdentityCard, nil
	case "internal_passport":
		return domain.SecureValueInternalPassport, nil
	case "address":
		return domain.SecureValueAddress, nil
	case "utility_bill":
		return domain.SecureValueUtilityBill, nil
	case "bank_statement":
		return domain.SecureValueBankStatement, nil
	case "rental_agreement":
		return domain.SecureValueRentalAgreement, nil
	case "passport_registration":
		return domain.SecureValuePassportRegistration, nil
	case "temporary_registration":
		return domain.SecureValueTemporaryRegistration, nil
	case "phone":
		return domain.SecureValuePhone, nil
	case "email":
		return domain.SecureValueEmail, nil
	}
	return 0, fmt.Errorf("unknown passport value type %q", value)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}
