package render

import (
	"fmt"
	"strconv"

	"telegram-history-export/internal/core/format"
	"telegram-history-export/internal/domain"
)

// UnsupportedMessageNote — фиксированный текст вместо сообщения,
// которое эта версия экспортера сериализовать не умеет.
const UnsupportedMessageNote = "Error! This message is not supported " +
	"by this version of Telegram Desktop. " +
	"Please update the application."

// Message сериализует одно сообщение в каноничную запись.
// Нарушение предусловий данных (пустой путь файла без причины пропуска,
// неизвестная причина пропуска) — фатальная ошибка, а не пустое поле.
func Message(msg domain.Message, peers map[domain.PeerID]domain.Peer, internalLinksDomain string) ([]byte, error) {
	if _, ok := msg.Media.Content.(*domain.UnsupportedMedia); ok {
		return []byte(UnsupportedMessageNote), nil
	}

	m := messageRenderer{
		msg:         msg,
		resolver:    NewResolver(peers),
		linksDomain: internalLinksDomain,
	}
	m.push("ID", strconv.FormatInt(msg.ID, 10))
	m.push("Date", domain.FormatDateTime(msg.Date))
	m.push("Edited", domain.FormatDateTime(msg.Edited))

	if err := m.renderAction(); err != nil {
		return nil, err
	}
	if msg.Action.Content == nil {
		m.renderRegular()
	}
	if err := m.renderMedia(); err != nil {
		return nil, err
	}
	m.push("Text", msg.Text)

	return format.SerializeKeyValue(m.pairs), nil
}

type messageRenderer struct {
	msg         domain.Message
	resolver    Resolver
	linksDomain string
	pairs       []format.KV
}

// push добавляет пару; пустые значения подавит сериализатор.
func (m *messageRenderer) push(key, value string) {
	m.pairs = append(m.pairs, format.KV{Key: key, Value: value})
}

func (m *messageRenderer) pushFrom(label string) {
	if m.msg.FromID != 0 {
		m.push(label, m.resolver.UserName(m.msg.FromID))
	}
}

func (m *messageRenderer) pushActor() {
	m.pushFrom("Actor")
}

func (m *messageRenderer) pushAction(action string) {
	m.push("Action", action)
}

func (m *messageRenderer) pushReplyToMsgID(label string) {
	if m.msg.ReplyToMsgID != 0 {
		m.push(label, "ID-"+strconv.FormatInt(m.msg.ReplyToMsgID, 10))
	}
}

func (m *messageRenderer) pushUserNames(userIDs []int64, labelOne, labelMany string) {
	list := make([][]byte, 0, len(userIDs))
	for _, id := range userIDs {
		list = append(list, []byte(m.resolver.UserName(id)))
	}
	if len(list) == 1 {
		m.push(labelOne, string(list[0]))
	} else if len(list) > 0 {
		m.push(labelMany, string(format.JoinList([]byte(", "), list)))
	}
}

func (m *messageRenderer) pushTTL(label string) {
	if ttl := m.msg.Media.TTL; ttl != 0 {
		m.push(label, strconv.Itoa(ttl)+" sec.")
	}
}

// pushPath пишет путь файла либо фиксированную строку причины пропуска.
func (m *messageRenderer) pushPath(file domain.File, label, name string) error {
	if file.RelativePath == "" && file.SkipReason == domain.SkipNone {
		return fmt.Errorf("render: empty file path with no skip reason under %q", label)
	}
	pre := ""
	if name != "" {
		pre = name + " "
	}
	var value string
	switch file.SkipReason {
	case domain.SkipUnavailable:
		value = pre + "(file unavailable)"
	case domain.SkipFileSize:
		value = pre + "(file too large)"
	case domain.SkipFileType:
		value = pre + "(file skipped)"
	case domain.SkipNone:
		value = file.RelativePath
	default:
		return fmt.Errorf("render: unexpected skip reason %d under %q", file.SkipReason, label)
	}
	m.push(label, value)
	return nil
}

func (m *messageRenderer) pushPhoto(image domain.Image) error {
	if err := m.pushPath(image.File, "Photo", ""); err != nil {
		return err
	}
	if image.Width != 0 && image.Height != 0 {
		m.push("Width", strconv.Itoa(image.Width))
		m.push("Height", strconv.Itoa(image.Height))
	}
	return nil
}

func (m *messageRenderer) renderAction() error {
	switch data := m.msg.Action.Content.(type) {
	case nil:
	case *domain.ActionChatCreate:
		m.pushActor()
		m.pushAction("Create group")
		m.push("Title", data.Title)
		m.pushUserNames(data.UserIDs, "Member", "Members")
	case *domain.ActionChatEditTitle:
		m.pushActor()
		m.pushAction("Edit group title")
		m.push("New title", data.Title)
	case *domain.ActionChatEditPhoto:
		m.pushActor()
		m.pushAction("Edit group photo")
		if err := m.pushPhoto(data.Photo.Image); err != nil {
			return err
		}
	case *domain.ActionChatDeletePhoto:
		m.pushActor()
		m.pushAction("Delete group photo")
	case *domain.ActionChatAddUser:
		m.pushActor()
		m.pushAction("Invite members")
		m.pushUserNames(data.UserIDs, "Member", "Members")
	case *domain.ActionChatDeleteUser:
		m.pushActor()
		m.pushAction("Remove members")
		m.push("Member", m.resolver.UserName(data.UserID))
	case *domain.ActionChatJoinedByLink:
		m.pushActor()
		m.pushAction("Join group by link")
		m.push("Inviter", m.resolver.UserName(data.InviterID))
	case *domain.ActionChannelCreate:
		m.pushActor()
		m.pushAction("Create channel")
		m.push("Title", data.Title)
	case *domain.ActionChatMigrateTo:
		m.pushActor()
		m.pushAction("Migrate this group to supergroup")
	case *domain.ActionChannelMigrateFrom:
		m.pushActor()
		m.pushAction("Migrate this supergroup from group")
		m.push("Title", data.Title)
	case *domain.ActionPinMessage:
		m.pushActor()
		m.pushAction("Pin message")
		m.pushReplyToMsgID("Message")
	case *domain.ActionHistoryClear:
		m.pushActor()
		m.pushAction("Clear history")
	case *domain.ActionGameScore:
		m.pushActor()
		m.pushAction("Score in a game")
		m.pushReplyToMsgID("Game message")
		m.push("Score", strconv.Itoa(data.Score))
	case *domain.ActionPaymentSent:
		m.pushAction("Send payment")
		m.push("Amount", domain.FormatMoneyAmount(data.Amount, data.Currency))
		m.pushReplyToMsgID("Invoice message")
	case *domain.ActionPhoneCall:
		m.pushActor()
		m.pushAction("Phone call")
		if data.Duration != 0 {
			m.push("Duration", strconv.Itoa(data.Duration)+" sec.")
		}
		m.push("Discard reason", discardReasonString(data.DiscardReason))
	case *domain.ActionScreenshotTaken:
		m.pushActor()
		m.pushAction("Take screenshot")
	case *domain.ActionCustomAction:
		m.pushActor()
		m.push("Information", data.Message)
	case *domain.ActionBotAllowed:
		m.pushAction("Allow sending messages")
		m.push("Reason", "Login on \""+data.Domain+"\"")
	case *domain.ActionSecureValuesSent:
		m.pushAction("Send Telegram Passport values")
		list := make([][]byte, 0, len(data.Types))
		for _, t := range data.Types {
			list = append(list, []byte(secureValueTypeString(t)))
		}
		if len(list) == 1 {
			m.push("Value", string(list[0]))
		} else if len(list) > 0 {
			m.push("Values", string(format.JoinList([]byte(", "), list)))
		}
	default:
		return fmt.Errorf("render: unhandled action variant %T", data)
	}
	return nil
}

func (m *messageRenderer) renderRegular() {
	m.pushFrom("From")
	m.push("Author", m.msg.Signature)
	if !m.msg.ForwardedFromID.Zero() {
		m.push("Forwarded from", m.resolver.PeerName(m.msg.ForwardedFromID))
	}
	m.pushReplyToMsgID("Reply to message")
	if m.msg.ViaBotID != 0 {
		m.push("Via", m.resolver.User(m.msg.ViaBotID).Username)
	}
}

func (m *messageRenderer) renderMedia() error {
	switch data := m.msg.Media.Content.(type) {
	case nil:
	case *domain.Photo:
		if err := m.pushPhoto(data.Image); err != nil {
			return err
		}
		m.pushTTL("Self destruct period")
	case *domain.Document:
		if err := m.renderDocument(data); err != nil {
			return err
		}
	case *domain.ContactInfo:
		m.push("Contact information", string(format.SerializeKeyValue([]format.KV{
			{Key: "First name", Value: data.FirstName},
			{Key: "Last name", Value: data.LastName},
			{Key: "Phone number", Value: domain.FormatPhoneNumber(data.PhoneNumber)},
		})))
	case *domain.GeoPoint:
		if data.Valid {
			m.push("Location", string(format.SerializeKeyValue([]format.KV{
				{Key: "Latitude", Value: formatCoordinate(data.Latitude)},
				{Key: "Longitude", Value: formatCoordinate(data.Longitude)},
			})))
		} else {
			m.push("Location", "(empty value)")
		}
		m.pushTTL("Live location period")
	case *domain.Venue:
		m.push("Place name", data.Title)
		m.push("Address", data.Address)
		if data.Point.Valid {
			m.push("Location", string(format.SerializeKeyValue([]format.KV{
				{Key: "Latitude", Value: formatCoordinate(data.Point.Latitude)},
				{Key: "Longitude", Value: formatCoordinate(data.Point.Longitude)},
			})))
		}
	case *domain.Game:
		m.push("Game", data.Title)
		m.push("Description", data.Description)
		if data.BotID != 0 && data.ShortName != "" {
			bot := m.resolver.User(data.BotID)
			if bot.IsBot && bot.Username != "" {
				m.push("Link", m.linksDomain+bot.Username+"?game="+data.ShortName)
			}
		}
	case *domain.Invoice:
		receipt := ""
		if data.ReceiptMsgID != 0 {
			receipt = "ID-" + strconv.FormatInt(data.ReceiptMsgID, 10)
		}
		m.push("Invoice", string(format.SerializeKeyValue([]format.KV{
			{Key: "Title", Value: data.Title},
			{Key: "Description", Value: data.Description},
			{Key: "Amount", Value: domain.FormatMoneyAmount(data.Amount, data.Currency)},
			{Key: "Receipt message", Value: receipt},
		})))
	case *domain.UnsupportedMedia:
		// Перехватывается до обычного рендеринга; сюда попадать не должно.
		return fmt.Errorf("render: unsupported media reached the generic renderer")
	default:
		return fmt.Errorf("render: unhandled media variant %T", data)
	}
	return nil
}

// renderDocument выбирает единственную метку документа по фиксированной
// цепочке приоритета; размеры, длительность и mime выводятся независимо
// от метки, mime подавляется только для стикеров.
func (m *messageRenderer) renderDocument(data *domain.Document) error {
	switch {
	case data.IsSticker:
		if err := m.pushPath(data.File, "Sticker", ""); err != nil {
			return err
		}
		m.push("Emoji", data.StickerEmoji)
	case data.IsVideoMessage:
		if err := m.pushPath(data.File, "Video message", ""); err != nil {
			return err
		}
	case data.IsVoiceMessage:
		if err := m.pushPath(data.File, "Voice message", ""); err != nil {
			return err
		}
	case data.IsAnimated:
		if err := m.pushPath(data.File, "Animation", ""); err != nil {
			return err
		}
	case data.IsVideoFile:
		if err := m.pushPath(data.File, "Video file", ""); err != nil {
			return err
		}
	case data.IsAudioFile:
		if err := m.pushPath(data.File, "Audio file", ""); err != nil {
			return err
		}
		m.push("Performer", data.SongPerformer)
		m.push("Title", data.SongTitle)
	default:
		if err := m.pushPath(data.File, "File", ""); err != nil {
			return err
		}
	}
	if !data.IsSticker {
		m.push("Mime type", data.Mime)
	}
	if data.Duration != 0 {
		m.push("Duration", strconv.Itoa(data.Duration)+" sec.")
	}
	if data.Width != 0 && data.Height != 0 {
		m.push("Width", strconv.Itoa(data.Width))
		m.push("Height", strconv.Itoa(data.Height))
	}
	m.pushTTL("Self destruct period")
	return nil
}

// discardReasonString — закрытый набор причин; прочие значения дают
// пустую строку и поле молча опускается.
func discardReasonString(reason domain.CallDiscardReason) string {
	switch reason {
	case domain.CallDiscardBusy:
		return "Busy"
	case domain.CallDiscardDisconnect:
		return "Disconnect"
	case domain.CallDiscardHangup:
		return "Hangup"
	case domain.CallDiscardMissed:
		return "Missed"
	}
	return ""
}

func secureValueTypeString(t domain.SecureValueType) string {
	switch t {
	case domain.SecureValuePersonalDetails:
		return "Personal details"
	case domain.SecureValuePassport:
		return "Passport"
	case domain.SecureValueDriverLicense:
		return "Driver license"
	case domain.SecureValueIdentityCard:
		return "Identity card"
	case domain.SecureValueInternalPassport:
		return "Internal passport"
	case domain.SecureValueAddress:
		return "Address information"
	case domain.SecureValueUtilityBill:
		return "Utility bill"
	case domain.SecureValueBankStatement:
		return "Bank statement"
	case domain.SecureValueRentalAgreement:
		return "Rental agreement"
	case domain.SecureValuePassportRegistration:
		return "Passport registration"
	case domain.SecureValueTemporaryRegistration:
		return "Temporary registration"
	case domain.SecureValuePhone:
		return "Phone number"
	case domain.SecureValueEmail:
		return "Email"
	}
	return ""
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
