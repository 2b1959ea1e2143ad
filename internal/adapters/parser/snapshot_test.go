package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-history-export/internal/domain"
)

func TestJSONParser(t *testing.T) {
	p := NewJSONParser()

	t.Run("разбирает полный снапшот", func(t *testing.T) {
		data := []byte(`{
			"personal_information": {
				"first_name": "John",
				"last_name": "Smith",
				"phone_number": "79991234567",
				"username": "jsmith",
				"bio": "hello"
			},
			"profile_pictures": [
				{"date": "2023-05-06T07:08:09", "path": "profile_pictures/a.jpg", "width": 640, "height": 640},
				{}
			],
			"contacts": [
				{"first_name": "Jane", "phone_number": "15550001122", "date": "2022-01-02T03:04:05"}
			],
			"sessions": [
				{"last_active": "2023-01-01T00:00:00", "created": "2022-01-01T00:00:00", "ip": "10.0.0.1", "application_name": "Telegram Desktop"}
			],
			"peers": {
				"users": [
					{"id": 10, "first_name": "John", "last_name": "Smith"},
					{"id": 12, "first_name": "Game", "username": "gamebot", "is_bot": true}
				],
				"chats": [
					{"id": 20, "title": "Old Friends"}
				]
			},
			"chats": [
				{
					"name": "Old Friends",
					"type": "private_group",
					"messages": [
						{"id": 1, "date": "2023-02-01T03:04:05", "from_id": 10, "text": "hello"},
						{
							"id": 2,
							"date": "2023-02-01T03:05:05",
							"forwarded_from": {"kind": "chat", "id": 20},
							"reply_to_message_id": 1,
							"text": "fwd"
						}
					]
				}
			],
			"left_chats": [
				{"name": "Gone", "type": "public_channel", "only_my_messages": true, "messages": []}
			]
		}`)

		snapshot, err := p.Parse(data)
		require.NoError(t, err)

		assert.Equal(t, "John", snapshot.Personal.User.FirstName)
		assert.Equal(t, "hello", snapshot.Personal.Bio)

		require.Len(t, snapshot.Userpics, 2)
		assert.Equal(t, time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC), snapshot.Userpics[0].Date)
		assert.Equal(t, "profile_pictures/a.jpg", snapshot.Userpics[0].Image.File.RelativePath)
		assert.True(t, snapshot.Userpics[1].Date.IsZero(), "пустая дата означает удаленную фотографию")

		require.Len(t, snapshot.Contacts.List, 1)
		assert.Equal(t, "Jane", snapshot.Contacts.List[0].FirstName)

		require.Len(t, snapshot.Sessions.List, 1)
		assert.Equal(t, "Telegram Desktop", snapshot.Sessions.List[0].ApplicationName)

		require.Len(t, snapshot.Dialogs, 1)
		dialog := snapshot.Dialogs[0]
		assert.Equal(t, domain.DialogPrivateGroup, dialog.Info.Type)
		require.Len(t, dialog.Messages, 2)
		assert.Equal(t, int64(10), dialog.Messages[0].FromID)
		assert.Equal(t, domain.ChatPeerID(20), dialog.Messages[1].ForwardedFromID)
		assert.Equal(t, int64(1), dialog.Messages[1].ReplyToMsgID)

		// Таблица пиров общая для всех диалогов
		peer, ok := dialog.Peers[domain.UserPeerID(10)]
		require.True(t, ok)
		assert.Equal(t, "John Smith", peer.Name())

		require.Len(t, snapshot.LeftChats, 1)
		assert.Equal(t, domain.DialogPublicChannel, snapshot.LeftChats[0].Info.Type)
		assert.True(t, snapshot.LeftChats[0].Info.OnlyMyMessages)
	})

	t.Run("разбирает сервисные события", func(t *testing.T) {
		data := []byte(`{
			"chats": [{"name": "G", "type": "private_group", "messages": [
				{"id": 1, "date": "2023-02-01T03:04:05", "from_id": 10,
				 "action": {"type": "chat_create", "title": "G", "members": [10, 11]}},
				{"id": 2, "date": "2023-02-01T03:04:06", "from_id": 10,
				 "action": {"type": "phone_call", "duration": 65, "discard_reason": "hangup"}},
				{"id": 3, "date": "2023-02-01T03:04:07",
				 "action": {"type": "send_passport_values", "value_types": ["passport", "phone"]}}
			]}]
		}`)

		snapshot, err := p.Parse(data)
		require.NoError(t, err)
		require.Len(t, snapshot.Dialogs, 1)
		messages := snapshot.Dialogs[0].Messages
		require.Len(t, messages, 3)

		create, ok := messages[0].Action.Content.(*domain.ActionChatCreate)
		require.True(t, ok)
		assert.Equal(t, []int64{10, 11}, create.UserIDs)

		call, ok := messages[1].Action.Content.(*domain.ActionPhoneCall)
		require.True(t, ok)
		assert.Equal(t, 65, call.Duration)
		assert.Equal(t, domain.CallDiscardHangup, call.DiscardReason)

		passport, ok := messages[2].Action.Content.(*domain.ActionSecureValuesSent)
		require.True(t, ok)
		assert.Equal(t, []domain.SecureValueType{domain.SecureValuePassport, domain.SecureValuePhone}, passport.Types)
	})

	t.Run("разбирает медиа", func(t *testing.T) {
		data := []byte(`{
			"chats": [{"name": "G", "type": "personal_chat", "messages": [
				{"id": 1, "date": "2023-02-01T03:04:05",
				 "media": {"type": "photo", "file": {"path": "photos/a.jpg"}, "width": 640, "height": 480}, "ttl": 30},
				{"id": 2, "date": "2023-02-01T03:04:06",
				 "media": {"type": "document", "file": {"skip_reason": "file_size"}, "is_sticker": true, "sticker_emoji": "X"}},
				{"id": 3, "date": "2023-02-01T03:04:07",
				 "media": {"type": "unsupported"}}
			]}]
		}`)

		snapshot, err := p.Parse(data)
		require.NoError(t, err)
		messages := snapshot.Dialogs[0].Messages

		photo, ok := messages[0].Media.Content.(*domain.Photo)
		require.True(t, ok)
		assert.Equal(t, "photos/a.jpg", photo.Image.File.RelativePath)
		assert.Equal(t, 30, messages[0].Media.TTL)

		document, ok := messages[1].Media.Content.(*domain.Document)
		require.True(t, ok)
		assert.True(t, document.IsSticker)
		assert.Equal(t, domain.SkipFileSize, document.File.SkipReason)

		_, ok = messages[2].Media.Content.(*domain.UnsupportedMedia)
		assert.True(t, ok)
	})

	t.Run("неизвестный тип события дает ошибку", func(t *testing.T) {
		data := []byte(`{"chats": [{"name": "G", "type": "personal_chat", "messages": [
			{"id": 1, "date": "2023-02-01T03:04:05", "action": {"type": "mystery"}}
		]}]}`)
		_, err := p.Parse(data)
		assert.Error(t, err)
	})

	t.Run("неизвестный тип медиа дает ошибку", func(t *testing.T) {
		data := []byte(`{"chats": [{"name": "G", "type": "personal_chat", "messages": [
			{"id": 1, "date": "2023-02-01T03:04:05", "media": {"type": "hologram"}}
		]}]}`)
		_, err := p.Parse(data)
		assert.Error(t, err)
	})

	t.Run("файл без пути и причины пропуска дает ошибку", func(t *testing.T) {
		data := []byte(`{"chats": [{"name": "G", "type": "personal_chat", "messages": [
			{"id": 1, "date": "2023-02-01T03:04:05", "media": {"type": "document", "file": {}}}
		]}]}`)
		_, err := p.Parse(data)
		assert.Error(t, err)
	})

	t.Run("неизвестный тип диалога терпим", func(t *testing.T) {
		data := []byte(`{"chats": [{"name": "G", "type": "future_chat", "messages": []}]}`)
		snapshot, err := p.Parse(data)
		require.NoError(t, err)
		assert.Equal(t, domain.DialogUnknown, snapshot.Dialogs[0].Info.Type)
	})

	t.Run("неизвестная причина завершения звонка терпима", func(t *testing.T) {
		data := []byte(`{"chats": [{"name": "G", "type": "personal_chat", "messages": [
			{"id": 1, "date": "2023-02-01T03:04:05", "action": {"type": "phone_call", "discard_reason": "asteroid"}}
		]}]}`)
		snapshot, err := p.Parse(data)
		require.NoError(t, err)
		call := snapshot.Dialogs[0].Messages[0].Action.Content.(*domain.ActionPhoneCall)
		assert.Equal(t, domain.CallDiscardUnknown, call.DiscardReason)
	})

	t.Run("недопустимая дата дает ошибку", func(t *testing.T) {
		data := []byte(`{"contacts": [{"first_name": "J", "date": "yesterday"}]}`)
		_, err := p.Parse(data)
		assert.Error(t, err)
	})

	t.Run("некорректный JSON дает ошибку", func(t *testing.T) {
		_, err := p.Parse([]byte(`{`))
		assert.Error(t, err)
	})
}
