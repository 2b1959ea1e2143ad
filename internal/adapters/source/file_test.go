package source

import (
	"os"
	"testing"
)

func TestFileSource(t *testing.T) {
	t.Run("NewFileSource создает корректный экземпляр", func(t *testing.T) {
		source := NewFileSource("snapshot.json")
		if source == nil {
			t.Error("Ожидался экземпляр FileSource, получен nil")
		}
	})

	t.Run("Fetch возвращает ошибку для пустого пути к файлу", func(t *testing.T) {
		source := &FileSource{filePath: ""}

		data, err := source.Fetch()
		if err == nil {
			t.Error("Ожидалась ошибка для пустого пути к файлу, получено nil")
		}

		if data != nil {
			t.Error("Ожидались nil данные для пустого пути к файлу, получены данные")
		}
	})

	t.Run("Fetch возвращает ошибку для несуществующего файла", func(t *testing.T) {
		source := &FileSource{filePath: "non_existing_file.json"}

		data, err := source.Fetch()
		if err == nil {
			t.Error("Ожидалась ошибка для несуществующего файла, получено nil")
		}

		if data != nil {
			t.Error("Ожидались nil данные для несуществующего файла, получены данные")
		}
	})

	t.Run("Fetch возвращает данные для существующего файла", func(t *testing.T) {
		// Создаем временный файл для тестирования
		testData := []byte(`{"personal_information": {"first_name": "John"}}`)
		tmpfile, err := os.CreateTemp("", "snapshot_*.json")
		if err != nil {
			t.Fatal("Не удалось создать временный файл")
		}
		defer os.Remove(tmpfile.Name()) // Очистка

		if _, err := tmpfile.Write(testData); err != nil {
			t.Fatal("Не удалось записать во временный файл")
		}
		if err := tmpfile.Close(); err != nil {
			t.Fatal("Не удалось закрыть временный файл")
		}

		source := &FileSource{filePath: tmpfile.Name()}

		data, err := source.Fetch()
		if err != nil {
			t.Errorf("Неожиданная ошибка: %v", err)
		}

		if string(data) != string(testData) {
			t.Errorf("Ожидались данные '%s', получено '%s'", string(testData), string(data))
		}
	})
}
