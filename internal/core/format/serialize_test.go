package format

import (
	"bytes"
	"testing"
)

func TestSerializeKeyValue(t *testing.T) {
	t.Run("пустой список дает пустой результат", func(t *testing.T) {
		got := SerializeKeyValue(nil)
		if len(got) != 0 {
			t.Errorf("Ожидался пустой результат, получено %q", got)
		}
	})

	t.Run("однострочное значение", func(t *testing.T) {
		got := SerializeKeyValue([]KV{{Key: "Y", Value: "y"}})
		want := "Y: y\n"
		if string(got) != want {
			t.Errorf("Ожидалось %q, получено %q", want, got)
		}
	})

	t.Run("пары с пустым значением пропускаются целиком", func(t *testing.T) {
		got := SerializeKeyValue([]KV{
			{Key: "A", Value: "1"},
			{Key: "B", Value: ""},
			{Key: "C", Value: "3"},
		})
		want := "A: 1\nC: 3\n"
		if string(got) != want {
			t.Errorf("Ожидалось %q, получено %q", want, got)
		}
	})

	t.Run("порядок пар сохраняется", func(t *testing.T) {
		got := SerializeKeyValue([]KV{
			{Key: "Z", Value: "1"},
			{Key: "A", Value: "2"},
			{Key: "M", Value: "3"},
		})
		want := "Z: 1\nA: 2\nM: 3\n"
		if string(got) != want {
			t.Errorf("Ожидалось %q, получено %q", want, got)
		}
	})

	t.Run("многострочное значение дает цитатный блок", func(t *testing.T) {
		got := SerializeKeyValue([]KV{{Key: "X", Value: "a\nb\nc"}})
		want := "X:\n> a\n> b\n> c\n"
		if string(got) != want {
			t.Errorf("Ожидалось %q, получено %q", want, got)
		}
	})

	t.Run("значение с завершающим переводом строки", func(t *testing.T) {
		got := SerializeKeyValue([]KV{{Key: "X", Value: "a\nb\n"}})
		want := "X:\n> a\n> b\n"
		if string(got) != want {
			t.Errorf("Ожидалось %q, получено %q", want, got)
		}
	})

	t.Run("хвостовой CR перед LF отбрасывается", func(t *testing.T) {
		got := SerializeKeyValue([]KV{{Key: "X", Value: "a\r\nb"}})
		want := "X:\n> a\n> b\n"
		if string(got) != want {
			t.Errorf("Ожидалось %q, получено %q", want, got)
		}
	})

	t.Run("CR в середине строки сохраняется", func(t *testing.T) {
		got := SerializeKeyValue([]KV{{Key: "X", Value: "a\rb\nc"}})
		want := "X:\n> a\rb\n> c\n"
		if string(got) != want {
			t.Errorf("Ожидалось %q, получено %q", want, got)
		}
	})
}

func TestJoinList(t *testing.T) {
	sep := []byte("\n")

	t.Run("ноль блоков дает пустой результат", func(t *testing.T) {
		if got := JoinList(sep, nil); got != nil {
			t.Errorf("Ожидался nil, получено %q", got)
		}
	})

	t.Run("один блок возвращается без разделителей", func(t *testing.T) {
		single := [][]byte{[]byte("only")}
		got := JoinList(sep, single)
		if string(got) != "only" {
			t.Errorf("Ожидалось %q, получено %q", "only", got)
		}
	})

	t.Run("блоки соединяются ровно одним разделителем", func(t *testing.T) {
		got := JoinList(sep, [][]byte{[]byte("a"), []byte("b"), []byte("c")})
		want := "a\nb\nc"
		if string(got) != want {
			t.Errorf("Ожидалось %q, получено %q", want, got)
		}
	})

	t.Run("без ведущих и хвостовых разделителей", func(t *testing.T) {
		got := JoinList([]byte("--"), [][]byte{[]byte("x"), []byte("y")})
		if bytes.HasPrefix(got, []byte("--")) || bytes.HasSuffix(got, []byte("--")) {
			t.Errorf("Разделитель не должен обрамлять результат: %q", got)
		}
	})
}
