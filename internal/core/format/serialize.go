// Package format реализует каноничную текстовую сериализацию записей
// "метка: значение" формата экспорта.
package format

import (
	"bytes"
	"strings"
)

// LineBreak — перевод строки формата. Используется единообразно
// во всем выводе одного запуска экспорта.
const LineBreak = "\n"

// KV — одна пара "метка, значение".
type KV struct {
	Key   string
	Value string
}

// SerializeKeyValue сериализует упорядоченный список пар в один блок.
// Пары с пустым значением пропускаются целиком; порядок остальных
// сохраняется в точности. Однострочное значение дает "метка: значение",
// многострочное — "метка:" и цитатный блок с префиксом "> " на каждой строке.
func SerializeKeyValue(pairs []KV) []byte {
	var buf bytes.Buffer
	for _, kv := range pairs {
		if kv.Value == "" {
			continue
		}
		buf.WriteString(kv.Key)
		if strings.IndexByte(kv.Value, '\n') >= 0 {
			buf.WriteString(":")
			buf.WriteString(LineBreak)
			serializeMultiline(&buf, kv.Value)
		} else {
			buf.WriteString(": ")
			buf.WriteString(kv.Value)
			buf.WriteString(LineBreak)
		}
	}
	return buf.Bytes()
}

// serializeMultiline пишет значение построчно в цитатном стиле,
// включая завершающую неполную строку. Хвостовой '\r' перед '\n'
// отбрасывается, чтобы не задваивать переводы строк из чужих систем.
func serializeMultiline(buf *bytes.Buffer, value string) {
	for {
		i := strings.IndexByte(value, '\n')
		line := value
		if i >= 0 {
			line = strings.TrimSuffix(value[:i], "\r")
		}
		buf.WriteString("> ")
		buf.WriteString(line)
		buf.WriteString(LineBreak)
		if i < 0 || i+1 >= len(value) {
			return
		}
		value = value[i+1:]
	}
}

// JoinList соединяет блоки разделителем: ноль блоков — пустой результат,
// один блок — он сам, без ведущих и хвостовых разделителей.
func JoinList(separator []byte, list [][]byte) []byte {
	if len(list) == 0 {
		return nil
	}
	if len(list) == 1 {
		return list[0]
	}
	return bytes.Join(list, separator)
}
