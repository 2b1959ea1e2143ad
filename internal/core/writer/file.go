package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"telegram-history-export/internal/ports"
)

// DirOpener создает дозаписываемые файлы внутри базового каталога экспорта.
type DirOpener struct {
	Base string
}

// Open возвращает Appender для относительного пути. Файл и его каталоги
// создаются лениво, при первой записи.
func (o DirOpener) Open(relativePath string) (ports.Appender, error) {
	if relativePath == "" {
		return nil, fmt.Errorf("writer: empty relative path")
	}
	return &appendFile{path: filepath.Join(o.Base, filepath.FromSlash(relativePath))}, nil
}

// appendFile — файл, открываемый на дозапись при первом WriteBlock.
type appendFile struct {
	path    string
	file    *os.File
	written int64
}

func (f *appendFile) WriteBlock(data []byte) error {
	if f.file == nil {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return fmt.Errorf("writer: create directory for %s: %w", f.path, err)
		}
		file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("writer: open %s: %w", f.path, err)
		}
		f.file = file
	}
	n, err := f.file.Write(data)
	f.written += int64(n)
	if err != nil {
		return fmt.Errorf("writer: write %s: %w", f.path, err)
	}
	return nil
}

func (f *appendFile) Empty() bool {
	return f.written == 0
}

func (f *appendFile) Close() error {
	if f.file == nil {
		return nil
	}
	file := f.file
	f.file = nil
	if err := file.Close(); err != nil {
		return fmt.Errorf("writer: close %s: %w", f.path, err)
	}
	return nil
}
