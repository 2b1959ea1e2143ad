package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"telegram-history-export/internal/adapters/exporter"
	"telegram-history-export/internal/adapters/source"
	"telegram-history-export/internal/cache"
	"telegram-history-export/internal/core/writer"
	"telegram-history-export/internal/domain"
	"telegram-history-export/internal/pkg/config"
	"telegram-history-export/internal/ports"
)

// RunExportUseCase инкапсулирует бизнес-логику одного запуска экспорта:
// разбор снапшота и прогон его через протокол фаз текстового экспорта.
type RunExportUseCase struct {
	cfg        *config.Config
	parser     ports.SnapshotParser
	cacheStore *cache.CacheStore
}

// NewRunExportUseCase создает новый экземпляр RunExportUseCase.
func NewRunExportUseCase(
	cfg *config.Config,
	parser ports.SnapshotParser,
	cacheStore *cache.CacheStore,
) *RunExportUseCase {
	return &RunExportUseCase{
		cfg:        cfg,
		parser:     parser,
		cacheStore: cacheStore,
	}
}

// RunExport выполняет экспорт снапшота в текстовые файлы.
// Повторная загрузка того же снапшота возвращает результат из кеша.
func (uc *RunExportUseCase) RunExport(ctx context.Context, filePath string) (domain.ExportStats, error) {
	fileHash, err := cache.CalculateFileHash(filePath)
	if err != nil {
		return domain.ExportStats{}, fmt.Errorf("не удалось вычислить хеш файла %s: %w", filePath, err)
	}

	// Проверка кеша по хешу снапшота
	if cachedItem, found := uc.cacheStore.Get(fileHash); found {
		slog.Info("Попадание в кеш для снапшота", "hash", fileHash)
		return cachedItem.Stats, nil
	}

	slog.Info("Обработка снапшота", "path", filePath)

	ds := source.NewFileSource(filePath)
	data, err := ds.Fetch()
	if err != nil {
		return domain.ExportStats{}, fmt.Errorf("не удалось извлечь данные из %s: %w", filePath, err)
	}

	snapshot, err := uc.parser.Parse(data)
	if err != nil {
		return domain.ExportStats{}, fmt.Errorf("не удалось разобрать снапшот из %s: %w", filePath, err)
	}
	slog.Info("Разобран снапшот", "path", filePath,
		"userpics", len(snapshot.Userpics),
		"contacts", len(snapshot.Contacts.List),
		"sessions", len(snapshot.Sessions.List),
		"dialogs", len(snapshot.Dialogs),
		"left_chats", len(snapshot.LeftChats))

	// Каждый снапшот получает свой подкаталог вывода по хешу.
	outputDir := uc.cfg.Export.Dir() + fileHash[:12] + string(os.PathSeparator)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return domain.ExportStats{}, fmt.Errorf("не удалось создать каталог вывода %s: %w", outputDir, err)
	}

	stats, err := uc.writeSnapshot(ctx, snapshot, outputDir)
	if err != nil {
		return domain.ExportStats{}, err
	}

	if uc.cfg.Export.Spreadsheet {
		se := exporter.NewSpreadsheetExporter(outputDir)
		if err := se.Export(snapshot.Contacts, snapshot.Sessions); err != nil {
			return domain.ExportStats{}, fmt.Errorf("не удалось сохранить таблицу: %w", err)
		}
	}

	// Кеширование окончательного результата
	ttl := uc.cfg.Processing.CacheTTL()
	uc.cacheStore.Put(fileHash, stats, ttl)
	slog.Info("Результат кеширован для снапшота", "hash", fileHash, "ttl", ttl.String())

	slog.Info("Экспорт успешно завершен", "output", stats.MainFilePath, "messages", stats.Messages)
	return stats, nil
}

// writeSnapshot прогоняет разобранный снапшот через протокол фаз записи.
func (uc *RunExportUseCase) writeSnapshot(ctx context.Context, snapshot *domain.Snapshot, outputDir string) (domain.ExportStats, error) {
	w := writer.NewTextWriter(nil)
	if err := w.Start(writer.Settings{
		Path:                outputDir,
		InternalLinksDomain: uc.cfg.Export.InternalLinksDomain,
	}); err != nil {
		return domain.ExportStats{}, err
	}

	if err := w.WritePersonal(snapshot.Personal); err != nil {
		return domain.ExportStats{}, err
	}

	if err := uc.writeUserpics(ctx, w, snapshot.Userpics); err != nil {
		return domain.ExportStats{}, err
	}

	if err := w.WriteContactsList(snapshot.Contacts); err != nil {
		return domain.ExportStats{}, err
	}
	if err := w.WriteSessionsList(snapshot.Sessions); err != nil {
		return domain.ExportStats{}, err
	}

	dialogSummaries, err := uc.writeDialogGroup(ctx, w, snapshot.Dialogs, dialogGroupMain)
	if err != nil {
		return domain.ExportStats{}, err
	}
	leftSummaries, err := uc.writeDialogGroup(ctx, w, snapshot.LeftChats, dialogGroupLeft)
	if err != nil {
		return domain.ExportStats{}, err
	}

	if err := w.Finish(); err != nil {
		return domain.ExportStats{}, err
	}

	return domain.ExportStats{
		OutputDir:    outputDir,
		MainFilePath: w.MainFilePath(),
		Userpics:     len(snapshot.Userpics),
		Contacts:     len(snapshot.Contacts.List),
		Sessions:     len(snapshot.Sessions.List),
		Messages:     w.MessagesWritten(),
		Dialogs:      dialogSummaries,
		LeftChats:    leftSummaries,
	}, nil
}

// writeUserpics пишет фотографии профиля постранично.
func (uc *RunExportUseCase) writeUserpics(ctx context.Context, w *writer.TextWriter, userpics []domain.Userpic) error {
	if err := w.WriteUserpicsStart(domain.UserpicsInfo{Count: len(userpics)}); err != nil {
		return err
	}
	size := uc.cfg.Export.SliceSize
	for start := 0; start < len(userpics); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + size
		if end > len(userpics) {
			end = len(userpics)
		}
		if err := w.WriteUserpicsSlice(domain.UserpicsSlice{List: userpics[start:end]}); err != nil {
			return err
		}
	}
	return w.WriteUserpicsEnd()
}

type dialogGroup int

const (
	dialogGroupMain dialogGroup = iota
	dialogGroupLeft
)

// writeDialogGroup пишет одну группу диалогов: оглавление, затем каждый
// диалог постранично. Пустая группа не оставляет следов в выводе.
func (uc *RunExportUseCase) writeDialogGroup(ctx context.Context, w *writer.TextWriter, dialogs []domain.DialogExport, group dialogGroup) ([]domain.DialogSummary, error) {
	info := domain.DialogsInfo{List: make([]domain.DialogInfo, 0, len(dialogs))}
	for _, dialog := range dialogs {
		info.List = append(info.List, dialog.Info)
	}

	start, end := w.WriteDialogsStart, w.WriteDialogsEnd
	chatStart, chatSlice, chatEnd := w.WriteDialogStart, w.WriteDialogSlice, w.WriteDialogEnd
	if group == dialogGroupLeft {
		start, end = w.WriteLeftChannelsStart, w.WriteLeftChannelsEnd
		chatStart, chatSlice, chatEnd = w.WriteLeftChannelStart, w.WriteLeftChannelSlice, w.WriteLeftChannelEnd
	}

	if err := start(info); err != nil {
		return nil, err
	}

	size := uc.cfg.Export.SliceSize
	summaries := make([]domain.DialogSummary, 0, len(dialogs))
	for i, dialog := range dialogs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := chatStart(dialog.Info); err != nil {
			return nil, err
		}
		for from := 0; from < len(dialog.Messages); from += size {
			to := from + size
			if to > len(dialog.Messages) {
				to = len(dialog.Messages)
			}
			slice := domain.MessagesSlice{List: dialog.Messages[from:to], Peers: dialog.Peers}
			if err := chatSlice(slice); err != nil {
				return nil, err
			}
		}
		if err := chatEnd(); err != nil {
			return nil, err
		}
		summaries = append(summaries, domain.DialogSummary{
			Name:     dialog.Info.Name,
			Type:     dialog.Info.Type,
			Messages: len(dialog.Messages),
			Path:     writer.ChatRelativePath(i, len(dialogs), dialog.Info) + "messages.txt",
		})
	}

	return summaries, end()
}
