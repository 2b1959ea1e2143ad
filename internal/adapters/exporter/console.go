package exporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"telegram-history-export/internal/core/render"
	"telegram-history-export/internal/domain"
)

// ConsoleExporter печатает сводку завершенного экспорта в виде таблицы.
type ConsoleExporter struct {
	out io.Writer
}

// NewConsoleExporter создает новый экземпляр ConsoleExporter.
func NewConsoleExporter(out io.Writer) *ConsoleExporter {
	return &ConsoleExporter{out: out}
}

// Export выводит сводную таблицу диалогов и итоговые счетчики.
func (e *ConsoleExporter) Export(stats domain.ExportStats) error {
	fmt.Fprintln(e.out, "--- Export Summary ---")
	fmt.Fprintf(e.out, "Output: %s\n", stats.MainFilePath)
	fmt.Fprintf(e.out, "Userpics: %d, contacts: %d, sessions: %d, messages: %d\n",
		stats.Userpics, stats.Contacts, stats.Sessions, stats.Messages)

	if len(stats.Dialogs) > 0 {
		fmt.Fprintln(e.out, "Chats:")
		e.printDialogTable(stats.Dialogs)
	}
	if len(stats.LeftChats) > 0 {
		fmt.Fprintln(e.out, "Left chats:")
		e.printDialogTable(stats.LeftChats)
	}
	return nil
}

func (e *ConsoleExporter) printDialogTable(dialogs []domain.DialogSummary) {
	nameWidth := 0
	for _, dialog := range dialogs {
		if w := runewidth.StringWidth(displayName(dialog)); w > nameWidth {
			nameWidth = w
		}
	}
	for i, dialog := range dialogs {
		name := displayName(dialog)
		fmt.Fprintf(e.out, "%3d. %s%s  %-16s %6d  %s\n",
			i+1,
			name,
			padding(name, nameWidth),
			render.DialogTypeString(dialog.Type),
			dialog.Messages,
			dialog.Path,
		)
	}
}

func displayName(dialog domain.DialogSummary) string {
	return render.DialogName(dialog.Name, dialog.Type)
}

// padding выравнивает колонку по видимой ширине строки:
// CJK-символы занимают две ячейки терминала.
func padding(s string, colWidth int) string {
	need := colWidth - runewidth.StringWidth(s)
	if need <= 0 {
		return ""
	}
	return strings.Repeat(" ", need)
}
