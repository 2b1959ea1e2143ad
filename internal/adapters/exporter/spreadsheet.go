package exporter

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"telegram-history-export/internal/domain"
)

// SpreadsheetExporter пишет contacts.xlsx рядом с текстовым экспортом:
// лист контактов и лист сеансов. Дополнительный формат для тех, кто
// разбирает выгрузку табличными инструментами.
type SpreadsheetExporter struct {
	dir string
}

// NewSpreadsheetExporter создает экспортер, пишущий в указанный каталог.
func NewSpreadsheetExporter(dir string) *SpreadsheetExporter {
	return &SpreadsheetExporter{dir: dir}
}

// Export сохраняет contacts.xlsx; пустые списки дают пустые листы.
func (e *SpreadsheetExporter) Export(contacts domain.ContactsList, sessions domain.SessionsList) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.fillContacts(f, contacts); err != nil {
		return err
	}
	if err := e.fillSessions(f, sessions); err != nil {
		return err
	}
	// Лист по умолчанию заменяется листом контактов.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("exporter: delete default sheet: %w", err)
	}

	path := filepath.Join(e.dir, "contacts.xlsx")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("exporter: save %s: %w", path, err)
	}
	return nil
}

func (e *SpreadsheetExporter) fillContacts(f *excelize.File, contacts domain.ContactsList) error {
	const sheet = "Contacts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("exporter: create sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(index)

	headers := []string{"First name", "Last name", "Phone number", "Date"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, idx := range domain.SortedContactsIndices(contacts) {
		contact := contacts.List[idx]
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row+2), contact.FirstName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row+2), contact.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row+2), domain.FormatPhoneNumber(contact.PhoneNumber))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row+2), domain.FormatDateTime(contact.Date))
	}
	return nil
}

func (e *SpreadsheetExporter) fillSessions(f *excelize.File, sessions domain.SessionsList) error {
	const sheet = "Sessions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("exporter: create sheet %s: %w", sheet, err)
	}

	headers := []string{"Last active", "IP", "Country", "Region", "Application", "Version", "Device", "Platform", "System", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, session := range sessions.List {
		row := i + 2
		values := []string{
			domain.FormatDateTime(session.LastActive),
			session.IP,
			session.Country,
			session.Region,
			session.ApplicationName,
			session.ApplicationVersion,
			session.DeviceModel,
			session.Platform,
			session.SystemVersion,
			domain.FormatDateTime(session.Created),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}
	return nil
}
