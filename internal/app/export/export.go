package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"audiosense/internal/app/model"
)

// ToExcel writes transcription records to an xlsx file at outputFilePath.
func ToExcel(records []model.TranscriptionRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "File Name"
	headerRow.AddCell().Value = "Format"
	headerRow.AddCell().Value = "Segments"
	headerRow.AddCell().Value = "Audio Duration"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Transcription"
	headerRow.AddCell().Value = "Error Message"

	for _, rec := range records {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(rec.ID)
		row.AddCell().Value = rec.FileName
		row.AddCell().Value = rec.Format
		row.AddCell().Value = fmt.Sprint(rec.SegmentCount)
		row.AddCell().Value = fmt.Sprintf("%.2f", rec.AudioDuration)
		row.AddCell().Value = rec.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = rec.Transcription
		row.AddCell().Value = rec.ErrorMessage
	}

	return file.Save(outputFilePath)
}
