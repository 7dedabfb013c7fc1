// Package importer loads the card catalog from spreadsheets.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository"
	"github.com/xuri/excelize/v2"
)

// Config maps spreadsheet columns (letters) to card fields.
type Config struct {
	IDColumn                 string
	FrontImageColumn         string
	BackImageColumn          string
	HanziColumn              string
	PinyinColumn             string
	TranslationColumn        string
	ExampleColumn            string
	ExampleTranslationColumn string
	TestSentenceColumn       string
	SheetName                string // empty means the first sheet
	StartRow                 int    // 1-based; rows above it are headers
}

func DefaultConfig() Config {
	return Config{
		IDColumn:                 "A",
		FrontImageColumn:         "B",
		BackImageColumn:          "C",
		HanziColumn:              "D",
		PinyinColumn:             "E",
		TranslationColumn:        "F",
		ExampleColumn:            "G",
		ExampleTranslationColumn: "H",
		TestSentenceColumn:       "I",
		StartRow:                 2,
	}
}

// Result counts what an import did. Row errors do not stop the import.
type Result struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

type Importer struct {
	cards  repository.CardRepository
	config Config
	now    func() time.Time
}

func New(cards repository.CardRepository, config Config) *Importer {
	return &Importer{cards: cards, config: config, now: time.Now}
}

// ImportFile picks the reader by extension: .csv or any excel format.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return im.ImportCSV(ctx, f)
	}
	return im.ImportExcel(ctx, f)
}

func (im *Importer) ImportExcel(ctx context.Context, r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheet := im.config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return im.importRows(ctx, rows)
}

func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	return im.importRows(ctx, rows)
}

func (im *Importer) importRows(ctx context.Context, rows [][]string) (*Result, error) {
	log := logger.FromContext(ctx).WithPrefix("importer")
	result := &Result{Errors: make([]string, 0)}

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < im.config.StartRow {
			continue
		}
		if isBlank(row) {
			continue
		}
		result.TotalProcessed++

		card, err := im.parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		created, err := im.cards.Upsert(ctx, card)
		if err != nil {
			// A store failure will repeat for every row.
			return result, errors.Wrapf(err, "row %d", rowNum)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	log.Info("import finished: processed=%d created=%d updated=%d skipped=%d",
		result.TotalProcessed, result.Created, result.Updated, result.Skipped)
	return result, nil
}

func (im *Importer) parseRow(row []string) (models.Card, error) {
	cell := func(col string) (string, error) {
		if col == "" {
			return "", nil
		}
		idx, err := excelize.ColumnNameToNumber(col)
		if err != nil {
			return "", err
		}
		if idx-1 < len(row) {
			return strings.TrimSpace(row[idx-1]), nil
		}
		return "", nil
	}

	var fields [9]string
	for i, col := range []string{
		im.config.IDColumn, im.config.FrontImageColumn, im.config.BackImageColumn,
		im.config.HanziColumn, im.config.PinyinColumn, im.config.TranslationColumn,
		im.config.ExampleColumn, im.config.ExampleTranslationColumn, im.config.TestSentenceColumn,
	} {
		v, err := cell(col)
		if err != nil {
			return models.Card{}, errors.Wrapf(err, "column %q", col)
		}
		fields[i] = v
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id <= 0 {
		return models.Card{}, fmt.Errorf("invalid id %q", fields[0])
	}
	if fields[3] == "" {
		return models.Card{}, fmt.Errorf("hanzi cannot be empty")
	}

	return models.Card{
		ID:                 id,
		FrontImageURL:      fields[1],
		BackImageURL:       fields[2],
		Hanzi:              fields[3],
		Pinyin:             fields[4],
		Translation:        fields[5],
		Example:            fields[6],
		ExampleTranslation: fields[7],
		TestSentence:       fields[8],
		CreatedAt:          im.now().UTC(),
	}, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
