package importer_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/importer"
	"github.com/vytor/nihaocards/internal/repository/sqlite"
	"github.com/vytor/nihaocards/internal/testutil"
	"github.com/xuri/excelize/v2"
)

func TestImportCSV(t *testing.T) {
	sqlDB := testutil.NewTestDB(t)
	defer testutil.MustClose(t, sqlDB)
	cards := sqlite.NewCardRepository(sqlDB)
	im := importer.New(cards, importer.DefaultConfig())

	csvData := strings.Join([]string{
		"id,front,back,hanzi,pinyin,translation,example,example_translation,test",
		"1,f1.png,b1.png,猫,māo,แมว,我有一只猫,ฉันมีแมวหนึ่งตัว,I have a cat",
		"2,,,狗,gǒu,หมา,,,",
		",,,,,,,,",
		"x,,,鸟,niǎo,นก,,,",
		"3,,,,sān,สาม,,,",
	}, "\n")

	res, err := im.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 4, res.TotalProcessed)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "row 5")

	cat, err := cards.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "I have a cat", cat.TestSentence)
	assert.Equal(t, "f1.png", cat.FrontImageURL)

	res, err = im.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 2, res.Updated)
}

func TestImportFile_Excel(t *testing.T) {
	sqlDB := testutil.NewTestDB(t)
	defer testutil.MustClose(t, sqlDB)
	cards := sqlite.NewCardRepository(sqlDB)

	path := filepath.Join(t.TempDir(), "cards.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"id", "front", "back", "hanzi", "pinyin", "translation"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{10, "", "", "书", "shū", "หนังสือ"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{11, "", "", "水", "shuǐ", "น้ำ"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := importer.New(cards, importer.DefaultConfig()).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Empty(t, res.Errors)

	list, err := cards.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "书", list[0].Hanzi)
	assert.Equal(t, "shuǐ", list[1].Pinyin)
}

func TestImportFile_Missing(t *testing.T) {
	_, err := importer.New(nil, importer.DefaultConfig()).ImportFile(context.Background(), "/nonexistent/cards.csv")
	assert.Error(t, err)
}
