package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	out := run(t, "migrate", "--db", dbPath)
	assert.Contains(t, out, "0001")

	csvPath := filepath.Join(dir, "cards.csv")
	csv := "id,front,back,hanzi,pinyin,translation,example,example_tr,test\n" +
		"1,f1.png,b1.png,你好,nǐ hǎo,hello,你好吗,how are you,你好\n" +
		"2,f2.png,b2.png,谢谢,xiè xie,thanks,谢谢你,thank you,谢谢\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o644))

	out = run(t, "import-cards", csvPath, "--db", dbPath)
	assert.Contains(t, out, "processed=2 created=2 updated=0 skipped=0")

	id := strings.TrimSpace(run(t, "users", "add", "mei@example.com", "Mei", "--db", dbPath))
	assert.NotEmpty(t, id)

	out = run(t, "users", "list", "--db", dbPath)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "mei@example.com")
}
