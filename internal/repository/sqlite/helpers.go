package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}

// decodeWrongCounts reads minigame_wrong_count. Older rows hold a single
// number shared by every mini-game instead of a per-game object.
func decodeWrongCounts(raw string) models.WrongCounts {
	out := models.WrongCounts{}.Clone()
	res := gjson.Parse(raw)
	switch {
	case res.Type == gjson.Number:
		n := nonNegative(res.Int())
		for _, g := range models.MiniGameTypes {
			out[g] = n
		}
	case res.IsObject():
		for _, g := range models.MiniGameTypes {
			v := res.Get(string(g))
			if v.Exists() {
				out[g] = nonNegative(v.Int())
			}
		}
	}
	return out
}

func encodeWrongCounts(w models.WrongCounts) (string, error) {
	doc := "{}"
	for _, g := range models.MiniGameTypes {
		var err error
		if doc, err = sjson.Set(doc, string(g), w.Get(g)); err != nil {
			return "", err
		}
	}
	return doc, nil
}

// decodeIDs reads a JSON id list, dropping anything that is not an integer.
func decodeIDs(raw string) []int64 {
	var ids []int64
	for _, v := range gjson.Parse(raw).Array() {
		switch v.Type {
		case gjson.Number:
			if float64(v.Int()) == v.Num {
				ids = append(ids, v.Int())
			}
		case gjson.String:
			if id, err := strconv.ParseInt(v.Str, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func encodeIDs(ids []int64) (string, error) {
	doc := "[]"
	for _, id := range ids {
		var err error
		if doc, err = sjson.Set(doc, "-1", id); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func decodeStrings(raw string) []string {
	var out []string
	for _, v := range gjson.Parse(raw).Array() {
		if v.Type == gjson.String {
			out = append(out, v.Str)
		}
	}
	return out
}

func encodeStrings(values []string) (string, error) {
	doc := "[]"
	for _, s := range values {
		var err error
		if doc, err = sjson.Set(doc, "-1", s); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func decodeInts(raw string) []int {
	ids := decodeIDs(raw)
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out
}

func encodeInts(values []int) (string, error) {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		ids = append(ids, int64(v))
	}
	return encodeIDs(ids)
}

func nonNegative(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
