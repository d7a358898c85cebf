package sqlstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestDialectFormat(t *testing.T) {
	pg := Dialect{Bun: pgdialect.New()}
	assert.Equal(t, "SELECT * FROM sales WHERE id = 7 AND note = 'it''s' LIMIT 3",
		pg.Format("SELECT * FROM sales WHERE id = ? AND note = ? LIMIT ?", int64(7), "it's", 3))

	lite := Dialect{Bun: sqlitedialect.New()}
	assert.Equal(t, "SELECT 1 WHERE status IN ('pending', 'sent')",
		lite.Format("SELECT 1 WHERE status IN ("+placeholders(2)+")", "pending", "sent"))
	assert.Equal(t, `SELECT 1 WHERE name LIKE '%a\_b%' ESCAPE '\'`,
		lite.Format(`SELECT 1 WHERE name LIKE ? ESCAPE '\'`, "%"+escapeLike("a_b")+"%"))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestForUpdate(t *testing.T) {
	assert.Equal(t, "SELECT 1 FOR UPDATE", Dialect{LockSuffix: "FOR UPDATE"}.forUpdate("SELECT 1"))
	assert.Equal(t, "SELECT 1", Dialect{}.forUpdate("SELECT 1"))
}

func TestIsUniqueViolation(t *testing.T) {
	errDup := errors.New("dup")
	d := Dialect{UniqueViolation: func(err error) bool { return errors.Is(err, errDup) }}

	assert.True(t, d.isUniqueViolation(errDup))
	assert.False(t, d.isUniqueViolation(errors.New("other")))
	assert.False(t, d.isUniqueViolation(nil))
	assert.False(t, Dialect{}.isUniqueViolation(errDup))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\`, escapeLike(`50% off_now \`))
}
