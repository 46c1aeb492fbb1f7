package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendwise/internal/database"
)

func TestRebind(t *testing.T) {
	q := "SELECT id FROM expenses WHERE category = ? AND year_month = ?"

	pg := New(nil, database.Postgres)
	assert.Equal(t, "SELECT id FROM expenses WHERE category = $1 AND year_month = $2", pg.rebind(q))

	lite := New(nil, database.SQLite)
	assert.Equal(t, q, lite.rebind(q))
}
