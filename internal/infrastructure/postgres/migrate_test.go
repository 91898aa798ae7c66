package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdenYSentencias(t *testing.T) {
	ms, err := LoadMigrations()
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "001_catalogos.sql", ms[0].Name)
	assert.Equal(t, "002_operacion.sql", ms[1].Name)
	for _, m := range ms {
		for _, s := range m.Statements {
			assert.False(t, strings.HasPrefix(s, "--"), "%s: %q", m.Name, s)
			assert.NotEmpty(t, s)
		}
	}
	assert.True(t, strings.HasPrefix(ms[0].Statements[0], "CREATE TABLE IF NOT EXISTS suppliers"))
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("-- comentario\nCREATE TABLE a (x INT);\n\nCREATE INDEX i ON a(x);\n")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a(x)"}, stmts)
}

func TestWhere_PlaceholdersYPagina(t *testing.T) {
	var w where
	w.add("a = ?", 1)
	w.add("b <= ?", 2)
	assert.Equal(t, " WHERE a = $1 AND b <= $2", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", w.page(0, 5))
	assert.Nil(t, w.args[2], "limit 0 no limita")
	assert.Equal(t, 5, w.args[3])
}
