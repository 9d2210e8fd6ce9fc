package repository_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaPath = "../../../migrations/0001_init.sql"

// tableColumns returns the column definitions of one CREATE TABLE block
func tableColumns(t *testing.T, schema, table string) map[string]string {
	re := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS ` + table + ` \((.*?)\n\);`)
	m := re.FindStringSubmatch(schema)
	require.Len(t, m, 2, "table %s not found", table)

	cols := map[string]string{}
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSuffix(strings.TrimSpace(line), ",")
		if fields := strings.Fields(line); len(fields) > 1 {
			cols[fields[0]] = line
		}
	}
	return cols
}

func TestSchema_TransactionHashesAreUnique(t *testing.T) {
	raw, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	schema := string(raw)

	for _, table := range []string{"executions", "transfers"} {
		t.Run(table, func(t *testing.T) {
			cols := tableColumns(t, schema, table)
			require.Contains(t, cols, "tx_hash")
			assert.Contains(t, cols["tx_hash"], "NOT NULL UNIQUE")
		})
	}

	assert.NotContains(t, schema, "INDEX IF NOT EXISTS idx_transfers_tx_hash",
		"the unique constraint already indexes the hash")
}

func TestSchema_ExecutionPerPayment(t *testing.T) {
	raw, err := os.ReadFile(schemaPath)
	require.NoError(t, err)

	cols := tableColumns(t, string(raw), "executions")
	assert.Contains(t, cols["payment_id"], "UNIQUE")

	claims := tableColumns(t, string(raw), "execution_claims")
	assert.Contains(t, claims["payment_id"], "PRIMARY KEY")
}
