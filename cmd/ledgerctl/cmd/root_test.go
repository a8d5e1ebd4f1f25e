package cmd

import (
	"bytes"
	"testing"

	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Cleanup(func() { format = "" })
	resp := dto.TrialBalanceResponse{From: "2024-01-01", To: "2024-12-31", CurrencyCode: "AED"}
	resp.Totals.Debit, resp.Totals.Credit = "0.00", "0.00"

	var buf bytes.Buffer
	require.NoError(t, render(&buf, resp))
	assert.Contains(t, buf.String(), `"currencyCode": "AED"`)

	format = "csv"
	buf.Reset()
	require.NoError(t, render(&buf, resp))
	assert.Equal(t, "account_code,account_name,account_type,debit,credit,net,status\nTOTAL,,,0.00,0.00,,\n", buf.String())

	err := render(&buf, dto.PeriodResponse{})
	assert.Error(t, err)
}

func TestMigrateArgs(t *testing.T) {
	assert.NoError(t, migrateCmd.Args(migrateCmd, []string{"up"}))
	assert.NoError(t, migrateCmd.Args(migrateCmd, []string{"down"}))
	assert.Error(t, migrateCmd.Args(migrateCmd, []string{"sideways"}))
	assert.Error(t, migrateCmd.Args(migrateCmd, nil))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"migrate"},
		{"roles", "check"},
		{"post", "invoice"},
		{"post", "payment"},
		{"reverse"},
		{"report", "trial-balance"},
		{"report", "aging"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}
