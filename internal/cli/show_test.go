package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAccountsListsLoadedAccounts(t *testing.T) {
	dir := t.TempDir()
	writeModelFiles(t, dir)
	setGlobalModelDir(t, dir)

	cmd := NewShowAccountsCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "revenue")
}

func TestShowPeriodsListsLoadedPeriods(t *testing.T) {
	dir := t.TempDir()
	writeModelFiles(t, dir)
	setGlobalModelDir(t, dir)

	cmd := NewShowPeriodsCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "2024")
}

func TestShowValuesPlainPrintsMatrix(t *testing.T) {
	dir := t.TempDir()
	writeModelFiles(t, dir)
	setGlobalModelDir(t, dir)

	cmd := NewShowValuesCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--plain", "--periods", "1"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "revenue")
}
