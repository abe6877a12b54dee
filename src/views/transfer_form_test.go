package views

import (
	"bytes"
	"strings"
	"testing"

	"bankweb/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAccounts() []models.Account {
	return []models.Account{
		{ID: "a1", Name: "Checking Account", Type: models.AccountTypeChecking, Balance: decimal.NewFromInt(2500)},
		{ID: "a2", Name: "Savings Account", Type: models.AccountTypeSavings, Balance: decimal.NewFromInt(15000)},
	}
}

func TestNewTransferFormStartsInternal(t *testing.T) {
	f := NewTransferForm(sampleAccounts())

	assert.Equal(t, models.TransferInternal, f.Kind)
	assert.False(t, f.ShowNotes)
	assert.Nil(t, f.External)
	assert.Equal(t, 0, f.ExternalBuilds())
	require.NotNil(t, f.Dropdown)
	assert.Same(t, f.Dropdown, f.Recipient())
	require.Len(t, f.Dropdown.Options, 2)
	assert.Equal(t, "Checking Account ($2500.00)", f.Dropdown.Options[0].Label)
}

func TestTransferFormToggleKeepsIdentity(t *testing.T) {
	f := NewTransferForm(sampleAccounts())
	dropdown := f.Dropdown

	f.Select(models.TransferExternal)
	require.NotNil(t, f.External)
	external := f.External
	assert.Same(t, external, f.Recipient())
	assert.True(t, f.ShowNotes)

	f.Select(models.TransferInternal)
	assert.Same(t, dropdown, f.Dropdown)
	assert.Same(t, dropdown, f.Recipient())
	assert.False(t, f.ShowNotes)

	for i := 0; i < 3; i++ {
		f.Select(models.TransferExternal)
		assert.Same(t, external, f.Recipient())
		f.Select(models.TransferExternal)
		f.Select(models.TransferInternal)
		assert.Same(t, dropdown, f.Recipient())
	}
	assert.Equal(t, 1, f.ExternalBuilds())
}

func TestTransferFormUnknownKindIsInternal(t *testing.T) {
	f := NewTransferForm(nil)
	f.Select(models.TransferExternal)
	f.Select("wire")
	assert.Equal(t, models.TransferInternal, f.Kind)
	assert.False(t, f.IsExternal())
}

func renderTransfer(t *testing.T, f *TransferForm) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageTransfer, TransferPage{
		Page:        Page{Title: "Transfer", Username: "test"},
		Form:        f,
		Frequencies: models.Frequencies,
	}))
	return buf.String()
}

func TestRenderTransferStates(t *testing.T) {
	f := NewTransferForm(sampleAccounts())
	page := renderTransfer(t, f)
	slot := page[strings.Index(page, `<div id="recipientSlot">`):]
	slot = slot[:strings.Index(slot, "</div>")]
	assert.Contains(t, slot, `<select id="toAccount" name="toAccount">`)
	assert.Contains(t, page, `<div id="notesGroup" hidden>`)

	f.Select(models.TransferExternal)
	page = renderTransfer(t, f)
	slot = page[strings.Index(page, `<div id="recipientSlot">`):]
	slot = slot[:strings.Index(slot, "</div>")]
	assert.Contains(t, slot, `<input type="text" id="toAccount" name="toAccount"`)
	assert.Contains(t, page, `<div id="notesGroup">`)
	assert.Contains(t, page, `value="external" checked`)
	// the dropdown stays available for switching back
	assert.Contains(t, page, `<template id="internalRecipient"><select id="toAccount"`)
}
