package menu

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDispatchesUntilExit(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n2\n1\n3\n"), &out)

	var calls []Option
	exited := false
	d := New("Store", []Entry{
		{Option: ListProducts, Action: func() { calls = append(calls, ListProducts) }},
		{Option: ViewCart, Action: func() { calls = append(calls, ViewCart) }},
		{Option: Exit, Action: func() { exited = true }},
	}, p, &out)

	require.Equal(t, Running, d.State())
	require.NoError(t, d.Run())

	assert.Equal(t, []Option{ListProducts, ViewCart, ListProducts}, calls)
	assert.True(t, exited)
	assert.Equal(t, Exited, d.State())
	assert.Contains(t, out.String(), "1. List products")
	assert.Contains(t, out.String(), "3. Exit")
}

func TestRunNumbersFollowEntryOrder(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\n"), &out)

	d := New("Roles", []Entry{{Option: LoginUser}, {Option: Exit}}, p, &out)
	require.NoError(t, d.Run())

	assert.Contains(t, out.String(), "1. User")
	assert.Contains(t, out.String(), "2. Exit")
}

func TestRunRepromptsOnInvalidSelection(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("abc\n0\n9\n\n2\n"), &out)

	listed := 0
	d := New("Store", []Entry{
		{Option: ListProducts, Action: func() { listed++ }},
		{Option: Exit},
	}, p, &out)
	require.NoError(t, d.Run())

	assert.Zero(t, listed)
	assert.Equal(t, 4, strings.Count(out.String(), "Enter a whole number between 1 and 2."))
}

func TestRunReturnsEOF(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n"), &out)

	d := New("Store", []Entry{{Option: ListProducts, Action: func() {}}, {Option: Exit}}, p, &out)
	err := d.Run()

	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, Running, d.State())
}

func TestRunEmptyMenuExits(t *testing.T) {
	d := New("Nothing", nil, NewPrompter(strings.NewReader(""), io.Discard), io.Discard)
	require.NoError(t, d.Run())
	assert.Equal(t, Exited, d.State())
}

func TestOptionLabels(t *testing.T) {
	assert.Equal(t, "Buy product", BuyProduct.String())
	assert.Equal(t, "Unknown", Option(99).String())
	assert.True(t, Exit.Terminal())
	assert.False(t, ClearCart.Terminal())
}
