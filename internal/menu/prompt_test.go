package menu

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterInt(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("x\n-1\n  7 \n"), &out)

	n, err := p.Int("Quantity", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 3, strings.Count(out.String(), "Quantity: "))
}

func TestPrompterDecimal(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("diez\n-2\n10.50\n"), &out)

	d, err := p.Decimal("Price")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, 2, strings.Count(out.String(), "Enter a number of zero or more"))
}

func TestPrompterText(t *testing.T) {
	p := NewPrompter(strings.NewReader("\n  Gorra roja \n"), io.Discard)

	v, err := p.Text("Description")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = p.Required("Name")
	require.NoError(t, err)
	assert.Equal(t, "Gorra roja", v)
}

func TestPrompterRequiredRepromptsOnBlank(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("   \nGorras\n"), &out)

	v, err := p.Required("Name")
	require.NoError(t, err)
	assert.Equal(t, "Gorras", v)
	assert.Contains(t, out.String(), "A value is required.")
}

func TestPrompterEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("abc"), io.Discard)

	_, err := p.Int("Option", 1, 2)
	require.ErrorIs(t, err, io.EOF)

	_, err = p.Text("More")
	require.ErrorIs(t, err, io.EOF)
}
