package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBillLine(t *testing.T) {
	assert.Equal(t, "Spent 790 on Pizza", normalizeBillLine("Spent 790 on Pizza"))
	assert.Equal(t, "Spent 1250 on Groceries", normalizeBillLine("spent 1,250 on Groceries."))
	assert.Equal(t, "Spent 340 on Taxi", normalizeBillLine("  I think you Spent 340.40 on Taxi \n"))
	assert.Equal(t, "", normalizeBillLine("no purchase found"))
	assert.Equal(t, "", normalizeBillLine("spent nothing on anything"))
}

func TestBillLineFromFields(t *testing.T) {
	assert.Equal(t, "Spent 790 on Pizza", billLineFromFields(790, "Pizza"))
	assert.Equal(t, "Spent 791 on purchase", billLineFromFields(790.5, "  "))
	assert.Equal(t, "", billLineFromFields(0, "Pizza"))
	assert.Equal(t, "", billLineFromFields(-10, "Pizza"))
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONObject("prefix {\"a\":1} suffix"))
	assert.Equal(t, "", extractJSONObject("no braces here"))
	assert.Equal(t, "", extractJSONObject("} backwards {"))
}
