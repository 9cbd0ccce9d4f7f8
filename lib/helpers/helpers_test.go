package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, "e\\.g\\. bitcoin\\-50000\\!", EscapeMarkdownV2("e.g. bitcoin-50000!"))
	assert.Equal(t, "plain text", EscapeMarkdownV2("plain text"))
}

func TestFormatPriceUS(t *testing.T) {
	assert.Equal(t, "50,000", FormatPriceUS(50000, false))
	assert.Equal(t, "2.50", FormatPriceUS(2.5, false))
	assert.Equal(t, "0.000500", FormatPriceUS(0.0005, false))
	assert.Equal(t, "0.00000100", FormatPriceUS(0.000001, false))

	// MarkdownV2 escaping applies to the decimal point.
	assert.Equal(t, "2\\.50", FormatPriceUS(2.5, true))
}

func TestFormatBigUS(t *testing.T) {
	assert.Equal(t, "1,180,000,000,000", FormatBigUS(1180000000000))
	assert.Equal(t, "35,000,000,001", FormatBigUS(35000000000.7))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2026-08-28", FormatDate("2026-08-28 10:15:00"))
	assert.Equal(t, "2026-08-28", FormatDate("2026-08-28T10:15:00Z"))
	assert.Equal(t, "garbage", FormatDate("garbage"))
}
