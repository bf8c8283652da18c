package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"three full nights", date(2030, 6, 1), date(2030, 6, 4), 3},
		{"single night", date(2030, 6, 1), date(2030, 6, 2), 1},
		{"partial day rounds up", date(2030, 6, 1), date(2030, 6, 2).Add(6 * time.Hour), 2},
		{"zero duration", date(2030, 6, 1), date(2030, 6, 1), 0},
		{"negative duration", date(2030, 6, 4), date(2030, 6, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestQuote(t *testing.T) {
	q := Quote(100, 3, "USD")

	assert.Equal(t, 300.0, q.Subtotal)
	assert.Equal(t, 30.0, q.ServiceFee)
	assert.Equal(t, 24.0, q.Taxes)
	assert.Equal(t, 354.0, q.Total)
	assert.Equal(t, "USD", q.Currency)
	assert.Equal(t, 3, q.Nights)
}

func TestQuote_FiftyPerNight(t *testing.T) {
	q := Quote(50, 3, "USD")

	assert.Equal(t, 150.0, q.Subtotal)
	assert.Equal(t, 15.0, q.ServiceFee)
	assert.Equal(t, 12.0, q.Taxes)
	assert.Equal(t, 177.0, q.Total)
}

func TestQuote_RoundsFeeAndTaxesIndependently(t *testing.T) {
	// fee 9.95 rounds up to 10, taxes 7.96 rounds up to 8; the raw subtotal
	// is kept as is
	q := Quote(99.5, 1, "USD")

	assert.Equal(t, 99.5, q.Subtotal)
	assert.Equal(t, 10.0, q.ServiceFee)
	assert.Equal(t, 8.0, q.Taxes)
	assert.Equal(t, 117.5, q.Total)
}

func TestQuote_FeeLinesRoundToWholeAmounts(t *testing.T) {
	// fee 3.333 rounds down to 3, taxes 2.6664 rounds up to 3
	q := Quote(33.33, 1, "EUR")

	assert.Equal(t, 3.0, q.ServiceFee)
	assert.Equal(t, 3.0, q.Taxes)
	assert.Equal(t, 39.33, q.Total)
}
