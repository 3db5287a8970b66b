package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCardNumber(t *testing.T) {
	assert.Equal(t, "CARD123", NormalizeCardNumber("  card123 "))
}

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		wantErr    error
	}{
		{"valid CARD prefix", "CARD123", nil},
		{"valid GIFT prefix", "GIFT789", nil},
		{"valid DISC prefix", "DISC456", nil},
		{"valid with hyphen", "CARD-123", nil},
		{"lower case accepted", "card123", nil},
		{"too short", "CARD1", ErrCardNumberTooShort},
		{"bad charset", "CARD 123!", ErrCardNumberCharset},
		{"unknown prefix", "MISC123", ErrCardNumberPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardNumber(tt.cardNumber)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
