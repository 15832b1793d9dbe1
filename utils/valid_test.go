package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid", input: "buyer@example.com", want: "buyer@example.com"},
		{name: "uppercase is lowered", input: "Buyer@Example.COM", want: "buyer@example.com"},
		{name: "surrounding whitespace trimmed", input: "  buyer@example.com  ", want: "buyer@example.com"},
		{name: "missing domain", input: "buyer@", wantErr: true},
		{name: "missing at sign", input: "buyer.example.com", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeEmail(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizePhone(t *testing.T) {
	got, err := SanitizePhone("082 555 1234")
	assert.NoError(t, err)
	assert.Equal(t, "+0825551234", got)

	got, err = SanitizePhone("+27 82 555 1234")
	assert.NoError(t, err)
	assert.Equal(t, "+27825551234", got)

	// Empty phone is optional
	got, err = SanitizePhone("   ")
	assert.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = SanitizePhone("12")
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "3 bed house", SanitizeInput("  3 bed house  "))
	assert.Equal(t, "&lt;script&gt;", SanitizeInput("<script>"))
}
