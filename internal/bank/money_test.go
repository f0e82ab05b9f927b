package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected Money
		wantErr  bool
	}{
		{input: "12", expected: 1200},
		{input: "12.3", expected: 1230},
		{input: "12.34", expected: 1234},
		{input: "$0.05", expected: 5},
		{input: ".5", expected: 50},
		{input: " 100.00 ", expected: 10000},
		{input: "", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "+5", wantErr: true},
		{input: "12.", wantErr: true},
		{input: "12.345", wantErr: true},
		{input: "1.-5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "92233720368547757.99", expected: 9223372036854775799},
		{input: "92233720368547758", wantErr: true},
		{input: "200000000000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "$0.00", Money(0).String())
	assert.Equal(t, "$12.34", Money(1234).String())
	assert.Equal(t, "$0.05", Money(5).String())
	assert.Equal(t, "-$1.50", Money(-150).String())
}
