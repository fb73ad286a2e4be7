package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@x.com", true},
		{"first.last+tag@sub.example.co", true},
		{"under_score%pct-dash@host-name.io", true},
		{"", false},
		{"plain", false},
		{"@x.com", false},
		{"a@x", false},
		{"a@x.c", false},
		{"a@x.c0m", false},
		{"a b@x.com", false},
		{"a@x.com\n", false},
		{"a@@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes", "Abcdef1!", true},
		{"every symbol counts", `Abcdef1"`, true},
		{"brace symbol", "Abcdef1{", true},
		{"too short", "Abcd1!", false},
		{"seven characters", "Abcde1!", false},
		{"no uppercase", "abcdef1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcdefg1", false},
		{"symbol outside the set", "Abcdef1-", false},
		{"non-ascii letters do not count as upper", "ÄbcdefÖ1!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}
