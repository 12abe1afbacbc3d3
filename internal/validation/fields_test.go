package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid subdomain", "a.b@mail.example.org", false},
		{"empty", "", true},
		{"no at", "userexample.com", true},
		{"no domain", "user@", true},
		{"spaces", "user @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword("a very long passphrase"))
}

func TestValidateFullName(t *testing.T) {
	assert.Error(t, ValidateFullName(""))
	assert.Error(t, ValidateFullName(strings.Repeat("x", MaxFullNameLen+1)))
	assert.NoError(t, ValidateFullName("Alice Smith"))
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	assert.NoError(t, ValidateStruct(form{Email: "a@b.com", Name: "a"}))
	assert.Error(t, ValidateStruct(form{Email: "bad", Name: "a"}))
	assert.Error(t, ValidateStruct(form{Email: "a@b.com"}))
}
