package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"rider@example.com",
		"first.last@example.co.uk",
		"user+tag@my-host.org",
		"a_b-c@x.y",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), email)
	}

	invalid := []string{
		"",
		"rider",
		"rider@",
		"@example.com",
		"rider@example",
		"rider @example.com",
		"rider@exa mple.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), email)
	}
}
