package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDemoTokenString(t *testing.T) {
	token := DemoToken{Email: "ada@example.com"}
	assert.Equal(t, "demo::ada@example.com", token.String())
}

func TestParseDemoToken(t *testing.T) {
	token, ok := ParseDemoToken("Bearer demo::ada@example.com")
	assert.True(t, ok)
	assert.Equal(t, "ada@example.com", token.Email)

	for _, header := range []string{
		"",
		"Bearer ",
		"Bearer demo::",
		"Bearer sometoken",
		"demo::ada@example.com",
		"Basic demo::ada@example.com",
	} {
		_, ok := ParseDemoToken(header)
		assert.False(t, ok, "header %q", header)
	}
}
