package identity_test

import (
	"testing"

	"github.com/aretw0/kosuke/pkg/identity"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"My Cool App!", "my-cool-app", true},
		{"---", "", false},
		{"a__b  c", "a-b-c", true},
		{"  My_App Name!! ", "my-app-name", true},
		{"", "", false},
		{"!!!", "", false},
		{"app-2024", "app-2024", true},
		{"Ünïcode App", "ncode-app", true},
		{"-lead-and-trail-", "lead-and-trail", true},
		{"a - b", "a-b", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := identity.Normalize(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"My Cool App!", "a__b  c", "  My_App Name!! ", "x", "Foo--Bar__Baz", "123 go"}
	for _, raw := range inputs {
		once, ok := identity.Normalize(raw)
		if !ok {
			continue
		}
		twice, ok := identity.Normalize(once)
		assert.True(t, ok, raw)
		assert.Equal(t, once, twice, raw)
	}
}

func TestNormalize_SlugsAreFixedPoints(t *testing.T) {
	for _, slug := range []string{"a", "foo-bar", "kosuke-template", "v2", "a-1-b"} {
		assert.True(t, identity.IsSlug(slug), slug)
		got, ok := identity.Normalize(slug)
		assert.True(t, ok)
		assert.Equal(t, slug, got)
	}
}

func TestIsSlug(t *testing.T) {
	for _, bad := range []string{"", "-a", "a-", "a--b", "A", "a_b", "a b", "a.b"} {
		assert.False(t, identity.IsSlug(bad), bad)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "My Cool App", identity.DisplayName("my-cool-app"))
	assert.Equal(t, "Kosuke", identity.DisplayName("kosuke"))
}
