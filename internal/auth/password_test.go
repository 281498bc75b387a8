package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, "secret123", digest)

	// Salting makes every digest unique
	digest2, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, digest, digest2)
}

func TestCheckPassword(t *testing.T) {
	digest, err := HashPassword("secret123")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		plain    string
		digest   string
		expected bool
	}{
		{
			name:     "correct password",
			plain:    "secret123",
			digest:   digest,
			expected: true,
		},
		{
			name:     "wrong password",
			plain:    "secret124",
			digest:   digest,
			expected: false,
		},
		{
			name:     "empty password",
			plain:    "",
			digest:   digest,
			expected: false,
		},
		{
			name:     "malformed digest is a mismatch, not a panic",
			plain:    "secret123",
			digest:   "not-a-bcrypt-digest",
			expected: false,
		},
		{
			name:     "empty digest",
			plain:    "secret123",
			digest:   "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckPassword(tt.plain, tt.digest))
		})
	}
}

func TestCheckPassword_MutatedDigest(t *testing.T) {
	digest, err := HashPassword("secret123")
	assert.NoError(t, err)

	// Flipping a single character of the hash output breaks verification.
	mutated := []byte(digest)
	last := len(mutated) - 1
	if mutated[last] == 'a' {
		mutated[last] = 'b'
	} else {
		mutated[last] = 'a'
	}
	assert.False(t, CheckPassword("secret123", string(mutated)))
}
