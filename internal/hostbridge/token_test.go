package hostbridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef"

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner(testSecret, time.Minute)

	token, err := s.Sign("docshelf-shell")
	require.NoError(t, err)

	sub, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "docshelf-shell", sub)
}

func TestSigner_Rejects(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		token  func(t *testing.T) string
		verify *Signer
	}{
		{
			name: "other secret",
			token: func(t *testing.T) string {
				tok, err := NewSigner("fedcba9876543210", time.Minute).Sign("x")
				require.NoError(t, err)
				return tok
			},
			verify: NewSigner(testSecret, time.Minute),
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				s := NewSigner(testSecret, time.Minute)
				s.now = func() time.Time { return base }
				tok, err := s.Sign("x")
				require.NoError(t, err)
				return tok
			},
			verify: func() *Signer {
				s := NewSigner(testSecret, time.Minute)
				s.now = func() time.Time { return base.Add(2 * time.Minute) }
				return s
			}(),
		},
		{
			name:   "garbage",
			token:  func(*testing.T) string { return "not-a-jwt" },
			verify: NewSigner(testSecret, time.Minute),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verify.Verify(tt.token(t))
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}
