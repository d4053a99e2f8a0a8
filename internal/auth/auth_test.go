package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_Verify(t *testing.T) {
	sut := NewStaticProvider("tok-1:admin@example.com, tok-2:ops@example.com")

	id, err := sut.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", id.Email)
	assert.True(t, id.IsAdmin)

	_, err = sut.Verify(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestStaticProvider_IgnoresMalformedEntries(t *testing.T) {
	sut := NewStaticProvider("garbage,,:noToken,tok-1:admin@example.com")

	id, err := sut.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", id.UserID)

	_, err = sut.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, FromContext(ctx))

	id := &Identity{UserID: "u1", IsAdmin: true}
	ctx = WithIdentity(ctx, id)
	assert.Equal(t, id, FromContext(ctx))
}
