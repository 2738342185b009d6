package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/interview-api/internal/domain"
)

func TestStaticIdentify(t *testing.T) {
	provider := NewStatic(map[string]string{
		"tok-1": "cand-42:Ada Lovelace",
		"tok-2": "cand-43",
	}, true)

	identity, err := provider.Identify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, domain.CandidateID("cand-42"), identity.CandidateID)
	assert.Equal(t, "Ada Lovelace", identity.Name)

	identity, err = provider.Identify(context.Background(), "tok-2")
	require.NoError(t, err)
	assert.Equal(t, domain.CandidateID("cand-43"), identity.CandidateID)
	assert.Empty(t, identity.Name)
}

func TestStaticIdentifyGuest(t *testing.T) {
	provider := NewStatic(nil, true)

	identity, err := provider.Identify(context.Background(), "guest-token")
	require.NoError(t, err)
	assert.Equal(t, domain.CandidateID("guest"), identity.CandidateID)

	strict := NewStatic(nil, false)
	_, err = strict.Identify(context.Background(), "guest-token")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestStaticIdentifyRejectsUnknown(t *testing.T) {
	provider := NewStatic(map[string]string{"tok-1": "cand-42"}, false)

	_, err := provider.Identify(context.Background(), "bogus")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = provider.Identify(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}
