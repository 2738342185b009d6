// Package auth resolves bearer credentials to candidate identities. The
// static provider covers development and single-tenant deployments; anything
// heavier belongs behind the same domain.AuthProvider port.
package auth

import (
	"context"
	"strings"

	"github.com/voicehire/interview-api/internal/domain"
)

const guestToken = "guest-token"

// Static maps configured bearer tokens to identities. Entries have the form
// token -> "candidateID:Display Name" (the name part is optional). When
// allowGuest is set, the "guest-token" development bypass resolves to a fixed
// guest candidate.
type Static struct {
	tokens     map[string]string
	allowGuest bool
}

func NewStatic(tokens map[string]string, allowGuest bool) *Static {
	return &Static{
		tokens:     tokens,
		allowGuest: allowGuest,
	}
}

func (s *Static) Identify(ctx context.Context, credential string) (*domain.Identity, error) {
	if credential == "" {
		return nil, domain.ErrUnauthenticated
	}

	if s.allowGuest && credential == guestToken {
		return &domain.Identity{
			CandidateID: "guest",
			Name:        "Guest Candidate",
		}, nil
	}

	entry, ok := s.tokens[credential]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	id, name, found := strings.Cut(entry, ":")
	if !found {
		name = ""
	}
	if id == "" {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Identity{
		CandidateID: domain.CandidateID(id),
		Name:        name,
	}, nil
}
