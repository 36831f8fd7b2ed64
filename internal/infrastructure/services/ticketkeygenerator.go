package services

import (
	"context"
	"fmt"

	"github.com/XavierPelle/sprintly/internal/domain/ticket"
)

// maxKeyProbes bounds the scan for a free number when keys above the
// current maximum were inserted concurrently.
const maxKeyProbes = 50

// TicketKeyStore is the part of the ticket repository the generator reads.
type TicketKeyStore interface {
	ListKeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
}

// TicketKeyGenerator proposes PREFIX-NNN keys one above the highest existing
// number. The proposal is a hint; the unique index on the key column decides.
type TicketKeyGenerator struct {
	store TicketKeyStore
}

func NewTicketKeyGenerator(store TicketKeyStore) *TicketKeyGenerator {
	return &TicketKeyGenerator{store: store}
}

func (g *TicketKeyGenerator) Generate(ctx context.Context, prefix string) (string, error) {
	if err := ticket.ValidatePrefix(prefix); err != nil {
		return "", err
	}

	keys, err := g.store.ListKeysWithPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to scan ticket keys: %w", err)
	}

	next := ticket.NextKeyNumber(prefix, keys)
	for i := 0; i < maxKeyProbes; i++ {
		key := ticket.FormatKey(prefix, next+i)
		exists, err := g.store.ExistsByKey(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check ticket key: %w", err)
		}
		if !exists {
			return key, nil
		}
	}

	return "", fmt.Errorf("no free ticket key for prefix %s after %d probes", prefix, maxKeyProbes)
}
