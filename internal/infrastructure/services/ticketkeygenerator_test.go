package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockKeyStore struct {
	ListKeysWithPrefixFunc func(ctx context.Context, prefix string) ([]string, error)
	ExistsByKeyFunc        func(ctx context.Context, key string) (bool, error)
}

func (m *mockKeyStore) ListKeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	return m.ListKeysWithPrefixFunc(ctx, prefix)
}

func (m *mockKeyStore) ExistsByKey(ctx context.Context, key string) (bool, error) {
	if m.ExistsByKeyFunc != nil {
		return m.ExistsByKeyFunc(ctx, key)
	}
	return false, nil
}

func TestTicketKeyGenerator_Generate(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		taken    map[string]bool
		expected string
	}{
		{
			name:     "first key for prefix",
			keys:     nil,
			expected: "PROJ-001",
		},
		{
			name:     "one above the highest number",
			keys:     []string{"PROJ-001", "PROJ-009", "PROJ-004"},
			expected: "PROJ-010",
		},
		{
			name:     "non numeric suffixes are ignored",
			keys:     []string{"PROJ-002", "PROJ-ABC", "PROJ-12a"},
			expected: "PROJ-003",
		},
		{
			name:     "numbers above 999 keep every digit",
			keys:     []string{"PROJ-999"},
			expected: "PROJ-1000",
		},
		{
			name:     "skips keys created since the scan",
			keys:     []string{"PROJ-005"},
			taken:    map[string]bool{"PROJ-006": true, "PROJ-007": true},
			expected: "PROJ-008",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockKeyStore{
				ListKeysWithPrefixFunc: func(ctx context.Context, prefix string) ([]string, error) {
					assert.Equal(t, "PROJ", prefix)
					return tt.keys, nil
				},
				ExistsByKeyFunc: func(ctx context.Context, key string) (bool, error) {
					return tt.taken[key], nil
				},
			}

			key, err := NewTicketKeyGenerator(store).Generate(context.Background(), "PROJ")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestTicketKeyGenerator_Errors(t *testing.T) {
	t.Run("invalid prefix", func(t *testing.T) {
		_, err := NewTicketKeyGenerator(&mockKeyStore{}).Generate(context.Background(), "proj")
		assert.Error(t, err)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mockKeyStore{
			ListKeysWithPrefixFunc: func(ctx context.Context, prefix string) ([]string, error) {
				return nil, errors.New("connection reset")
			},
		}
		_, err := NewTicketKeyGenerator(store).Generate(context.Background(), "PROJ")
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("every probe taken", func(t *testing.T) {
		store := &mockKeyStore{
			ListKeysWithPrefixFunc: func(ctx context.Context, prefix string) ([]string, error) {
				return nil, nil
			},
			ExistsByKeyFunc: func(ctx context.Context, key string) (bool, error) {
				return true, nil
			},
		}
		_, err := NewTicketKeyGenerator(store).Generate(context.Background(), "PROJ")
		assert.ErrorContains(t, err, "no free ticket key")
	})
}
