package omnivore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnisync-cli/internal/core/domain"
)

func TestFactory_Create_MissingKey(t *testing.T) {
	factory := NewFactory()

	source, err := factory.Create(context.Background(), domain.APISettings{
		Endpoint: domain.DefaultEndpoint,
	})

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.Nil(t, source)
}

func TestFactory_Create_Success(t *testing.T) {
	factory := NewFactory()

	source, err := factory.Create(context.Background(), domain.APISettings{
		Key:      "test-key",
		Endpoint: "https://api.example.com/graphql",
	})

	require.NoError(t, err)
	require.NotNil(t, source)
	assert.NoError(t, source.Close())
}
