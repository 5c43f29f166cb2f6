package bootstrap

import (
	"testing"

	"deskbooker/pkg/config"
	"deskbooker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositories_RequiresConnection(t *testing.T) {
	cfg := config.FromEnv("test")
	cfg.Log = logger.Discard()

	for _, driver := range []string{config.StoreMongo, config.StorePostgres} {
		cfg.StoreDriver = driver
		_, _, err := NewRepositories(cfg)
		assert.Error(t, err, driver)
	}

	cfg.StoreDriver = "sqlite"
	_, _, err := NewRepositories(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestComponents_CloseWithoutProducer(t *testing.T) {
	assert.NoError(t, (&Components{}).Close())
}
