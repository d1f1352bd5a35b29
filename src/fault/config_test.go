package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCatalogDefaults(t *testing.T) {
	names, err := Config{}.ResolveCatalog()
	require.NoError(t, err)
	assert.Len(t, names, 59)
	assert.Contains(t, names, "OrderNotFound")
}

func TestResolveCatalogFromEnv(t *testing.T) {
	t.Setenv("FAULT_CATALOG", "CartEmpty, PaymentFailed,,CartEmpty ")
	t.Setenv("FAULT_TOPIC", "faults.v1")

	config := GetConfig()
	assert.Equal(t, "faults.v1", config.Topic)

	names, err := config.ResolveCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"CartEmpty", "PaymentFailed", "CartEmpty"}, names)
}

func TestResolveCatalogBlankIsConfigurationError(t *testing.T) {
	t.Setenv("FAULT_CATALOG", " , ,")

	_, err := GetConfig().ResolveCatalog()
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "FAULT_CATALOG", cfgErr.Setting)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestDefaultCatalogReturnsCopy(t *testing.T) {
	names := DefaultCatalog()
	names[0] = "Changed"
	assert.Equal(t, "InvalidShippingAddress", DefaultCatalog()[0])
}
