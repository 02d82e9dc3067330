package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audit-iq-labs/auditiq/internal/config"
)

func TestEnvProvider_GetToken_Success(t *testing.T) {
	expectedToken := "aiq_test_token_123"
	t.Setenv(config.EnvToken, expectedToken)

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, expectedToken, token)
}

func TestEnvProvider_GetToken_Missing(t *testing.T) {
	t.Setenv(config.EnvToken, "")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "AUDITIQ_TOKEN")
}

func TestConfigProvider_GetToken(t *testing.T) {
	t.Run("token present", func(t *testing.T) {
		provider := &ConfigProvider{Config: &config.Config{AccessToken: "aiq_file_token"}}
		token, err := provider.GetToken()
		require.NoError(t, err)
		assert.Equal(t, "aiq_file_token", token)
	})

	t.Run("token missing", func(t *testing.T) {
		provider := &ConfigProvider{Config: &config.Config{}}
		_, err := provider.GetToken()
		assert.Error(t, err)
	})

	t.Run("nil config", func(t *testing.T) {
		provider := &ConfigProvider{}
		_, err := provider.GetToken()
		assert.Error(t, err)
	})
}

func TestGetToken_EnvWinsOverConfig(t *testing.T) {
	t.Setenv(config.EnvToken, "env_token")

	token, err := GetToken(&config.Config{AccessToken: "file_token"})

	require.NoError(t, err)
	assert.Equal(t, "env_token", token)
}

func TestGetToken_FallbackToConfig(t *testing.T) {
	t.Setenv(config.EnvToken, "")

	token, err := GetToken(&config.Config{AccessToken: "file_token"})

	require.NoError(t, err)
	assert.Equal(t, "file_token", token)
}

func TestGetToken_BothFail(t *testing.T) {
	t.Setenv(config.EnvToken, "")

	token, err := GetToken(&config.Config{})

	require.Error(t, err)
	assert.Empty(t, token)
	// Error should be actionable: mention both sources
	assert.Contains(t, err.Error(), "AUDITIQ_TOKEN")
	assert.Contains(t, err.Error(), "config.yaml")
}

func TestTokenSource(t *testing.T) {
	t.Setenv(config.EnvToken, "src_token")

	src, err := TokenSource(&config.Config{})
	require.NoError(t, err)

	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "src_token", tok.AccessToken)
}

func TestTokenProvider_Interface(t *testing.T) {
	var _ TokenProvider = &EnvProvider{}
	var _ TokenProvider = &ConfigProvider{}
}
