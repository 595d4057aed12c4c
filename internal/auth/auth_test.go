package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	token, err := (&StaticProvider{Token: "  abc  "}).GetToken()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = (&StaticProvider{}).GetToken()
	assert.Error(t, err)
}

func TestEnvProvider_GetToken_Success(t *testing.T) {
	t.Setenv(TokenEnvVar, "env_token_123")

	token, err := (&EnvProvider{}).GetToken()

	require.NoError(t, err)
	assert.Equal(t, "env_token_123", token)
}

func TestEnvProvider_GetToken_Missing(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	token, err := (&EnvProvider{}).GetToken()

	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), TokenEnvVar)
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("file_token\n"), 0o600))

	token, err := (&FileProvider{Path: path}).GetToken()
	require.NoError(t, err)
	assert.Equal(t, "file_token", token)
}

func TestFileProvider_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o600))

	_, err := (&FileProvider{Path: path}).GetToken()
	assert.ErrorContains(t, err, "is empty")
}

func TestGetToken_Precedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(TokenEnvVar, "from_env")

	token, err := GetToken("from_config")
	require.NoError(t, err)
	assert.Equal(t, "from_config", token)

	token, err = GetToken("")
	require.NoError(t, err)
	assert.Equal(t, "from_env", token)
}

func TestGetToken_AllFail(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(TokenEnvVar, "")

	token, err := GetToken("")

	assert.Empty(t, token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token configured")
	assert.Contains(t, err.Error(), TokenEnvVar)
	assert.Contains(t, err.Error(), "token file")
}
