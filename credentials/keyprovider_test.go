package credentials

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvKeyProvider_GetKey(t *testing.T) {
	keyHex := strings.Repeat("ab", 32)
	t.Setenv("SPACES_ENCRYPTION_KEY", keyHex)

	provider := NewEnvKeyProvider("SPACES_ENCRYPTION_KEY")
	key, err := provider.GetKey()

	require.NoError(t, err)
	assert.Equal(t, keyHex, hex.EncodeToString(key))
}

func TestEnvKeyProvider_Unset(t *testing.T) {
	t.Setenv("SPACES_ENCRYPTION_KEY", "")

	provider := NewEnvKeyProvider("SPACES_ENCRYPTION_KEY")
	_, err := provider.GetKey()
	assert.Error(t, err)
}

func TestEnvKeyProvider_WrongLength(t *testing.T) {
	t.Setenv("SPACES_ENCRYPTION_KEY", "abcd")

	provider := NewEnvKeyProvider("SPACES_ENCRYPTION_KEY")
	_, err := provider.GetKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestGetDefaultKeyProvider_PrefersEnv(t *testing.T) {
	t.Setenv("SPACES_ENCRYPTION_KEY", strings.Repeat("cd", 32))

	provider, err := GetDefaultKeyProvider()
	require.NoError(t, err)
	assert.IsType(t, &EnvKeyProvider{}, provider)
}
