package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = Params{OpsLimit: 1, MemLimit: 64 << 10}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltSize)

	k1, err := DeriveKey([]byte("secret"), salt, testParams)
	require.NoError(t, err)
	k2, err := DeriveKey([]byte("secret"), salt, testParams)
	require.NoError(t, err)

	assert.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_DependsOnEveryInput(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltSize)
	base, err := DeriveKey([]byte("secret"), salt, testParams)
	require.NoError(t, err)

	other, err := DeriveKey([]byte("secret2"), salt, testParams)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	other, err = DeriveKey([]byte("secret"), bytes.Repeat([]byte{8}, SaltSize), testParams)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	other, err = DeriveKey([]byte("secret"), salt, Params{OpsLimit: 2, MemLimit: testParams.MemLimit})
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}

func TestDeriveKey_Rejects(t *testing.T) {
	salt := make([]byte, SaltSize)

	tests := []struct {
		name   string
		secret []byte
		salt   []byte
		params Params
	}{
		{"empty secret", nil, salt, testParams},
		{"short salt", []byte("x"), salt[:8], testParams},
		{"zero ops", []byte("x"), salt, Params{OpsLimit: 0, MemLimit: testParams.MemLimit}},
		{"too many ops", []byte("x"), salt, Params{OpsLimit: MaxOpsLimit + 1, MemLimit: testParams.MemLimit}},
		{"too little memory", []byte("x"), salt, Params{OpsLimit: 1, MemLimit: 1024}},
		{"too much memory", []byte("x"), salt, Params{OpsLimit: 1, MemLimit: MaxMemLimit + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveKey(tt.secret, tt.salt, tt.params)
			require.ErrorIs(t, err, ErrKeyDerivation)
		})
	}
}

func TestDefaultParams_Valid(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
}
