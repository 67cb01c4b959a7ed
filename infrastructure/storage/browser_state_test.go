package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserState_LoadMissing(t *testing.T) {
	s, err := NewBrowserState(t.TempDir())
	require.NoError(t, err)

	state, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestBrowserState_LoadSaved(t *testing.T) {
	s, err := NewBrowserState(t.TempDir())
	require.NoError(t, err)

	saved := `{"cookies":[{"name":"sid","value":"abc","domain":"ui-playground.xyz","path":"/","expires":-1,"httpOnly":true,"secure":true,"sameSite":"Lax"}],"origins":[]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(saved), 0644))

	state, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Len(t, state.Cookies, 1)
	assert.Equal(t, "sid", state.Cookies[0].Name)

	require.NoError(t, s.Clear())
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, s.Clear())
}

func TestBrowserState_Corrupt(t *testing.T) {
	s, err := NewBrowserState(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	_, err = s.Load()
	assert.Error(t, err)
}
