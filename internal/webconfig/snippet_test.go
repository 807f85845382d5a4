package webconfig

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "$2b$12$hNf2lSsxfm0.i4a.1kVpSOVyBCfIB51VRjgBUyv6kdnyTlgWj81Ay"

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, DefaultKey, Entry{Username: "alice", Hash: testHash}))

	want := "basic_auth_users:\n  alice: " + testHash + "\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_MultipleEntries(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, DefaultKey,
		Entry{Username: "alice", Hash: testHash},
		Entry{Username: "bob", Hash: testHash},
	)
	require.NoError(t, err)

	want := "basic_auth_users:\n  alice: " + testHash + "\n  bob: " + testHash + "\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_CustomKey(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "users", Entry{Username: "alice", Hash: testHash}))

	assert.Equal(t, "users:\n  alice: "+testHash+"\n", buf.String())
}

func TestRender_RoundTrip(t *testing.T) {
	usernames := []string{"alice", "123", "true", "", "a: b", "#root", "null"}

	for _, username := range usernames {
		t.Run(username, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, DefaultKey, Entry{Username: username, Hash: testHash}))

			users, err := Parse(buf.Bytes(), DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{username: testHash}, users)
		})
	}
}

func TestRender_LongUsername(t *testing.T) {
	for _, username := range []string{
		strings.Repeat("u", 128),
		strings.Repeat("u", 129),
		strings.Repeat("u", 300),
		strings.Repeat("long user ", 30),
	} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, DefaultKey, Entry{Username: username, Hash: testHash}))

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2, "username of %d bytes", len(username))
		assert.Equal(t, "basic_auth_users:", lines[0])
		assert.True(t, strings.HasSuffix(lines[1], ": "+testHash))

		users, err := Parse(buf.Bytes(), DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{username: testHash}, users)
	}
}

func TestRender_LongUsernameIsLiteral(t *testing.T) {
	username := strings.Repeat("u", 129)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, DefaultKey, Entry{Username: username, Hash: testHash}))

	assert.Equal(t, "basic_auth_users:\n  "+username+": "+testHash+"\n", buf.String())
}

func TestRender_MultilineUsername(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, DefaultKey, Entry{Username: "al\nice", Hash: testHash}))

	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	users, err := Parse(buf.Bytes(), DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"al\nice": testHash}, users)
}

func TestParse_FullWebConfig(t *testing.T) {
	data := []byte(`
tls_server_config:
  cert_file: server.crt
  key_file: server.key
basic_auth_users:
  alice: ` + testHash + `
  bob: ` + testHash + `
`)

	users, err := Parse(data, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": testHash, "bob": testHash}, users)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing key", data: "tls_server_config:\n  cert_file: server.crt\n"},
		{name: "invalid yaml", data: "basic_auth_users: [\n"},
		{name: "users not a mapping", data: "basic_auth_users:\n  - alice\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), DefaultKey)
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("other: 1\n"), DefaultKey)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
