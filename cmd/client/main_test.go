package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pesan":"Login Berhasil","user":{"id":2,"email":"u@x.com","password":"p2","role":"user","apiKey":"HIJAB-USER0001"}}`))
	})
	mux.HandleFunc("/api/hijab", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"nama":"Pashmina Silk","kategori":"Pashmina","harga":85000,"imageUrl":"a.jpg"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_SessionLifecycle(t *testing.T) {
	srv := fakeService(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("HIJAB_API_URL", srv.URL+"/api")
	t.Setenv("HIJAB_SESSION_FILE", sessionFile)

	var out bytes.Buffer
	require.NoError(t, run([]string{"login", "-email", "u@x.com", "-password", "p2"}, &out))
	assert.Contains(t, out.String(), "HIJAB-USER0001")

	out.Reset()
	require.NoError(t, run([]string{"whoami"}, &out))
	assert.Contains(t, out.String(), "email: u@x.com")
	assert.NotContains(t, out.String(), "p2")

	out.Reset()
	err := run([]string{"search", "-key", "HIJAB-WRONG001", "Pashmina"}, &out)
	assert.ErrorContains(t, err, "API Key Salah!")

	out.Reset()
	require.NoError(t, run([]string{"search", "-key", "HIJAB-USER0001", "Pashmina"}, &out))
	assert.Contains(t, out.String(), "Pashmina Silk")
	assert.Contains(t, out.String(), "Rp 85000")

	out.Reset()
	err = run([]string{"users", "list"}, &out)
	assert.ErrorContains(t, err, "khusus admin")

	require.NoError(t, run([]string{"logout"}, &out))
	assert.Error(t, run([]string{"whoami"}, &out))
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Setenv("HIJAB_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	var out bytes.Buffer
	assert.Error(t, run([]string{"dance"}, &out))
	assert.Error(t, run(nil, &out))
}
