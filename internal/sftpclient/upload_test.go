package sftpclient

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults(t *testing.T) {
	cfg := Config{Host: "h", User: "u", Pass: "p"}.withDefaults()
	assert.Equal(t, 22, cfg.Port)
	assert.Equal(t, "/", cfg.RemoteDir)

	cfg = Config{Port: 2222, RemoteDir: "/inbound"}.withDefaults()
	assert.Equal(t, 2222, cfg.Port)
	assert.Equal(t, "/inbound", cfg.RemoteDir)
}

func TestHostKeyCallback(t *testing.T) {
	cb, err := hostKeyCallback(Config{InsecureIgnoreHostKey: true})
	require.NoError(t, err)
	assert.NotNil(t, cb)

	_, err = hostKeyCallback(Config{KnownHostsPath: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load known_hosts")

	kh := filepath.Join(t.TempDir(), "known_hosts")
	require.NoError(t, os.WriteFile(kh, nil, 0o600))
	cb, err = hostKeyCallback(Config{KnownHostsPath: kh})
	require.NoError(t, err)
	assert.NotNil(t, cb)
}

// The happy path needs a live SFTP server; these cover validation and dial failures.
func TestUploadFileValidation(t *testing.T) {
	ctx := context.Background()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	local := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(local, []byte("id\n"), 0o600))

	testCases := []struct {
		name          string
		cfg           Config
		localPath     string
		errorContains string
	}{
		{
			name:          "missing credentials",
			cfg:           Config{},
			localPath:     local,
			errorContains: "sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS",
		},
		{
			name:          "missing local file",
			cfg:           Config{Host: "127.0.0.1", User: "u", Pass: "p", InsecureIgnoreHostKey: true},
			localPath:     "non_existent_file.csv",
			errorContains: "sftp: open local file",
		},
		{
			name:          "nothing listening",
			cfg:           Config{Host: "127.0.0.1", Port: port, User: "u", Pass: "p", InsecureIgnoreHostKey: true},
			localPath:     local,
			errorContains: "sftp: dial error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := UploadFile(ctx, tc.cfg, tc.localPath, "catalog.csv")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestUploadCanceledContext(t *testing.T) {
	// accepts TCP but never speaks SSH, so only ctx can end the dial
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	conns := make(chan net.Conn, 4)
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				close(conns)
				return
			}
			conns <- c
		}
	}()
	defer func() {
		ln.Close()
		for c := range conns {
			c.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	port := ln.Addr().(*net.TCPAddr).Port
	err = Upload(ctx, Config{Host: "127.0.0.1", Port: port, User: "u", Pass: "p", InsecureIgnoreHostKey: true}, strings.NewReader("id\n"), "catalog.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sftp: dial canceled")
}
