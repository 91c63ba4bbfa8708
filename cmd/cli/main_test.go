package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFixture(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const fixture = `
customers:
  - contact: "5550001"
    name: Ada Lovelace
accounts:
  - number: "1001"
    owner: "5550001"
    deposits: ["100"]
`

func TestSessionCmd(t *testing.T) {
	script := strings.Join([]string{
		"customer add 5550002 Charles Babbage",
		"account open 5550002 2001",
		"transfer 1001 2001 40",
		"balance 1001",
		"history 2001",
		"exit",
	}, "\n")

	out, err := execute(t, script, "session", "--quiet", "--seed", writeFixture(t, fixture))
	require.NoError(t, err)

	assert.NotContains(t, out, "goldenlock>")
	assert.Contains(t, out, "transferred 40.00 from 1001 to 2001, balance 60.00")
	assert.Contains(t, out, "balance 60.00")
	assert.Contains(t, out, "transfer_in")
}

func TestSessionCmd_Banner(t *testing.T) {
	out, err := execute(t, "exit\n", "session")
	require.NoError(t, err)

	assert.Contains(t, out, "Golden Lock Bank session")
	assert.Contains(t, out, "goldenlock> ")
}

func TestSeedValidateCmd(t *testing.T) {
	path := writeFixture(t, fixture)

	out, err := execute(t, "", "seed", "validate", path)
	require.NoError(t, err)
	assert.Equal(t, path+": 1 customers, 1 accounts, 3 commands\n", out)

	bad := writeFixture(t, "accounts:\n  - number: \"1001\"\n    owner: \"5559999\"\n")
	_, err = execute(t, "", "seed", "validate", bad)
	assert.Error(t, err)
}

func TestLedgerConsistencyCmd(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		wantOut string
	}{
		{
			name:    "consistent",
			status:  http.StatusOK,
			body:    `{"consistent":true,"accounts":2,"transactions":5,"total_balance":"140.00"}`,
			wantOut: "Consistency check PASSED",
		},
		{
			name:    "inconsistent",
			status:  http.StatusConflict,
			body:    `{"consistent":false,"issues":[{"account_number":"1001","reason":"negative balance -5"}]}`,
			wantErr: true,
			wantOut: "1001 : negative balance -5",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":"boom"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/ledger/consistency" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			out, err := execute(t, "", "--url", srv.URL, "ledger", "consistency")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out, tt.wantOut)
		})
	}
}
