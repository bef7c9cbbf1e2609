package version

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReleaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/rustwasm/wasm-pack/releases/latest", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubProbeVersions(t *testing.T) {
	srv := newReleaseServer(t, http.StatusOK, `{"tag_name":"v0.10.0"}`)

	p := &GitHubProbe{Client: srv.Client(), BaseURL: srv.URL, Repo: "rustwasm/wasm-pack", Local: "v0.9.0"}
	local, latest, err := p.Versions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.9.0", local)
	assert.Equal(t, "0.10.0", latest)
}

func TestGitHubProbeBadStatus(t *testing.T) {
	srv := newReleaseServer(t, http.StatusForbidden, `{"message":"rate limited"}`)

	p := &GitHubProbe{Client: srv.Client(), BaseURL: srv.URL, Repo: "rustwasm/wasm-pack", Local: "0.9.0"}
	_, _, err := p.Versions(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestGitHubProbeBadJSON(t *testing.T) {
	srv := newReleaseServer(t, http.StatusOK, `not json`)

	p := &GitHubProbe{Client: srv.Client(), BaseURL: srv.URL, Repo: "rustwasm/wasm-pack", Local: "0.9.0"}
	_, _, err := p.Versions(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse release JSON")
}

func TestGitHubProbeDevelopmentBuild(t *testing.T) {
	p := &GitHubProbe{BaseURL: "http://127.0.0.1:0", Repo: "rustwasm/wasm-pack", Local: "dev"}
	_, _, err := p.Versions(context.Background())

	assert.True(t, errors.Is(err, ErrDevelopmentBuild))
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, -1, CompareVersions("0.9.0", "0.10.0"))
	assert.Equal(t, 0, CompareVersions("v0.10.0", "0.10.0"))
	assert.Equal(t, 1, CompareVersions("0.13.1", "0.13.0"))
}

func TestCheckSelfReportsUpgrade(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&out)
	cmd.SetContext(context.Background())

	probe := ProberFunc(func(ctx context.Context) (string, string, error) {
		return "0.9.0", "0.10.0", nil
	})

	require.NoError(t, CheckSelf(cmd, probe))
	assert.Contains(t, out.String(), "Upgrade available: 0.9.0 → 0.10.0")
	assert.Contains(t, out.String(), InstallerUrl)
}

func TestCheckSelfWrapsProbeError(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetContext(context.Background())

	cause := errors.New("dial tcp: connection refused")
	probe := ProberFunc(func(ctx context.Context) (string, string, error) {
		return "", "", cause
	})

	err := CheckSelf(cmd, probe)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestPackageInfoCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewPackageInfoCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wasm-pack")
	assert.Contains(t, out.String(), Homepage)
}
