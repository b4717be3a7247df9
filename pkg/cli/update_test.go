package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const releasesJSON = `[
  {"tag_name": "v0.3.0-rc1", "prerelease": true, "assets": [{"name": "lthresh_linux_amd64", "browser_download_url": "https://example.invalid/rc"}]},
  {"tag_name": "draft", "draft": true},
  {"tag_name": "release-0.2.1", "assets": [
    {"name": "checksums.txt", "browser_download_url": "https://example.invalid/sums"},
    {"name": "lthresh_linux_amd64", "browser_download_url": "https://example.invalid/0.2.1"}
  ]},
  {"tag_name": "nightly", "name": "Release 0.1.9"},
  {"tag_name": "v0.2.0", "assets": []}
]`

func fakeGitHub(t *testing.T, status int, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/Fepozopo/lthresh/releases" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	old := githubAPI
	githubAPI = srv.URL
	t.Cleanup(func() { githubAPI = old })
}

func TestDetectLatestFallback(t *testing.T) {
	fakeGitHub(t, http.StatusOK, releasesJSON)

	rel, found, err := detectLatestFallback("Fepozopo/lthresh")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, semver.MustParse("0.2.1"), rel.Version)
	assert.Equal(t, "https://example.invalid/0.2.1", rel.AssetURL)
}

func TestDetectLatestFallbackErrors(t *testing.T) {
	fakeGitHub(t, http.StatusOK, `[]`)
	rel, found, err := detectLatestFallback("Fepozopo/lthresh")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rel)

	fakeGitHub(t, http.StatusForbidden, `{"message":"rate limited"}`)
	_, _, err = detectLatestFallback("Fepozopo/lthresh")
	assert.ErrorContains(t, err, "status 403")

	fakeGitHub(t, http.StatusOK, `{not json`)
	_, _, err = detectLatestFallback("Fepozopo/lthresh")
	assert.Error(t, err)
}

func TestCompareRelease(t *testing.T) {
	rel := &selfupdate.Release{Version: semver.MustParse("1.2.0"), AssetURL: "https://example.invalid/a"}
	assert.Equal(t, updateNone, compareRelease("1.0.0", nil))
	assert.Equal(t, updateCurrent, compareRelease("v1.2.0", rel))
	assert.Equal(t, updateCurrent, compareRelease("1.3.0", rel))
	assert.Equal(t, updateAvailable, compareRelease("1.1.9", rel))
	assert.Equal(t, updateAvailable, compareRelease("dev", rel))

	noAsset := &selfupdate.Release{Version: semver.MustParse("2.0.0")}
	assert.Equal(t, updateNoAsset, compareRelease("1.0.0", noAsset))
}

func TestCheckForUpdatesDeclined(t *testing.T) {
	fakeGitHub(t, http.StatusOK, releasesJSON)

	var out bytes.Buffer
	err := CheckForUpdates("Fepozopo/lthresh", bufio.NewReader(strings.NewReader("n\n")), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "A new version (0.2.1) is available")
	assert.Contains(t, out.String(), "Update cancelled.")
}
