package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/Fepozopo/lthresh/pkg/version"
)

// githubAPI is the base URL of the GitHub REST API. Tests point it at a
// local server.
var githubAPI = "https://api.github.com"

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// detectLatestFallback queries the GitHub Releases API and returns the
// published, non-prerelease release with the highest semver tag. It
// returns (nil, false, nil) when no release qualifies.
func detectLatestFallback(repo string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/releases", strings.TrimRight(githubAPI, "/"), repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}

	var candidates []selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			if match = semverRe.FindString(r.Name); match == "" {
				continue
			}
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		assetURL := ""
		for _, a := range r.Assets {
			if strings.Contains(strings.ToLower(a.Name), "lthresh") {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, selfupdate.Release{Version: v, AssetURL: assetURL, Name: r.Name})
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Version.GT(candidates[j].Version)
	})
	best := candidates[0]
	return &best, true, nil
}

// updateState classifies the running build against the latest release.
type updateState int

const (
	updateNone updateState = iota
	updateCurrent
	updateNoAsset
	updateAvailable
)

func compareRelease(current string, latest *selfupdate.Release) updateState {
	if latest == nil {
		return updateNone
	}
	if cur, err := semver.Parse(strings.TrimPrefix(current, "v")); err == nil && latest.Version.LTE(cur) {
		return updateCurrent
	}
	if latest.AssetURL == "" {
		return updateNoAsset
	}
	return updateAvailable
}

// CheckForUpdates reports the latest release of repo and, after
// confirmation on reader, replaces the running binary with it.
func CheckForUpdates(repo string, reader *bufio.Reader, out io.Writer) error {
	latest, _, err := detectLatestFallback(repo)
	fmt.Fprintf(out, "Current version: %s\n", version.Version)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}

	switch compareRelease(version.Version, latest) {
	case updateNone:
		fmt.Fprintf(out, "No releases found for %s.\n", repo)
		return nil
	case updateCurrent:
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", latest.Version)
		return nil
	case updateNoAsset:
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		fmt.Fprintln(out, "Please visit the project releases page to download the new version.")
		return nil
	}

	answer, err := PromptLine(reader, out, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	answer = strings.ToLower(answer)
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	fmt.Fprintln(out, "Updating...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	// Exec only returns on error; fall back to a child process.
	argv := append([]string{exe}, os.Args[1:]...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		if startErr := cmd.Start(); startErr != nil {
			fmt.Fprintf(out, "Updated to version %s, but failed to restart automatically: %v; fallback start error: %v\n", latest.Version, err, startErr)
			fmt.Fprintln(out, "Please restart the application manually.")
			return nil
		}
		os.Exit(0)
	}
	return nil
}
