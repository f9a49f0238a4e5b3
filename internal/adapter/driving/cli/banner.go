package cli

import (
	"fmt"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner prints the welcome banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$$  /$$$$$$   /$$$$$$
        | $$_____/ /$$__  $$ /$$__  $$
        | $$      | $$  \ $$| $$  \ $$
        | $$$$$   | $$$$$$$$| $$$$$$$$
        | $$__/   | $$__  $$| $$__  $$
        | $$      | $$  | $$| $$  | $$
        | $$      | $$  | $$| $$  | $$
        |__/      |__/  |__/|__/  |__/
        `
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Println(blue(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(cyan(fmt.Sprintf("FAA Dashboard CLI (v%s)", formattedVersion)))
}

// checkLatestVersion checks whether a newer release is available.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
