package profile

import "strings"

const DefaultURLTemplate = "https://api.tracker.gg/api/v2/rocket-league/standard/profile/{PLATFORM}/{USERNAME}"

// ProfileURL fills the template. The username is inserted verbatim.
func ProfileURL(template string, platform Platform, username string) string {
	return strings.NewReplacer("{PLATFORM}", string(platform), "{USERNAME}", username).Replace(template)
}
