// Package bot classifies HTTP clients as crawlers or browsers from their
// User-Agent header. Classification is a pure substring test against a fixed
// signature list; unknown agents are treated as browsers so real users always
// get the single-page app.
package bot

import "strings"

// signatures are lower-case substrings of known crawler and link-preview
// user agents: search engines, social unfurlers, chat bots, SEO tools.
var signatures = []string{
	"googlebot",
	"bingbot",
	"slurp", // Yahoo
	"duckduckbot",
	"baiduspider",
	"yandex",
	"sogou",
	"exabot",
	"applebot",
	"facebookexternalhit",
	"facebot",
	"twitterbot",
	"linkedinbot",
	"pinterest",
	"whatsapp",
	"telegrambot",
	"discordbot",
	"slackbot",
	"skypeuripreview",
	"embedly",
	"quora link preview",
	"ia_archiver", // Wayback Machine
	"semrushbot",
	"ahrefsbot",
	"mj12bot",
	"dotbot",
	"petalbot",
	"bytespider",
	"gptbot",
}

// Detect reports whether the user agent belongs to a known crawler or
// preview fetcher. The match is case-insensitive and positional anywhere in
// the string. Empty or unrecognised agents return false.
func Detect(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, sig := range signatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}
