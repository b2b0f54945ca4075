package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectKnownCrawlers(t *testing.T) {
	agents := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)",
		"Mozilla/5.0 (compatible; YandexBot/3.0; +http://yandex.com/bots)",
		"facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)",
		"Twitterbot/1.0",
		"Mozilla/5.0 (compatible; Discordbot/2.0; +https://discordapp.com)",
		"WhatsApp/2.19.81 A",
		"Slackbot-LinkExpanding 1.0 (+https://api.slack.com/robots)",
		"Mozilla/5.0 (compatible; SemrushBot/7~bl; +http://www.semrush.com/bot.html)",
	}
	for _, ua := range agents {
		assert.True(t, Detect(ua), "expected crawler: %s", ua)
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	assert.True(t, Detect("GOOGLEBOT"))
	assert.True(t, Detect("Mozilla/5.0 GoogleBot/2.1"))
}

func TestDetectBrowsers(t *testing.T) {
	agents := []string{
		"",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile Safari/604.1",
		"curl/8.4.0",
	}
	for _, ua := range agents {
		assert.False(t, Detect(ua), "expected browser: %q", ua)
	}
}
