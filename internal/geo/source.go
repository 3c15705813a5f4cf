package geo

import (
	"net/url"
	"strings"
)

// TrafficSource is the inferred origin of a lead.
type TrafficSource struct {
	Source   string // organic | ads | social | direct
	Platform string // google | facebook | tiktok | snapchat | twitter | other
}

// InferTrafficSource classifies a referrer URL and the landing page query
// string into a source/platform pair. A gclid query parameter marks Google
// ads traffic; known social hosts map to their platform; anything else with a
// referrer is organic, and an empty referrer is direct.
func InferTrafficSource(referrer, landingQuery string) TrafficSource {
	query, _ := url.ParseQuery(strings.TrimPrefix(landingQuery, "?"))
	if query.Get("gclid") != "" {
		return TrafficSource{Source: "ads", Platform: "google"}
	}
	if query.Get("fbclid") != "" {
		return TrafficSource{Source: "ads", Platform: "facebook"}
	}
	if query.Get("ttclid") != "" {
		return TrafficSource{Source: "ads", Platform: "tiktok"}
	}

	if referrer == "" {
		return TrafficSource{Source: "direct", Platform: ""}
	}

	u, err := url.Parse(referrer)
	if err != nil || u.Host == "" {
		return TrafficSource{Source: "direct", Platform: ""}
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	switch {
	case strings.Contains(host, "google."):
		return TrafficSource{Source: "organic", Platform: "google"}
	case strings.Contains(host, "facebook.com") || strings.Contains(host, "instagram.com") || host == "fb.com" || host == "l.facebook.com":
		return TrafficSource{Source: "social", Platform: "facebook"}
	case strings.Contains(host, "tiktok.com"):
		return TrafficSource{Source: "social", Platform: "tiktok"}
	case strings.Contains(host, "snapchat.com"):
		return TrafficSource{Source: "social", Platform: "snapchat"}
	case strings.Contains(host, "twitter.com") || host == "t.co" || host == "x.com":
		return TrafficSource{Source: "social", Platform: "twitter"}
	default:
		return TrafficSource{Source: "organic", Platform: "other"}
	}
}
