package extractor

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Strategy selects how media is read from a page.
type Strategy int

const (
	// StrategyGeneric scans image and video elements.
	StrategyGeneric Strategy = iota
	// StrategyVideoHost reads the embedded video id of a video-hosting watch page.
	StrategyVideoHost
)

func (s Strategy) String() string {
	switch s {
	case StrategyVideoHost:
		return "video_host"
	default:
		return "generic"
	}
}

const videoHostDomain = "youtube.com"

// Classify picks the extraction strategy for rawURL. Watch pages on the
// video host (any subdomain) get the special case; everything else, including
// unparseable input, is generic.
func Classify(rawURL string) Strategy {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return StrategyGeneric
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(u.Hostname()))
	if err != nil || domain != videoHostDomain {
		return StrategyGeneric
	}
	if strings.TrimSuffix(u.Path, "/") != "/watch" {
		return StrategyGeneric
	}
	return StrategyVideoHost
}
