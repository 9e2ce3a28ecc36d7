package config

import (
	"fmt"
	"strings"
)

// Platform identifies a delivery target with its own loudness norm
type Platform string

const (
	PlatformSpotify    Platform = "spotify"
	PlatformAppleMusic Platform = "apple-music"
	PlatformYouTube    Platform = "youtube"
	PlatformPodcast    Platform = "podcast"
	PlatformBroadcast  Platform = "broadcast"
)

// PlatformTarget is the loudness norm of a platform
type PlatformTarget struct {
	Platform        Platform `json:"platform"`
	Name            string   `json:"name"`
	LUFS            float64  `json:"lufs"`              // integrated loudness target
	TruePeakCeiling float64  `json:"true_peak_ceiling"` // dBTP
}

var platformTargets = map[Platform]PlatformTarget{
	PlatformSpotify:    {Platform: PlatformSpotify, Name: "Spotify", LUFS: -14, TruePeakCeiling: -1},
	PlatformAppleMusic: {Platform: PlatformAppleMusic, Name: "Apple Music", LUFS: -16, TruePeakCeiling: -1},
	PlatformYouTube:    {Platform: PlatformYouTube, Name: "YouTube", LUFS: -14, TruePeakCeiling: -1},
	PlatformPodcast:    {Platform: PlatformPodcast, Name: "Podcast", LUFS: -16, TruePeakCeiling: -2},
	PlatformBroadcast:  {Platform: PlatformBroadcast, Name: "Broadcast (EBU R128)", LUFS: -23, TruePeakCeiling: -1},
}

// Platforms returns every known platform in display order
func Platforms() []Platform {
	return []Platform{PlatformSpotify, PlatformAppleMusic, PlatformYouTube, PlatformPodcast, PlatformBroadcast}
}

// Target returns the loudness norm for p
func (p Platform) Target() (PlatformTarget, bool) {
	t, ok := platformTargets[p]
	return t, ok
}

// ParsePlatform maps a platform identifier to a Platform
func ParsePlatform(name string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case "apple", "applemusic", "apple_music":
		p = PlatformAppleMusic
	case "ebu", "r128", "ebu-r128":
		p = PlatformBroadcast
	}
	if _, ok := platformTargets[p]; !ok {
		return "", fmt.Errorf("unknown platform %q", name)
	}
	return p, nil
}

func (p Platform) String() string {
	return string(p)
}
