package video

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// idPattern matches a bare 11-character YouTube video identifier.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// pathMarkers are path segments that precede the identifier on long-form hosts.
var pathMarkers = map[string]bool{
	"embed":  true,
	"shorts": true,
	"live":   true,
	"v":      true,
}

// ExtractID returns the video identifier contained in a bare id or a YouTube URL.
// Unparseable or unrecognized input yields an empty string.
func ExtractID(urlOrID string) string {
	raw := strings.TrimSpace(urlOrID)
	if raw == "" {
		return ""
	}
	if idPattern.MatchString(raw) {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "youtu.be" {
		segments := splitPath(u.Path)
		if len(segments) > 0 && idPattern.MatchString(segments[0]) {
			return segments[0]
		}
		return ""
	}

	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtube-nocookie.com") {
		return ""
	}

	if v := u.Query().Get("v"); idPattern.MatchString(v) {
		return v
	}

	segments := splitPath(u.Path)
	for i, seg := range segments {
		if !pathMarkers[seg] {
			continue
		}
		if i+1 < len(segments) && idPattern.MatchString(segments[i+1]) {
			return segments[i+1]
		}
		break
	}

	if len(segments) > 0 && idPattern.MatchString(segments[len(segments)-1]) {
		return segments[len(segments)-1]
	}
	return ""
}

// Resolve picks the linked video for a container. Candidates are tried in order:
// the explicit identifier, the explicit URL, then each link href. The first
// candidate that yields an identifier wins.
func Resolve(id, rawURL string, hrefs ...string) string {
	candidates := make([]string, 0, len(hrefs)+2)
	if id != "" {
		candidates = append(candidates, id)
	}
	if rawURL != "" {
		candidates = append(candidates, rawURL)
	}
	for _, h := range hrefs {
		if h != "" {
			candidates = append(candidates, h)
		}
	}

	for _, c := range candidates {
		if found := ExtractID(c); found != "" {
			return found
		}
	}
	return ""
}

// EmbedOptions controls player behaviour in an embed URL.
type EmbedOptions struct {
	Autoplay bool
	Mute     bool
	Controls bool
	Loop     bool
}

// ModalPlayback is used for the player mounted next to an expanded diagram.
var ModalPlayback = EmbedOptions{Autoplay: true, Mute: false, Controls: true, Loop: false}

// HoverPreview is used for the muted inline preview.
var HoverPreview = EmbedOptions{Autoplay: true, Mute: true, Controls: false, Loop: true}

// EmbedURL builds a privacy-enhanced player URL for the given identifier.
func EmbedURL(id string, opts EmbedOptions) string {
	escaped := url.PathEscape(id)
	u := fmt.Sprintf("https://www.youtube-nocookie.com/embed/%s?autoplay=%s&mute=%s&controls=%s&rel=0&modestbranding=1&playsinline=1&loop=%s",
		escaped, flag(opts.Autoplay), flag(opts.Mute), flag(opts.Controls), flag(opts.Loop))
	if opts.Loop {
		u += "&playlist=" + url.QueryEscape(id)
	}
	return u
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
