package helper

import (
	"net/url"
	"strings"
)

// YouTubeEmbedURL преобразует ссылку вида watch?v=... в embed-форму.
// Ссылки youtu.be и уже готовые embed-ссылки тоже распознаются;
// все остальное возвращается как есть.
func YouTubeEmbedURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	host := strings.TrimPrefix(u.Host, "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if strings.HasPrefix(u.Path, "/embed/") {
			return raw
		}
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return "https://www.youtube.com/embed/" + id
			}
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	}
	return raw
}
