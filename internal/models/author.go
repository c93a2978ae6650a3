package models

import "net/url"

// AuthorSocials holds optional profile links
type AuthorSocials struct {
	Twitter  string `json:"twitter,omitempty" yaml:"twitter"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin"`
}

// AuthorInfo describes an article author, looked up by display name
type AuthorInfo struct {
	Name    string        `json:"name" yaml:"name"`
	Bio     string        `json:"bio" yaml:"bio"`
	Avatar  string        `json:"avatar" yaml:"avatar"`
	Role    string        `json:"role" yaml:"role"`
	Socials AuthorSocials `json:"socials" yaml:"socials"`

	// Synthesized marks placeholder records built for authors without seed data
	Synthesized bool `json:"synthesized" yaml:"-"`
}

// AvatarURL returns the avatar, falling back to a generated initials image
func (a AuthorInfo) AvatarURL() string {
	if a.Avatar != "" {
		return a.Avatar
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(a.Name) + "&background=059669&color=fff&size=200"
}
