package usecase

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// SplitIcon separates a leading emoji icon from a repository description.
// The icon is the text before the first space, and only counts when it is a
// single grapheme cluster containing an emoji. Without an icon the
// description is returned unchanged.
func SplitIcon(description string) (icon, rest string) {
	token, remainder, _ := strings.Cut(description, " ")
	if !isSingleEmoji(token) {
		return "", description
	}
	return token, remainder
}

func isSingleEmoji(token string) bool {
	if token == "" || uniseg.GraphemeClusterCount(token) != 1 {
		return false
	}
	return gomoji.ContainsEmoji(token)
}
