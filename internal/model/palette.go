package model

// AvatarPalette is the fixed ordered set of selectable player avatars.
// Roster generation cycles through it by index; avatar selection is
// restricted to its members.
var AvatarPalette = []string{
	"🦊", "🐻", "🐼", "🐸", "🦉", "🐙",
	"🦄", "🐯", "🐨", "🐷", "🐵", "🐺",
	"🦁", "🐮", "🐰", "🐢", "🐝", "🦀",
}

// AvatarForIndex returns the palette entry for the given roster index,
// wrapping modulo the palette size
func AvatarForIndex(i int) string {
	if i < 0 {
		i = -i
	}
	return AvatarPalette[i%len(AvatarPalette)]
}

// ValidAvatar reports whether the symbol is a member of the palette
func ValidAvatar(symbol string) bool {
	for _, a := range AvatarPalette {
		if a == symbol {
			return true
		}
	}
	return false
}
