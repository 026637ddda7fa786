package domain

// folderColors is the fixed display palette for folders and tags.
// Purely cosmetic; the only contract is determinism.
var folderColors = []string{
	"blue",
	"green",
	"yellow",
	"purple",
	"pink",
	"indigo",
	"red",
	"orange",
	"teal",
}

// ColorFor deterministically picks a palette color for an id. The same
// id always maps to the same color across sessions and processes.
func ColorFor(id string) string {
	sum := 0
	for i := 0; i < len(id); i++ {
		sum += int(id[i])
	}
	return folderColors[sum%len(folderColors)]
}
