package redis

const (
	// KeyUsers is the set of every user id that owns documents.
	KeyUsers = "marque:users"

	keyPrefixUser = "marque:u:"
)

// BookmarkKey returns the key holding one bookmark document.
func BookmarkKey(uid, id string) string {
	return keyPrefixUser + uid + ":bookmark:" + id
}

// AllBookmarksKey returns the set of a user's bookmark ids.
func AllBookmarksKey(uid string) string {
	return keyPrefixUser + uid + ":bookmarks"
}

// FolderKey returns the key holding one folder document.
func FolderKey(uid, id string) string {
	return keyPrefixUser + uid + ":folder:" + id
}

// AllFoldersKey returns the set of a user's folder ids.
func AllFoldersKey(uid string) string {
	return keyPrefixUser + uid + ":folders"
}
