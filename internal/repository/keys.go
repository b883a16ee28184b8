package repository

import "github.com/spec-kit/mood-journal/internal/domain"

// Keys names the substrate entries the journal uses.
type Keys struct {
	prefix      string
	CurrentUser string
	Users       string
}

// NewKeys builds the key set for a prefix, e.g. "moodjournal" yields
// moodjournal_currentUser, moodjournal_users and moodjournal_<kind>.
func NewKeys(prefix string) Keys {
	return Keys{
		prefix:      prefix,
		CurrentUser: prefix + "_currentUser",
		Users:       prefix + "_users",
	}
}

// Records returns the key of the records blob for a variant.
func (k Keys) Records(kind domain.RecordKind) string {
	return k.prefix + "_" + string(kind)
}
