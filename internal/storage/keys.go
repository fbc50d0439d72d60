package storage

import "garage/internal/structures"

// Keys names the three slots the engine uses.
type Keys struct {
	Bootstrap string
	Working   string
	Session   string
}

func NewKeys(prefix string) Keys {
	if prefix != "" {
		prefix += ":"
	}
	return Keys{
		Bootstrap: prefix + "bootstrap",
		Working:   prefix + "working",
		Session:   prefix + "session",
	}
}

func NewKeysFromConfig(conf *structures.Config) Keys {
	return NewKeys(conf.Persistence.KeyPrefix)
}
