package images

import "image"

// LogoCache holds the two logos of the game currently on screen. It never
// holds logos for more than one identity.
type LogoCache struct {
	identity string
	away     image.Image
	home     image.Image
}

// Store replaces the cache with the logos for identity.
func (c *LogoCache) Store(identity string, away, home image.Image) {
	c.identity = identity
	c.away = away
	c.home = home
}

// Get returns the cached logos when they belong to identity.
func (c *LogoCache) Get(identity string) (away, home image.Image, ok bool) {
	if c.identity == "" || c.identity != identity {
		return nil, nil, false
	}
	return c.away, c.home, true
}

// Reset drops the cached logos.
func (c *LogoCache) Reset() {
	*c = LogoCache{}
}
