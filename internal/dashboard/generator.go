// Package dashboard generates the randomized demo data shown by the dashboard widgets.
// Nothing here measures anything; a seed makes the output reproducible.
package dashboard

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/google/uuid"
)

type Generator struct {
	rng *rand.Rand
	now time.Time
}

// New returns a generator for seed, anchored at now.
func New(seed int64, now time.Time) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now.UTC()}
}

var platforms = []models.Platform{
	models.PlatformTwitter,
	models.PlatformInstagram,
	models.PlatformFacebook,
	models.PlatformTelegram,
	models.PlatformLinkedIn,
}

var handlePrefixes = []string{"real", "official", "the", "support", "crypto", "daily", "news", "promo", "giveaway", "help"}
var handleStems = []string{"brand", "alex", "sam", "shop", "wallet", "deals", "fan", "team", "desk", "updates"}

func (g *Generator) pick(list []string) string {
	return list[g.rng.Intn(len(list))]
}

func (g *Generator) platform() models.Platform {
	return platforms[g.rng.Intn(len(platforms))]
}

func (g *Generator) username() string {
	return fmt.Sprintf("%s_%s%d", g.pick(handlePrefixes), g.pick(handleStems), g.rng.Intn(9000)+100)
}

// between returns an int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) uuid() uuid.UUID {
	var b [16]byte
	g.rng.Read(b[:])
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return uuid.UUID(b)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
