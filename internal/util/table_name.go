package util

import (
	"fmt"
	"math/rand"
	"time"
)

var tableAdjectives = []string{
	"Lucky", "Silent", "Golden", "Crimson", "Midnight", "Velvet", "Rolling", "Wild", "Iron", "Neon",
	"Lazy", "Grand", "Bold", "Quiet", "Rusty", "Copper", "Emerald", "Smoky", "Royal", "Broken",
}

var tableNouns = []string{
	"River", "Turn", "Flop", "Kicker", "Ace", "Cowboy", "Lady", "Deuce", "Button", "Blind",
	"Felt", "Nuts", "Bullet", "Rivet", "Joker", "Wheel", "Gutshot", "Boat", "Quads", "Muck",
}

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

// RandomTableName returns a table name for hands archived without one
func RandomTableName() string {
	adjective := tableAdjectives[random.Intn(len(tableAdjectives))]
	noun := tableNouns[random.Intn(len(tableNouns))]

	return fmt.Sprintf("%s %s", adjective, noun)
}
