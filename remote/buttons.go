package remote

// Button is a scan code sent by the IR receiver for one key on the remote.
type Button uint8

const (
	POWER Button = 0x45

	VOLUP   Button = 0x46
	VOLDOWN Button = 0x15

	FUNC Button = 0x47

	SEEK_LEFT  Button = 0x44
	PLAY       Button = 0x40
	SEEK_RIGHT Button = 0x43

	DOWN Button = 0x07
	UP   Button = 0x09

	EQ   Button = 0x19
	REPT Button = 0x0D

	ZERO  Button = 0x16
	ONE   Button = 0x0C
	TWO   Button = 0x18
	THREE Button = 0x5E
	FOUR  Button = 0x08
	FIVE  Button = 0x1C
	SIX   Button = 0x5A
	SEVEN Button = 0x42
	EIGHT Button = 0x52
	NINE  Button = 0x4A
)

// table order, matches the layout of the remote
var buttons = [...]Button{
	POWER,
	VOLUP, VOLDOWN,
	FUNC,
	SEEK_LEFT, PLAY, SEEK_RIGHT,
	DOWN, UP,
	EQ, REPT,
	ZERO, ONE, TWO, THREE, FOUR, FIVE, SIX, SEVEN, EIGHT, NINE,
}

var names = map[Button]string{
	POWER:      "POWER",
	VOLUP:      "VOLUP",
	VOLDOWN:    "VOLDOWN",
	FUNC:       "FUNC",
	SEEK_LEFT:  "SEEK_LEFT",
	PLAY:       "PLAY",
	SEEK_RIGHT: "SEEK_RIGHT",
	DOWN:       "DOWN",
	UP:         "UP",
	EQ:         "EQ",
	REPT:       "REPT",
	ZERO:       "ZERO",
	ONE:        "ONE",
	TWO:        "TWO",
	THREE:      "THREE",
	FOUR:       "FOUR",
	FIVE:       "FIVE",
	SIX:        "SIX",
	SEVEN:      "SEVEN",
	EIGHT:      "EIGHT",
	NINE:       "NINE",
}

var digits = map[Button]int{
	ZERO:  0,
	ONE:   1,
	TWO:   2,
	THREE: 3,
	FOUR:  4,
	FIVE:  5,
	SIX:   6,
	SEVEN: 7,
	EIGHT: 8,
	NINE:  9,
}
