package game

import "fmt"

// Card encodes a playing card as suit*13+rank.
type Card int32

func NewCard(rank, suit int16) Card {
	return Card(suit*13 + rank)
}

// Suit returns 0..3 (clubs, diamonds, hearts, spades).
func (c Card) Suit() int16 {
	return int16(c / 13)
}

// Rank returns 0..12 (deuce through ace).
func (c Card) Rank() int16 {
	return int16(c % 13)
}

var rankNames = "23456789TJQKA"
var suitNames = "cdhs"

func (c Card) String() string {
	if c < 0 || c >= 52 {
		return fmt.Sprintf("Card(%d)", int32(c))
	}
	return string(rankNames[c.Rank()]) + string(suitNames[c.Suit()])
}

// ParseCard parses a two-character card such as "As" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	rank := -1
	for i := 0; i < len(rankNames); i++ {
		if rankNames[i] == s[0] {
			rank = i
			break
		}
	}
	suit := -1
	for i := 0; i < len(suitNames); i++ {
		if suitNames[i] == s[1] {
			suit = i
			break
		}
	}
	if rank < 0 || suit < 0 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	return NewCard(int16(rank), int16(suit)), nil
}
