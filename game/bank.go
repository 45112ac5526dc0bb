package game

// BankResourceCount is the bank's starting stock per resource kind. The total
// per kind is conserved across bank and hands for the whole game.
const BankResourceCount = 19

// Development deck composition of the standard game.
var devDeckPool = []DevCard{}

func init() {
	add := func(c DevCard, n int) {
		for i := 0; i < n; i++ {
			devDeckPool = append(devDeckPool, c)
		}
	}
	add(Knight, 14)
	add(VictoryPointCard, 5)
	add(RoadBuilding, 2)
	add(YearOfPlenty, 2)
	add(Monopoly, 2)
}

// DevDeckSize is the number of development cards in a fresh deck.
var DevDeckSize = len(devDeckPool)

// Bank holds the shared resource pool and the remaining development deck,
// drawn from the front.
type Bank struct {
	Resources Freqdeck
	DevDeck   []DevCard
}

func newBank(rng *RNG) Bank {
	deck := append([]DevCard(nil), devDeckPool...)
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	var resources Freqdeck
	for r := range resources {
		resources[r] = BankResourceCount
	}
	return Bank{Resources: resources, DevDeck: deck}
}

func (b Bank) copy() Bank {
	b.DevDeck = append([]DevCard(nil), b.DevDeck...)
	return b
}

// draw removes and returns the top development card.
func (b *Bank) draw() (DevCard, bool) {
	if len(b.DevDeck) == 0 {
		return 0, false
	}
	card := b.DevDeck[0]
	b.DevDeck = b.DevDeck[1:]
	return card, true
}
