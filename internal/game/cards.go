package game

import "fmt"

// Built-in card data: a generated pool of groups and plots plus the eleven
// Illuminati. Custom catalogs can be loaded from YAML (see LoadCatalogFile).

const (
	generatedGroupCount = 60
	generatedPlotCount  = 45
	groupImageStart     = 120
	plotImageStart      = 400

	prebuiltGroupCount = 30
	prebuiltPlotCount  = 15
)

var alignmentSets = [][2]string{
	{"Secret", "Government"},
	{"Weird", "Fanatic"},
	{"Corporate", "Straight"},
	{"Peaceful", "Liberal"},
	{"Violent", "Criminal"},
}

func generatedGroupCards() []*GroupCard {
	cards := make([]*GroupCard, 0, generatedGroupCount)
	for i := 0; i < generatedGroupCount; i++ {
		n := i + 1
		align := alignmentSets[i%len(alignmentSets)]
		cards = append(cards, &GroupCard{
			BaseCard: BaseCard{
				ID:          fmt.Sprintf("prebuilt-group-%d", n),
				Name:        fmt.Sprintf("Shadow Asset %d", n),
				Type:        TypeGroup,
				ImageURL:    fmt.Sprintf("/cards/table-cards/%d_transparent.png", groupImageStart+i),
				Description: "A curated operative sourced from the physical archives.",
			},
			Power:      3 + i%4,
			Resistance: 2 + (i+1)%4,
			Income:     1 + i%3,
			Alignments: []string{align[0], align[1]},
		})
	}
	return cards
}

func generatedPlotCards() []*EventCard {
	cards := make([]*EventCard, 0, generatedPlotCount)
	for i := 0; i < generatedPlotCount; i++ {
		n := i + 1
		cards = append(cards, &EventCard{BaseCard: BaseCard{
			ID:          fmt.Sprintf("prebuilt-plot-%d", n),
			Name:        fmt.Sprintf("Conspiracy Plot %d", n),
			Type:        TypePlot,
			ImageURL:    fmt.Sprintf("/cards/table-cards/%d_transparent.png", plotImageStart+i),
			Description: "An infamous scheme documented in the tabletop library.",
		}})
	}
	return cards
}

func faction(id, name, power, goal, description string, abilities ...string) *FactionCard {
	return &FactionCard{
		BaseCard: BaseCard{
			ID:          id,
			Name:        name,
			Type:        TypeFaction,
			ImageURL:    "/cards/factions/" + id + ".webp",
			Description: description,
		},
		Rarity:      "I",
		Power:       power,
		SpecialGoal: goal,
		Abilities:   abilities,
	}
}

func factionCards() []*FactionCard {
	return []*FactionCard{
		faction("adepts-of-hermes", "Adepts of Hermes", "7/7",
			"Each Magic Resource you control counts as one group toward the Basic Goal.",
			"Masters of ancient wisdom and occult knowledge, seeking to guide humanity through esoteric enlightenment.",
			"If you fail an Attack to Control against a Group from your own hand, you do not lose the group . . . just return the card to your hand.",
			"The Adepts of Hermes have a +6 on any attempt to control or destroy a Magic group."),
		faction("bavarian-illuminati", "Bavarian Illuminati", "10/10",
			"Control a total Power of 50 or more, counting Bavaria's own Power.",
			"The classic conspiracy masterminds, pulling strings from the shadows to reshape the world order.",
			"Each turn, you may declare one of your attacks privileged."),
		faction("bermuda-triangle", "Bermuda Triangle", "8/8",
			"Control a total Power of at least 35, counting Bermuda's own Power, and at least one group of each alignment. A group with more than one alignment counts for all its alignments.",
			"Mysterious forces from the depths, wielding otherworldly powers and unexplained phenomena.",
			"You may reorganize your groups freely at the end of your turn."),
		faction("discordian-society", "Discordian Society", "7/7",
			"Any Weird group with a Power of 3 or more counts double toward your total number of groups controlled.",
			"Agents of chaos and confusion, spreading discord to disrupt established power structures.",
			"You have a +4 on any attempt to control Weird groups.",
			"Your power structure is immune to attacks from Government or Straight groups, and to all special abilities of these groups."),
		faction("gnomes-of-zurich", "Gnomes of Zürich", "9/9",
			"Any Corporate group or Bank with a Power of 4 or more counts double toward your total number of groups controlled.",
			"Financial puppet masters controlling global economics through banking and monetary manipulation.",
			"You may hold 6 Plot cards in your hand, rather than the usual 5.",
			"You have a +4 on any attempt to control any Bank."),
		faction("the-network", "The Network", "8/8",
			"Any Computer group with a Power of 3 or more counts double toward your total number of groups controlled.",
			"Information brokers and media manipulators, controlling the flow of knowledge and public opinion.",
			"You start your turn by drawing two Plot cards, rather than one."),
		faction("servants-of-cthulhu", "Servants of Cthulhu", "9/9",
			"For every group you destroy, reduce by 1 the number of groups you need to control in order to win. You may also count rival Illuminati which you destroy by removing their last group. If you destroy 8 groups, you win, regardless of how many you control!",
			"Cultists serving ancient cosmic horrors, seeking to bring about the end of human civilization.",
			"You have a +4 on any attempt to destroy, even with Disasters and Assassinations.",
			"Draw a Plot card whenever you destroy a group!"),
		faction("shangri-la", "Shangri-La", "7/7",
			"Have Peaceful groups with a total Power of 30 in play, regardless of who controls them! If this happens, all Shangri-La players share the victory.",
			"Peaceful isolationists from hidden mountain sanctuaries, promoting harmony and spiritual balance.",
			"Any group in your Power Structure has an extra +5 to defend against any attack, even Instants.",
			"You cannot destroy any groups except Violent ones and rival Illuminati."),
		faction("ufos", "UFOs", "6/6",
			"The UFOs can have up to 3 different Goal cards in play, and win with any of them.",
			"Extraterrestrial visitors with advanced technology and mysterious agendas for Earth.",
			"The UFOs have two actions per turn: they get two tokens!",
			"These may not be used in the same attack."),
		faction("society-of-assassins", "Society of Assassins", "7/7",
			"Any Secret group counts double for you as long as none of your rivals control a Secret group with more power.",
			"Elite killers and shadow operatives, eliminating obstacles through precision and stealth.",
			"When one of your Fanatic groups attacks or defends, you may treat its Fanatic alignment as the same as that of any other Fanatic group.",
			"Your Fanatic groups also have Global Power equal to their Power."),
		faction("church-of-the-subgenius", "Church of the SubGenius", "7/7",
			"Up to three Slack (Illuminati) tokens on the Church of the SubGenius may count as groups toward your Basic Goal. This Goal cannot be combined with any other Goal.",
			"Satirical pseudo-religious movement promoting slack and absurdist philosophy.",
			"The Church of the SubGenius may accumulate its Action tokens ('Slack') each turn, though it can spend only one per action.",
			"It, and any SubGenius groups in its Power Structure, has +2 for direct control of any SubGenius group."),
	}
}

// prebuiltOffsets gives each faction's starting offsets into the generated
// groups and plots.
var prebuiltOffsets = map[string][2]int{
	"adepts-of-hermes":        {0, 0},
	"bavarian-illuminati":     {5, 3},
	"bermuda-triangle":        {10, 6},
	"discordian-society":      {15, 9},
	"gnomes-of-zurich":        {20, 12},
	"the-network":             {25, 15},
	"servants-of-cthulhu":     {30, 18},
	"shangri-la":              {35, 21},
	"ufos":                    {40, 24},
	"society-of-assassins":    {45, 27},
	"church-of-the-subgenius": {50, 30},
}

// DefaultCatalog returns the built-in catalog: generated groups, then plots,
// then factions.
func DefaultCatalog() *Catalog {
	var cards []Card
	for _, g := range generatedGroupCards() {
		cards = append(cards, g)
	}
	for _, p := range generatedPlotCards() {
		cards = append(cards, p)
	}
	for _, f := range factionCards() {
		cards = append(cards, f)
	}
	c, err := NewCatalog(cards)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

// PrebuiltDeck returns the card ids of the starter deck for a faction of the
// default catalog: 30 groups and 15 plots taken in sequence from the
// faction's offsets, wrapping around. Unknown factions get nil.
func PrebuiltDeck(factionID string) []string {
	off, ok := prebuiltOffsets[factionID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, prebuiltGroupCount+prebuiltPlotCount)
	for i := 0; i < prebuiltGroupCount; i++ {
		ids = append(ids, fmt.Sprintf("prebuilt-group-%d", (off[0]+i)%generatedGroupCount+1))
	}
	for i := 0; i < prebuiltPlotCount; i++ {
		ids = append(ids, fmt.Sprintf("prebuilt-plot-%d", (off[1]+i)%generatedPlotCount+1))
	}
	return ids
}

// PrebuiltFactions lists the factions that have a starter deck.
func PrebuiltFactions() []string {
	var out []string
	for _, f := range factionCards() {
		if _, ok := prebuiltOffsets[f.ID]; ok {
			out = append(out, f.ID)
		}
	}
	return out
}
