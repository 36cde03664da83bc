package domain

// VendorRarity classifies how readily vendors stock an ingredient.
type VendorRarity string

const (
	RarityCommon   VendorRarity = "common"
	RarityUncommon VendorRarity = "uncommon"
	RarityRare     VendorRarity = "rare"
	RarityLimited  VendorRarity = "limited"
	// RarityUnsold is the implicit rarity of ingredients no vendor carries
	// (an empty vendor_rarity field in the reference data).
	RarityUnsold VendorRarity = "unsold"
)

// SourcePack identifies the content pack that introduces an ingredient.
// The zero value means the ingredient belongs to the base game.
type SourcePack string

const (
	PackNone         SourcePack = ""
	PackResourcePack SourcePack = "ResourcePack"
	PackDawnguard    SourcePack = "Dawnguard"
	PackDragonborn   SourcePack = "Dragonborn"
	PackFishing      SourcePack = "Fishing"
	PackHearthfire   SourcePack = "Hearthfire"
	PackRequiem      SourcePack = "Requiem"
)

// Ingredient is a single alchemy ingredient from the reference data.
// Name is the unique key. Instances are immutable after load; everything
// derived (traits, effects, compatible ingredients) is recomputed through
// the dataset store rather than stored here.
type Ingredient struct {
	Name         string
	Value        int // septim cost
	Plantable    bool
	VendorRarity VendorRarity
	UniqueTo     SourcePack
}

// hardToFind lists ingredients that are technically gatherable but come from
// sources far scarcer than ordinary non-plantable ingredients.
var hardToFind = map[string]bool{
	"Daedra Heart":    true,
	"Strange Remains": true,
}

// AccessibilityFactor scores how hard the ingredient is to obtain; lower is
// easier. The bands (plantable, price, vendor rarity, source pack) are folded
// together with the raw value and the ingredient's average potency price so
// that ties inside a band still order deterministically.
func (i *Ingredient) AccessibilityFactor(avgPotencyPrice float64) float64 {
	var res float64
	switch {
	case i.Plantable:
		res += 1
	case hardToFind[i.Name]:
		res += 9
	default:
		res += 2
	}
	res *= 2

	switch {
	case i.Value < 50:
		res += 1
	case i.Value < 250:
		res += 3
	case i.Value < 750:
		res += 5
	default:
		res += 9
	}
	res *= 2

	switch i.VendorRarity {
	case RarityCommon:
		res += 1
	case RarityUncommon:
		res += 2
	case RarityRare:
		res += 4
	case RarityLimited:
		res += 7
	default:
		res += 9
	}
	res *= 2

	switch i.UniqueTo {
	case PackNone, PackRequiem:
		res += 1
	case PackFishing:
		res += 9
	default:
		res += 4
	}
	res *= 10

	res += float64(i.Value)
	res *= 2
	res += Round2(avgPotencyPrice)

	return res
}
