package hero

import "github.com/cxsxrrrr/PokeMart/internal/prefs"

const BackImage = "/assets/back.png"

// Art is what the hero card shows on each face.
type Art struct {
	Front string
	Alt   string
	Back  string
}

var (
	lightArt = Art{
		Front: "/assets/cards/charizarday.png",
		Alt:   "Charizard arte diurno Carta Destacada",
		Back:  BackImage,
	}
	darkArt = Art{
		Front: "/assets/Charizard_ex.png",
		Alt:   "Charizard EX Carta Destacada",
		Back:  BackImage,
	}
)

func ArtFor(t prefs.Theme) Art {
	if t == prefs.Dark {
		return darkArt
	}
	return lightArt
}
