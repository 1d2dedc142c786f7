package board

import (
	"sync"

	nchess "github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var ecoBook = sync.OnceValue(opening.NewBookECO)

// Opening names the ECO opening reached by the game's moves. Empty strings mean no match.
func Opening(game *nchess.Game) (code, title string) {
	if game == nil || len(game.Moves()) == 0 {
		return "", ""
	}
	book := ecoBook()
	if book == nil {
		return "", ""
	}
	if eco := book.Find(game.Moves()); eco != nil {
		return eco.Code(), eco.Title()
	}
	return "", ""
}
