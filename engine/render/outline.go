package render

import (
	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
)

// OutlineStyles is the number of outline styles.
const OutlineStyles = 19

const slots = int(font.LastSlot-font.FirstSlot) + 1

// outlineTable holds TheDraw's outline styles. Columns are the placeholders
// 'A'…'R'; 'O' (hole) and the trailing columns draw blanks.
var outlineTable = [OutlineStyles][slots]rune{
	{'─', '─', '│', '│', '┌', '┐', '┌', '┐', '└', '┘', '└', '┘', '┤', '├', ' ', ' ', ' ', ' '},
	{'═', '─', '│', '│', '╒', '╕', '┌', '┐', '╘', '╛', '└', '┘', '╡', '├', ' ', ' ', ' ', ' '},
	{'─', '═', '│', '│', '┌', '┐', '╒', '╕', '└', '┘', '╘', '╛', '┤', '╞', ' ', ' ', ' ', ' '},
	{'═', '═', '│', '│', '╒', '╕', '╒', '╕', '╘', '╛', '╘', '╛', '╡', '╞', ' ', ' ', ' ', ' '},
	{'─', '─', '║', '│', '╓', '┐', '┌', '╖', '└', '╜', '╙', '┘', '╢', '├', ' ', ' ', ' ', ' '},
	{'═', '─', '║', '│', '╔', '╕', '┌', '╖', '╘', '╝', '╙', '┘', '╣', '├', ' ', ' ', ' ', ' '},
	{'─', '═', '║', '│', '╓', '┐', '╒', '╗', '└', '╜', '╚', '╛', '╢', '╞', ' ', ' ', ' ', ' '},
	{'═', '═', '║', '│', '╔', '╕', '╒', '╗', '╘', '╝', '╚', '╛', '╣', '╞', ' ', ' ', ' ', ' '},
	{'─', '─', '│', '║', '┌', '╖', '╓', '┐', '╙', '┘', '└', '╜', '┤', '╟', ' ', ' ', ' ', ' '},
	{'═', '─', '│', '║', '╒', '╗', '╓', '┐', '╚', '╛', '└', '╜', '╡', '╟', ' ', ' ', ' ', ' '},
	{'─', '═', '│', '║', '┌', '╖', '╔', '╕', '╙', '┘', '╘', '╝', '┤', '╠', ' ', ' ', ' ', ' '},
	{'═', '═', '│', '║', '╒', '╗', '╔', '╕', '╚', '╛', '╘', '╝', '╡', '╠', ' ', ' ', ' ', ' '},
	{'─', '─', '║', '║', '╓', '╖', '╓', '╖', '╙', '╜', '╙', '╜', '╢', '╟', ' ', ' ', ' ', ' '},
	{'═', '─', '║', '║', '╔', '╗', '╓', '╖', '╚', '╝', '╙', '╜', '╣', '╟', ' ', ' ', ' ', ' '},
	{'─', '═', '║', '║', '╓', '╖', '╔', '╗', '╙', '╜', '╚', '╝', '╢', '╠', ' ', ' ', ' ', ' '},
	{'═', '═', '║', '║', '╔', '╗', '╔', '╗', '╚', '╝', '╚', '╝', '╣', '╠', ' ', ' ', ' ', ' '},
	{'▄', '▄', '█', '█', '▄', '▄', '▄', '▄', '█', '█', '█', '█', '█', '█', ' ', ' ', ' ', ' '},
	{'▀', '▀', '█', '█', '█', '█', '█', '█', '▀', '▀', '▀', '▀', '█', '█', ' ', ' ', ' ', ' '},
	{'▀', '▄', '▐', '▌', '▐', '▌', '▄', '▄', '▀', '▀', '▐', '▌', '█', '█', ' ', ' ', ' ', ' '},
}

// OutlineChar returns the character drawn for placeholder slot 'A'…'R' in
// a given outline style.
func OutlineChar(style int, slot byte) (rune, error) {
	if style < 0 || style >= OutlineStyles {
		return 0, core.WrapError(ErrOutlineStyle, core.EINVALID,
			"outline style %d not in 0…%d", style, OutlineStyles-1)
	}
	if slot < font.FirstSlot || slot > font.LastSlot {
		return 0, core.Error(core.EINVALID, "outline placeholder %q not in 'A'…'R'", slot)
	}
	return outlineTable[style][slot-font.FirstSlot], nil
}
