package align

import (
	"strings"

	"github.com/iw2rmb/lispedit"
	"github.com/iw2rmb/lispedit/buffer"
)

// Align right-aligns the value column of the couple series starting at
// start. It measures first, then pads: every value whose key shares its
// line moves out to the rightmost observed value column, and continuation
// lines of multi-line values shift with their first line. Already-aligned
// input is left untouched. The original position is restored on every
// exit, including the error path.
//
// Two couples on one line leave no single target column; that is a user
// error and the buffer stays byte-for-byte unchanged.
func Align(buf *buffer.Buffer, start int) error {
	origin := buf.Pos()
	defer buf.SetPos(origin)

	listp := couplesAreBracketed(buf, start)

	maxCol := -1
	sameLine := false
	seen := make(map[int]bool)
	buf.SetPos(start)
	scanCouples(buf, listp, func() {
		row := rowAt(buf, buf.Pos())
		if seen[row] {
			sameLine = true
		}
		seen[row] = true
		if col := buf.ColumnAt(buf.Pos()); col > maxCol {
			maxCol = col
		}
	})
	if sameLine {
		return lispedit.Userf("couples on same line")
	}
	if maxCol < 0 {
		return nil
	}

	buf.SetPos(start)
	scanCouples(buf, listp, func() {
		at := buf.Pos()
		pad := maxCol - buf.ColumnAt(at)
		if pad <= 0 {
			return
		}
		end := valueEnd(buf)
		buf.Insert(at, strings.Repeat(" ", pad))
		buf.IndentRigidly(buffer.Span{Start: buf.Pos(), End: end + pad}, pad)
	})
	return nil
}

// Unalign collapses the whitespace before each value to exactly one space
// and re-flows continuation lines by the same shift. It normalizes rather
// than inverts: repeated runs are no-ops, but pre-Align spacing wider than
// one space is not reconstructed.
func Unalign(buf *buffer.Buffer, start int) {
	origin := buf.Pos()
	defer buf.SetPos(origin)

	listp := couplesAreBracketed(buf, start)

	buf.SetPos(start)
	scanCouples(buf, listp, func() {
		at := buf.Pos()
		ws := at
		for ws > 0 {
			r, ok := buf.RuneAt(ws - 1)
			if !ok || (r != ' ' && r != '\t') {
				break
			}
			ws--
		}
		if at-ws == 1 {
			if r, _ := buf.RuneAt(ws); r == ' ' {
				return
			}
		}
		if ws == at {
			return
		}
		colBefore := buf.ColumnAt(at)
		end := valueEnd(buf)
		buf.Delete(buffer.Span{Start: ws, End: at})
		buf.Insert(ws, " ")
		shift := ws + 1 - at
		delta := buf.ColumnAt(buf.Pos()) - colBefore
		buf.IndentRigidly(buffer.Span{Start: buf.Pos(), End: end + shift}, delta)
	})
}
