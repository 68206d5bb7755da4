package align

import (
	"unicode"

	"github.com/iw2rmb/lispedit/buffer"
	"github.com/iw2rmb/lispedit/sexp"
)

// scanCouples walks a series of key/value couples starting at the buffer's
// current position, calling visit with the position parked at each value
// start (reader prefixes included). listp selects bracketed [key value]
// couples; otherwise couples are bare key value pairs. There is no
// terminator token: the walk ends silently at the first point where no
// further structure exists. A couple whose key and value sit on different
// lines is skipped without ending the walk. Zero couples is not an error.
func scanCouples(buf *buffer.Buffer, listp bool, visit func()) {
	cur := sexp.New(buf)
	for {
		if listp {
			if err := cur.DownList(); err != nil {
				return
			}
		}
		if err := cur.ForwardSexp(); err != nil { // across the key
			return
		}
		keyRow := rowAt(buf, buf.Pos())
		if err := cur.ForwardSexp(); err != nil { // across the value
			return
		}
		if err := cur.BackwardSexp(); err != nil { // back to the value start
			return
		}
		if rowAt(buf, buf.Pos()) == keyRow {
			visit()
		}
		if listp {
			if err := cur.UpList(); err != nil {
				return
			}
		} else {
			if err := cur.ForwardSexp(); err != nil {
				return
			}
		}
	}
}

func rowAt(buf *buffer.Buffer, off int) int {
	p, _ := buf.PosFromOffset(off)
	return p.Row
}

// couplesAreBracketed peeks at the first expression after start: an opening
// delimiter means [key value] couples, anything else bare pairs.
func couplesAreBracketed(buf *buffer.Buffer, start int) bool {
	text := []rune(buf.Text())
	for i := start; i < len(text); i++ {
		r := text[i]
		if unicode.IsSpace(r) {
			continue
		}
		if r == ';' {
			for i < len(text) && text[i] != '\n' {
				i++
			}
			continue
		}
		return r == '[' || r == '(' || r == '{'
	}
	return false
}

// valueEnd returns the offset just past the expression at the current
// position, leaving the position where it was.
func valueEnd(buf *buffer.Buffer) int {
	at := buf.Pos()
	end := at
	if err := sexp.New(buf).ForwardSexp(); err == nil {
		end = buf.Pos()
	}
	buf.SetPos(at)
	return end
}
