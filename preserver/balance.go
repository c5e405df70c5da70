package preserver

// delimitersCount tallies the brackets seen so far. It is a lexical count:
// brackets inside string literals, char literals and comments are counted
// like any other, so a stray brace in a literal shifts block detection.
type delimitersCount struct {
	counts [6]uint // { } ( ) [ ]
}

func (d *delimitersCount) count(line string) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '{':
			d.counts[0]++
		case '}':
			d.counts[1]++
		case '(':
			d.counts[2]++
		case ')':
			d.counts[3]++
		case '[':
			d.counts[4]++
		case ']':
			d.counts[5]++
		}
	}
}

// complete reports whether every opened bracket has been closed, i.e. the
// scan is outside every block.
func (d *delimitersCount) complete() bool {
	return d.counts[0] == d.counts[1] &&
		d.counts[2] == d.counts[3] &&
		d.counts[4] == d.counts[5]
}
