package geo

import "github.com/paulmach/orb"

type endRef struct {
	frag int
	end  int // 0 = first point, 1 = last point
}

// MergeLines joins fragments sharing an endpoint coordinate into maximal
// connected line strings. Fragments are only joined where exactly two
// fragment ends meet; junctions of three or more stay split. Fragments with
// no compatible neighbour are returned unchanged.
func MergeLines(fragments []orb.LineString) []orb.LineString {
	valid := make([]orb.LineString, 0, len(fragments))
	for _, f := range fragments {
		if len(f) >= 2 {
			valid = append(valid, f)
		}
	}

	ends := make(map[orb.Point][]endRef, len(valid)*2)
	for i, f := range valid {
		ends[f[0]] = append(ends[f[0]], endRef{frag: i, end: 0})
		ends[f[len(f)-1]] = append(ends[f[len(f)-1]], endRef{frag: i, end: 1})
	}

	used := make([]bool, len(valid))
	merged := make([]orb.LineString, 0, len(valid))

	for i := range valid {
		if used[i] {
			continue
		}
		used[i] = true
		chain := append(orb.LineString(nil), valid[i]...)
		chain = extend(chain, valid, ends, used)
		chain.Reverse()
		chain = extend(chain, valid, ends, used)
		chain.Reverse()
		merged = append(merged, chain)
	}

	return merged
}

// extend grows the chain at its tail while the tail point joins exactly one
// other unused fragment.
func extend(chain orb.LineString, fragments []orb.LineString, ends map[orb.Point][]endRef, used []bool) orb.LineString {
	for {
		tail := chain[len(chain)-1]
		if tail == chain[0] && len(chain) > 2 {
			return chain // closed ring
		}
		refs := ends[tail]
		if len(refs) != 2 {
			return chain
		}
		var next *endRef
		for k := range refs {
			if !used[refs[k].frag] {
				next = &refs[k]
				break
			}
		}
		if next == nil {
			return chain
		}
		used[next.frag] = true
		frag := fragments[next.frag]
		if next.end == 0 {
			chain = append(chain, frag[1:]...)
		} else {
			for k := len(frag) - 2; k >= 0; k-- {
				chain = append(chain, frag[k])
			}
		}
	}
}
