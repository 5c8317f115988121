package vochorus

// mixdown writes output sample i from the overlap-added ring paths and
// advances the read cursors.
func (n *Note) mixdown(out [][]float64, i int, p *renderParams) {
	b := n.bank
	headroom := n.engine.cfg.Headroom

	center := b.Sum(pathCenter) * p.centerMix
	left := b.Sum(pathLeft) * p.sideMix
	right := b.Sum(pathRight) * p.sideMix

	if p.pan == PanBoth {
		v := (center + left + right) * headroom
		for _, ch := range out {
			ch[i] = v
		}
	} else {
		v := left / 2
		if p.pan == PanLeft {
			v += center
		}
		out[0][i] = v * headroom

		if len(out) > 1 {
			v = right / 2
			if p.pan == PanRight {
				v += center
			}
			out[1][i] = v * headroom
		}
	}

	b.Advance()
}
