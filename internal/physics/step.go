package physics

// Step advances the world one tick and returns the number of colliding pairs.
func (w *World[T]) Step() int {
	collisions := w.Collide()
	w.Confine()
	w.Integrate()
	return collisions
}

// Collide resolves every overlapping pair a<b once, in a single forward sweep.
//
// Ball a's position and velocity accumulate in locals across all its
// partners and are written back after the inner loop, while ball b's entries
// are updated immediately. Later pairs therefore see b's corrected values but
// not a's, so overlaps on one ball compound within a sweep.
func (w *World[T]) Collide() int {
	o := w.ops
	n := len(w.r)
	collisions := 0

	for a := 0; a < n-1; a++ {
		pxa, pya := w.px[a], w.py[a]
		vxa, vya := w.vx[a], w.vy[a]
		ra, ma := w.r[a], w.m[a]

		for b := a + 1; b < n; b++ {
			pxb, pyb, rb := w.px[b], w.py[b], w.r[b]
			dx, dy := o.Sub(pxa, pxb), o.Sub(pya, pyb)
			d2 := o.Add(o.Mul(dx, dx), o.Mul(dy, dy))
			contact := o.Add(ra, rb)

			if !o.Less(d2, o.Mul(contact, contact)) {
				continue
			}
			collisions++

			mb := w.m[b]
			vxb, vyb := w.vx[b], w.vy[b]

			d := o.Sqrt(d2)
			cdx, cdy := w.one, w.zero
			// coincident centres keep the fixed normal (1,0)
			if o.Less(w.zero, d) {
				cdx = o.Div(o.Sub(pxb, pxa), d)
				cdy = o.Div(o.Sub(pyb, pya), d)
			}

			// move each ball apart by half the overlap
			shift := o.Mul(w.half, o.Sub(contact, d))
			sx, sy := o.Mul(shift, cdx), o.Mul(shift, cdy)
			pxa, pya = o.Sub(pxa, sx), o.Sub(pya, sy)
			w.px[b], w.py[b] = o.Add(pxb, sx), o.Add(pyb, sy)

			// velocity components along the contact normal
			vca := o.Add(o.Mul(vxa, cdx), o.Mul(vya, cdy))
			vcb := o.Add(o.Mul(vxb, cdx), o.Mul(vyb, cdy))

			msum := o.Add(ma, mb)
			dva := o.Sub(o.Div(o.Add(o.Mul(vca, o.Sub(ma, mb)), o.Mul(o.Mul(w.two, mb), vcb)), msum), vca)
			dvb := o.Sub(o.Div(o.Add(o.Mul(vcb, o.Sub(mb, ma)), o.Mul(o.Mul(w.two, ma), vca)), msum), vcb)

			// restitution scales the change, not the outgoing velocity
			dva, dvb = o.Mul(dva, w.e), o.Mul(dvb, w.e)

			vxa, vya = o.Add(vxa, o.Mul(dva, cdx)), o.Add(vya, o.Mul(dva, cdy))
			w.vx[b], w.vy[b] = o.Add(vxb, o.Mul(dvb, cdx)), o.Add(vyb, o.Mul(dvb, cdy))
		}

		w.px[a], w.py[a] = pxa, pya
		w.vx[a], w.vy[a] = vxa, vya
	}

	return collisions
}

// Confine clamps every ball into the arena, reflecting and damping the
// velocity on each axis that was clamped.
func (w *World[T]) Confine() {
	o := w.ops
	for i, r := range w.r {
		if o.Less(w.px[i], r) {
			w.px[i] = r
			w.vx[i] = w.bounce(w.vx[i])
		}
		if o.Less(w.width, o.Add(w.px[i], r)) {
			w.px[i] = o.Sub(w.width, r)
			w.vx[i] = w.bounce(w.vx[i])
		}
		if o.Less(w.py[i], r) {
			w.py[i] = r
			w.vy[i] = w.bounce(w.vy[i])
		}
		if o.Less(w.height, o.Add(w.py[i], r)) {
			w.py[i] = o.Sub(w.height, r)
			w.vy[i] = w.bounce(w.vy[i])
		}
	}
}

func (w *World[T]) bounce(v T) T {
	return w.ops.Mul(w.ops.Sub(w.zero, v), w.e)
}

// Integrate applies the held acceleration: v += a; p += v.
func (w *World[T]) Integrate() {
	o := w.ops
	for i := range w.r {
		w.vx[i] = o.Add(w.vx[i], w.accX)
		w.vy[i] = o.Add(w.vy[i], w.accY)
		w.px[i] = o.Add(w.px[i], w.vx[i])
		w.py[i] = o.Add(w.py[i], w.vy[i])
	}
}
