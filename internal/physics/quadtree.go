package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// maxTreeDepth stops subdividing so bodies at (nearly) the same position share a leaf.
const maxTreeDepth = 48

// quadrant indices: bit 0 is x >= mid, bit 1 is y >= mid
const (
	lowLow = iota
	highLow
	lowHigh
	highHigh
)

// quadNode is one square of a Barnes-Hut quadtree. Leaves hold their bodies directly;
// internal nodes hold up to four children. mass and com summarize everything below.
type quadNode struct {
	min      r2.Vec
	size     float64
	bodies   []*Body
	children [4]*quadNode
	mass     float64
	com      r2.Vec
}

func (n *quadNode) leaf() bool {
	return n.children == [4]*quadNode{}
}

func (n *quadNode) mid() r2.Vec {
	h := n.size / 2
	return r2.Vec{X: n.min.X + h, Y: n.min.Y + h}
}

func (n *quadNode) contains(p r2.Vec) bool {
	return p.X >= n.min.X && p.X <= n.min.X+n.size && p.Y >= n.min.Y && p.Y <= n.min.Y+n.size
}

func (n *quadNode) quadrant(p r2.Vec) int {
	mid := n.mid()
	q := lowLow
	if p.X >= mid.X {
		q |= highLow
	}
	if p.Y >= mid.Y {
		q |= lowHigh
	}
	return q
}

func (n *quadNode) child(q int) *quadNode {
	if c := n.children[q]; c != nil {
		return c
	}
	h := n.size / 2
	lo := n.min
	if q&highLow != 0 {
		lo.X += h
	}
	if q&lowHigh != 0 {
		lo.Y += h
	}
	c := &quadNode{min: lo, size: h}
	n.children[q] = c
	return c
}

// insert places b in the subtree rooted at n. An occupied leaf is split and its bodies are
// pushed down, unless the depth limit is reached.
func (n *quadNode) insert(b *Body, depth int) {
	if n.leaf() {
		if len(n.bodies) == 0 || depth >= maxTreeDepth {
			n.bodies = append(n.bodies, b)
			return
		}
		for _, o := range n.bodies {
			n.child(n.quadrant(o.Position)).insert(o, depth+1)
		}
		n.bodies = nil
	}
	n.child(n.quadrant(b.Position)).insert(b, depth+1)
}

// summarize fills in mass and centre of mass bottom-up.
func (n *quadNode) summarize() {
	var weighted r2.Vec
	n.mass = 0
	for _, b := range n.bodies {
		n.mass += b.Mass
		weighted = r2.Add(weighted, r2.Scale(b.Mass, b.Position))
	}
	for _, c := range n.children {
		if c == nil {
			continue
		}
		c.summarize()
		n.mass += c.mass
		weighted = r2.Add(weighted, r2.Scale(c.mass, c.com))
	}
	if n.mass > 0 {
		n.com = r2.Scale(1/n.mass, weighted)
	}
}

// forceOn returns the force on b from everything below n. A node that does not contain b
// and subtends less than theta (size over distance) is treated as a single mass.
func (n *quadNode) forceOn(b *Body, theta float64, p Params) r2.Vec {
	if n.leaf() {
		var f r2.Vec
		for _, o := range n.bodies {
			if o != b {
				f = r2.Add(f, softGravity(p, b.Mass, o.Mass, r2.Sub(o.Position, b.Position)))
			}
		}
		return f
	}
	v := r2.Sub(n.com, b.Position)
	if d := r2.Norm(v); d > 0 && n.size/d < theta && !n.contains(b.Position) {
		return softGravity(p, b.Mass, n.mass, v)
	}
	var f r2.Vec
	for _, c := range n.children {
		if c != nil {
			f = r2.Add(f, c.forceOn(b, theta, p))
		}
	}
	return f
}

// buildQuadTree returns the tree over bodies, or nil when a position is not finite.
func buildQuadTree(bodies []*Body) *quadNode {
	if len(bodies) == 0 {
		return nil
	}
	lo, hi := bodies[0].Position, bodies[0].Position
	for _, b := range bodies {
		x, y := b.Position.X, b.Position.Y
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return nil
		}
		lo.X, lo.Y = math.Min(lo.X, x), math.Min(lo.Y, y)
		hi.X, hi.Y = math.Max(hi.X, x), math.Max(hi.Y, y)
	}
	size := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if size == 0 {
		size = 1
	}
	root := &quadNode{min: lo, size: size}
	for _, b := range bodies {
		root.insert(b, 0)
	}
	root.summarize()
	return root
}
