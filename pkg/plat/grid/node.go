package grid

import (
	"fmt"
	"image"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/trsplat/pkg/aliquot"
	"github.com/matzehuels/trsplat/pkg/plat/canvas"
)

// Node is one square of an aliquot tree. The root is the whole section;
// each level down splits a square into its four quadrants.
type Node struct {
	parent   *Node
	label    aliquot.Quadrant
	depth    int
	sources  map[int]struct{}
	children [4]*Node
	claimed  bool

	// Set by Configure.
	xy  image.Point
	dim int
}

// NewTree returns an empty root node.
func NewTree() *Node { return &Node{} }

// Depth returns the node's depth; the root is 0.
func (n *Node) Depth() int { return n.depth }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Label returns the node's quadrant. It is meaningless for the root.
func (n *Node) Label() aliquot.Quadrant { return n.label }

// Claimed reports whether the node's whole square is filled.
func (n *Node) Claimed() bool { return n.claimed }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

// Children returns the existing children in quadrant order.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Sources returns the sorted lot numbers that claimed this node.
func (n *Node) Sources() []int {
	out := make([]int, 0, len(n.sources))
	for s := range n.sources {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Path returns the quadrant path from the root to n.
func (n *Node) Path() aliquot.Path {
	var p aliquot.Path
	for cur := n; cur.parent != nil; cur = cur.parent {
		p = append(p, cur.label)
	}
	slices.Reverse(p)
	return p
}

// XY returns the pixel top-left assigned by Configure.
func (n *Node) XY() image.Point { return n.xy }

// Dim returns the pixel side length assigned by Configure.
func (n *Node) Dim() int { return n.dim }

func (n *Node) child(q aliquot.Quadrant) *Node {
	c := n.children[q]
	if c == nil {
		c = &Node{parent: n, label: q, depth: n.depth + 1}
		n.children[q] = c
	}
	return c
}

// Register claims the square at path, creating nodes along the way, and
// records sources (lot numbers) on it. Several lots may claim one node.
// A path containing an invalid quadrant is a programming error and panics.
func (n *Node) Register(path aliquot.Path, sources ...int) *Node {
	cur := n
	for _, q := range path {
		if !q.Valid() {
			panic(fmt.Sprintf("grid: invalid quadrant %d in path %v", q, []aliquot.Quadrant(path)))
		}
		cur = cur.child(q)
	}
	cur.claimed = true
	cur.addSources(sources...)
	return cur
}

// RegisterNames parses each clean-notation division ("NENE") and registers it.
func (n *Node) RegisterNames(names []string, sources ...int) error {
	for _, name := range names {
		p, err := aliquot.ParsePath(name)
		if err != nil {
			return err
		}
		n.Register(p, sources...)
	}
	return nil
}

func (n *Node) addSources(sources ...int) {
	if len(sources) == 0 {
		return
	}
	if n.sources == nil {
		n.sources = make(map[int]struct{}, len(sources))
	}
	for _, s := range sources {
		n.sources[s] = struct{}{}
	}
}

// Find returns the node at path, or nil if it was never created.
func (n *Node) Find(path aliquot.Path) *Node {
	cur := n
	for _, q := range path {
		if !q.Valid() || cur.children[q] == nil {
			return nil
		}
		cur = cur.children[q]
	}
	return cur
}

// Configure assigns pixel positions below topLeft. A node at or beyond
// the configured MaxDepth absorbs its subtree: any claim below it claims the
// node itself, descendant sources move up, and the children are discarded.
func (n *Node) Configure(ctx *Context, topLeft image.Point) {
	n.dim = ctx.Settings.SecLength >> n.depth
	n.xy = topLeft
	if n.parent != nil {
		if n.label.East() {
			n.xy.X += n.dim
		}
		if n.label.South() {
			n.xy.Y += n.dim
		}
	}
	if maxDepth := ctx.Settings.MaxDepth; maxDepth > 0 && n.depth >= maxDepth {
		n.prune()
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.Configure(ctx, n.xy)
		}
	}
}

func (n *Node) prune() {
	var walk func(*Node)
	walk = func(c *Node) {
		for _, gc := range c.children {
			if gc == nil {
				continue
			}
			if gc.claimed {
				n.claimed = true
			}
			for s := range gc.sources {
				n.addSources(s)
			}
			walk(gc)
		}
	}
	walk(n)
	n.children = [4]*Node{}
}

// Fill paints every claimed square with the configured QQ fill color.
// Squares inside a claimed square are not painted again.
func (n *Node) Fill(ctx *Context) {
	if n.claimed {
		r := image.Rectangle{Min: n.xy, Max: n.xy.Add(image.Pt(n.dim, n.dim))}
		ctx.Surface.Rect(canvas.Fill, r, ctx.Settings.QQFill.NRGBA())
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.Fill(ctx)
		}
	}
}

// FilledNodes returns the nodes Fill would paint, in quadrant order.
func (n *Node) FilledNodes() []*Node {
	if n.claimed {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.children {
		if c != nil {
			out = append(out, c.FilledNodes()...)
		}
	}
	return out
}

// WriteLotNumbers labels each node at exactly atDepth that has sources
// with its sorted, comma-joined lot numbers.
func (n *Node) WriteLotNumbers(ctx *Context, atDepth int) {
	if n.depth == atDepth {
		if len(n.sources) == 0 {
			return
		}
		nums := n.Sources()
		parts := make([]string, len(nums))
		for i, s := range nums {
			parts[i] = strconv.Itoa(s)
		}
		off := ctx.Settings.LotNumOffset
		at := n.xy.Add(image.Pt(off, off))
		ctx.Surface.Text(canvas.LotNumbers, canvas.RoleLot, at, strings.Join(parts, ", "), ctx.Settings.LotFont.Color.NRGBA())
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.WriteLotNumbers(ctx, atDepth)
		}
	}
}
