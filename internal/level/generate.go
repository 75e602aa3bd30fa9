package level

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nlaracuente/personalspace/internal/floor"
	"github.com/nlaracuente/personalspace/internal/telemetry"
)

// ErrFloorTooSmall reports a generation area with no space for a room.
var ErrFloorTooSmall = errors.New("level: generation area too small")

const (
	// Room dimensions leave space to sidestep a chaser.
	minRoomSide = 3
	maxRoomSide = 7
	// Partitions stop splitting below this, one room plus its margin.
	minLeafSide = minRoomSide + 2
)

// Generate carves a procedural floor layout: binary space partitioning
// places rooms, corridors join sibling partitions, and everything
// uncarved stays absent, so the rooms hang as one connected island. The
// player starts in the first room and up to chasers marks go to the
// rooms farthest from it.
func Generate(ctx context.Context, name string, width, height, chasers int, rng *rand.Rand) (*Layout, error) {
	_, span := telemetry.Tracer("level").Start(ctx, "level.generate")
	defer span.End()

	if width < minLeafSide+2 || height < minLeafSide+2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFloorTooSmall, width, height)
	}

	g := &generator{rng: rng, cells: make(map[floor.Coord]CellKind)}
	root := &genNode{x: 1, y: 1, w: width - 2, h: height - 2}
	g.split(root)
	g.carveRooms(root)
	g.connect(root)

	player := g.rooms[0].center()
	others := append([]genRoom(nil), g.rooms[1:]...)
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].center().Manhattan(player) > others[j].center().Manhattan(player)
	})
	for i := 0; i < chasers && i < len(others); i++ {
		g.cells[others[i].center()] = CellChaserSpawn
	}
	g.cells[player] = CellPlayerSpawn

	span.SetAttributes(
		attribute.String("layout", name),
		attribute.Int("rooms", len(g.rooms)),
		attribute.Int("cells", len(g.cells)),
	)
	return &Layout{Name: name, cells: g.cells}, nil
}

type generator struct {
	rng   *rand.Rand
	cells map[floor.Coord]CellKind
	rooms []genRoom
}

// genNode is one partition in the BSP tree.
type genNode struct {
	x, y, w, h  int
	left, right *genNode
	room        *genRoom
}

func (n *genNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// genRoom is a carved rectangle, coordinates at its top-left.
type genRoom struct {
	x, y, w, h int
}

func (r genRoom) center() floor.Coord {
	return floor.C(r.x+r.w/2, r.y+r.h/2)
}

// split recursively partitions a node until no axis can hold two leaves.
func (g *generator) split(n *genNode) {
	if n.w < minLeafSide*2 && n.h < minLeafSide*2 {
		return
	}

	vertical := n.w > n.h
	if vertical && n.w < minLeafSide*2 {
		vertical = false
	}
	if !vertical && n.h < minLeafSide*2 {
		vertical = true
	}

	if vertical {
		max := n.w - minLeafSide
		if max <= minLeafSide {
			return
		}
		at := minLeafSide + g.rng.Intn(max-minLeafSide+1)
		n.left = &genNode{x: n.x, y: n.y, w: at, h: n.h}
		n.right = &genNode{x: n.x + at, y: n.y, w: n.w - at, h: n.h}
	} else {
		max := n.h - minLeafSide
		if max <= minLeafSide {
			return
		}
		at := minLeafSide + g.rng.Intn(max-minLeafSide+1)
		n.left = &genNode{x: n.x, y: n.y, w: n.w, h: at}
		n.right = &genNode{x: n.x, y: n.y + at, w: n.w, h: n.h - at}
	}

	g.split(n.left)
	g.split(n.right)
}

// carveRooms places one room inside every leaf, a margin of absence on
// each side.
func (g *generator) carveRooms(n *genNode) {
	if n == nil {
		return
	}
	if !n.isLeaf() {
		g.carveRooms(n.left)
		g.carveRooms(n.right)
		return
	}

	w := minRoomSide + g.rng.Intn(min(maxRoomSide, n.w-2)-minRoomSide+1)
	h := minRoomSide + g.rng.Intn(min(maxRoomSide, n.h-2)-minRoomSide+1)
	room := genRoom{
		x: n.x + 1 + g.rng.Intn(n.w-w-1),
		y: n.y + 1 + g.rng.Intn(n.h-h-1),
		w: w,
		h: h,
	}
	n.room = &room
	g.rooms = append(g.rooms, room)

	for y := room.y; y < room.y+room.h; y++ {
		for x := room.x; x < room.x+room.w; x++ {
			g.cells[floor.C(x, y)] = CellFloor
		}
	}
}

// connect joins each pair of sibling partitions with an L-shaped
// corridor between two of their rooms.
func (g *generator) connect(n *genNode) {
	if n == nil || n.isLeaf() {
		return
	}
	g.connect(n.left)
	g.connect(n.right)

	a := anyRoom(n.left)
	b := anyRoom(n.right)
	if a == nil || b == nil {
		return
	}
	ac, bc := a.center(), b.center()
	if g.rng.Intn(2) == 0 {
		g.carveRun(ac.X, bc.X, ac.Y, true)
		g.carveRun(ac.Y, bc.Y, bc.X, false)
	} else {
		g.carveRun(ac.Y, bc.Y, ac.X, false)
		g.carveRun(ac.X, bc.X, bc.Y, true)
	}
}

func anyRoom(n *genNode) *genRoom {
	if n == nil {
		return nil
	}
	if n.room != nil {
		return n.room
	}
	if r := anyRoom(n.left); r != nil {
		return r
	}
	return anyRoom(n.right)
}

// carveRun lays a straight floor line from one ordinate to another,
// horizontal when horiz is set, at the given cross ordinate.
func (g *generator) carveRun(from, to, at int, horiz bool) {
	if from > to {
		from, to = to, from
	}
	for i := from; i <= to; i++ {
		if horiz {
			g.cells[floor.C(i, at)] = CellFloor
		} else {
			g.cells[floor.C(at, i)] = CellFloor
		}
	}
}
