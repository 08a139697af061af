package roadnet

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

func v(x, y float64) r3.Vector { return r3.Vector{X: x, Y: y} }

func TestModelRemoveUnlinks(t *testing.T) {
	m := buildCrossroads(t, quietConfig(), 2)
	x := m.IntersectionBy("x")
	e := m.RoadBy("e")

	s := newSideWalk(rect(5, 5, 45, 8), "e")
	s.Parent = e
	m.AddSideWalk(s)

	m.RemoveRoad(e)

	if m.RoadBy("e") != nil {
		t.Errorf("road e still found")
	}
	if len(m.Roads()) != 3 {
		t.Errorf("got %d roads, want 3", len(m.Roads()))
	}
	for _, n := range x.Neighbors() {
		if n == RoadBase(e) {
			t.Errorf("intersection still links to the removed road")
		}
	}
	if len(x.Neighbors()) != 3 {
		t.Errorf("got %d neighbours, want 3", len(x.Neighbors()))
	}
	for _, l := range x.TrafficSignal.Lights {
		if l.Road == RoadBase(e) {
			t.Errorf("light still faces the removed road")
		}
	}
	if s.Parent != nil {
		t.Errorf("sidewalk parent should be cleared")
	}

	m.RemoveIntersection(x)
	for _, r := range m.Roads() {
		if r.Prev != nil || r.Next != nil {
			t.Errorf("road %v still linked after intersection removal", r.Origins())
		}
	}

	m.RemoveSideWalk(s)
	if len(m.SideWalks()) != 0 {
		t.Errorf("got %d sidewalks, want 0", len(m.SideWalks()))
	}
}

func TestModelLookups(t *testing.T) {
	m := buildCrossroads(t, quietConfig(), 2)

	if m.RoadBaseBy("x") != RoadBase(m.IntersectionBy("x")) {
		t.Errorf("RoadBaseBy(x) should be the intersection")
	}
	if m.RoadBaseBy("e") != RoadBase(m.RoadBy("e")) {
		t.Errorf("RoadBaseBy(e) should be the road")
	}
	if m.RoadBaseBy("nope") != nil || m.SideWalkBy("e") != nil {
		t.Errorf("expected misses to be nil")
	}
	if len(m.RoadBases()) != 5 {
		t.Errorf("got %d road bases, want 5", len(m.RoadBases()))
	}
}

func TestModelNeighbors(t *testing.T) {
	m := buildCrossroads(t, quietConfig(), 2)
	x := m.IntersectionBy("x")
	e := m.RoadBy("e")

	s := newSideWalk(rect(5, 5, 45, 8), "e")
	s.Parent = e
	m.AddSideWalk(s)

	if got := m.NeighborRoads(x); len(got) != 4 {
		t.Errorf("got %d neighbour roads, want 4", len(got))
	}
	if got := m.NeighborIntersections(e); len(got) != 1 || got[0] != x {
		t.Errorf("got %v, want the intersection", got)
	}
	if got := m.NeighborRoadBases(e); len(got) != 1 {
		t.Errorf("got %d neighbours for e, want 1", len(got))
	}
	if got := m.ConnectedRoadBases(e); len(got) != 2 {
		t.Errorf("got %d connected to e, want 2 (intersection & sidewalk)", len(got))
	}
	if got := m.ConnectedSideWalks(e); len(got) != 1 || got[0] != s {
		t.Errorf("got %v, want the sidewalk", got)
	}
	if got := m.ConnectedIntersections(s); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
	if got := m.ConnectedRoads(s); len(got) != 1 || got[0] != e {
		t.Errorf("got %v, want road e", got)
	}

	all := m.ConnectedRoadBasesRecursive(s)
	if len(all) != 5 {
		t.Errorf("got %d reachable, want 5", len(all))
	}
	for _, rb := range all {
		if rb == RoadBase(s) {
			t.Errorf("start should not be included")
		}
	}
	if m.ConnectedRoadBasesRecursive(nil) != nil {
		t.Errorf("expected nil for a nil start")
	}
}

func TestModelStats(t *testing.T) {
	cfg := quietConfig()
	cfg.CalibrateIntersection = false
	m := buildCrossroads(t, cfg, 2)

	got := m.Stats()
	want := &ModelStats{Roads: 4, Intersections: 1, Lanes: 12, TotalRoadLength: 160}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
}

// straight two lane roads along the x axis from x0 to x1, 5 wide
func straightRoad(origin string, x0, x1 float64) *Road {
	r := newRoad(origin)
	r.RightWay = []r3.Vector{v(x0, 0), v(x1, 0)}
	r.LeftWay = []r3.Vector{v(x0, 5), v(x1, 5)}
	r.PrevBorder = []r3.Vector{v(x0, 5), v(x0, 0)}
	r.NextBorder = []r3.Vector{v(x1, 0), v(x1, 5)}
	r.Lanes = makeLanes(5, 2.5)
	return r
}

func TestMergeRoadGroup(t *testing.T) {
	m := NewModel()
	x1, x2 := newIntersection("x1"), newIntersection("x2")
	a := straightRoad("a", 0, 10)
	b := straightRoad("b", 10, 20)
	b.reverse()

	a.Prev, a.Next = x1, b
	b.Prev, b.Next = x2, a
	x1.Edges = []*IntersectionEdge{{Border: []r3.Vector{v(0, 0), v(0, 5)}, Road: a}}
	x2.Edges = []*IntersectionEdge{{Border: []r3.Vector{v(20, 5), v(20, 0)}, Road: b}}

	s := newSideWalk(rect(10, 5, 20, 8), "b")
	s.Parent = b

	m.AddRoad(a)
	m.AddRoad(b)
	m.AddIntersection(x1)
	m.AddIntersection(x2)
	m.AddSideWalk(s)

	if got := m.MergeRoadGroup(); got != 1 {
		t.Fatalf("got %d merged, want 1", got)
	}
	roads := m.Roads()
	if len(roads) != 1 || roads[0] != a {
		t.Fatalf("got roads %v, want just a", roads)
	}

	if a.Prev != RoadBase(x1) || a.Next != RoadBase(x2) {
		t.Errorf("got prev %v next %v, want x1 & x2", a.Prev, a.Next)
	}
	if x2.Edges[0].Road != RoadBase(a) || s.Parent != RoadBase(a) {
		t.Errorf("links to b were not moved to a")
	}
	if diff := cmp.Diff([]r3.Vector{v(0, 0), v(10, 0), v(20, 0)}, a.RightWay); diff != "" {
		t.Errorf("right way (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]r3.Vector{v(0, 5), v(10, 5), v(20, 5)}, a.LeftWay); diff != "" {
		t.Errorf("left way (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]r3.Vector{v(20, 0), v(20, 5)}, a.NextBorder); diff != "" {
		t.Errorf("next border (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, a.Origins()); diff != "" {
		t.Errorf("origins (-want +got):\n%s", diff)
	}
	if a.Length() != 20 {
		t.Errorf("got length %v, want 20", a.Length())
	}
}

func TestMergeRoadGroupSkips(t *testing.T) {
	// a loop with no way out
	m := NewModel()
	a, b := straightRoad("a", 0, 10), straightRoad("b", 10, 20)
	a.Prev, a.Next = b, b
	b.Prev, b.Next = a, a
	m.AddRoad(a)
	m.AddRoad(b)
	if got := m.MergeRoadGroup(); got != 0 || len(m.Roads()) != 2 {
		t.Errorf("got %d merged & %d roads, want 0 & 2", got, len(m.Roads()))
	}

	// lanes don't match
	m = NewModel()
	a, b = straightRoad("a", 0, 10), straightRoad("b", 10, 20)
	b.Lanes = makeLanes(5, 5)
	a.Next, b.Prev = b, a
	m.AddRoad(a)
	m.AddRoad(b)
	if got := m.MergeRoadGroup(); got != 0 || len(m.Roads()) != 2 {
		t.Errorf("got %d merged & %d roads, want 0 & 2", got, len(m.Roads()))
	}
}

func TestCalibrateIntersectionBorder(t *testing.T) {
	m := NewModel()
	r := straightRoad("r", 0, 30)
	x1, x2 := newIntersection("x1"), newIntersection("x2")
	x1.Edges = []*IntersectionEdge{
		{Border: []r3.Vector{v(-5, 0), v(0, 0)}},
		{Border: []r3.Vector{v(0, 0), v(0, 5)}, Road: r},
		{Border: []r3.Vector{v(0, 5), v(-5, 5), v(-5, 0)}},
	}
	x2.Edges = []*IntersectionEdge{
		{Border: []r3.Vector{v(30, 0), v(35, 0), v(35, 5), v(30, 5)}},
		{Border: []r3.Vector{v(30, 5), v(30, 0)}, Road: r},
	}
	r.Prev, r.Next = x1, x2
	m.AddRoad(r)
	m.AddIntersection(x1)
	m.AddIntersection(x2)

	m.CalibrateIntersectionBorder(CalibrateIntersectionBorderOption{MaxOffsetMeter: 5, NeedRoadLengthMeter: 23}, false)

	if math.Abs(r.Length()-23) > 1e-9 {
		t.Errorf("got road length %v, want 23", r.Length())
	}
	if !equalPolyline(r.PrevBorder, []r3.Vector{v(3.5, 5), v(3.5, 0)}) {
		t.Errorf("got prev border %v", r.PrevBorder)
	}
	if !equalPolyline(r.NextBorder, []r3.Vector{v(26.5, 0), v(26.5, 5)}) {
		t.Errorf("got next border %v", r.NextBorder)
	}

	if len(x1.Edges) != 3 {
		t.Fatalf("got %d edges on x1, want 3", len(x1.Edges))
	}
	if !equalPolyline(x1.Edges[0].Border, []r3.Vector{v(-5, 0), v(0, 0), v(3.5, 0)}) {
		t.Errorf("got %v, want the free side extended into the road", x1.Edges[0].Border)
	}
	if !equalPolyline(x1.Edges[1].Border, []r3.Vector{v(3.5, 0), v(3.5, 5)}) || x1.Edges[1].Road != RoadBase(r) {
		t.Errorf("got border %v to %v", x1.Edges[1].Border, x1.Edges[1].Road)
	}
	if !equalPolyline(x1.Edges[2].Border, []r3.Vector{v(3.5, 5), v(0, 5), v(-5, 5), v(-5, 0)}) {
		t.Errorf("got %v, want the free side extended into the road", x1.Edges[2].Border)
	}

	if got := len(x2.Outline()); got != 6 {
		t.Errorf("got %d outline points on x2, want 6", got)
	}
	if !equalPolyline(r.Outline(), []r3.Vector{v(3.5, 0), v(26.5, 0), v(26.5, 5), v(3.5, 5)}) {
		t.Errorf("got road outline %v", r.Outline())
	}
}

func TestCalibrateSkipsShortAndContinuous(t *testing.T) {
	// continuous borders left alone
	cfg := quietConfig()
	cfg.SeparateContinuousBorder = false
	m := buildCrossroads(t, cfg, 2)
	if got := len(m.IntersectionBy("x").Edges); got != 4 {
		t.Errorf("got %d edges, want 4", got)
	}
	for _, r := range m.Roads() {
		if r.Length() != 40 {
			t.Errorf("got length %v, want 40", r.Length())
		}
	}

	// too short to give anything up
	m = NewModel()
	r := straightRoad("r", 0, 20)
	x := newIntersection("x")
	x.Edges = []*IntersectionEdge{{Border: []r3.Vector{v(0, 0), v(0, 5)}, Road: r}, {Border: []r3.Vector{v(0, 5), v(-5, 5), v(-5, 0), v(0, 0)}}}
	r.Prev = x
	m.AddRoad(r)
	m.AddIntersection(x)
	m.CalibrateIntersectionBorder(DefaultCalibrateIntersectionBorderOption(), true)
	if r.Length() != 20 || len(x.Edges) != 2 {
		t.Errorf("got length %v & %d edges, want 20 & 2", r.Length(), len(x.Edges))
	}
}

func TestRoadReverse(t *testing.T) {
	r := straightRoad("r", 0, 10)
	x := newIntersection("x")
	r.Prev = x
	r.Lanes = []*Lane{{Width: 2, Reverse: true}, {Width: 3}}
	before := r.Outline()

	r.reverse()
	if r.Next != RoadBase(x) || r.Prev != nil {
		t.Errorf("links not swapped")
	}
	if !equalPolyline(r.RightWay, []r3.Vector{v(10, 5), v(0, 5)}) {
		t.Errorf("got right way %v", r.RightWay)
	}
	if r.Lanes[0].Width != 3 || !r.Lanes[0].Reverse || r.Lanes[1].Reverse {
		t.Errorf("lanes not flipped: %v %v", r.Lanes[0], r.Lanes[1])
	}

	// same ring, different start
	after := r.Outline()
	if len(before) != len(after) {
		t.Fatalf("got %d points, want %d", len(after), len(before))
	}
	for _, p := range before {
		found := false
		for _, q := range after {
			found = found || p.ApproxEqual(q)
		}
		if !found {
			t.Errorf("point %v lost on reverse", p)
		}
	}

	r.reverse()
	if r.Prev != RoadBase(x) || !equalPolyline(r.RightWay, []r3.Vector{v(0, 0), v(10, 0)}) {
		t.Errorf("reversing twice should restore the road")
	}
}

func TestRoadBaseKindString(t *testing.T) {
	for k, want := range map[RoadBaseKind]string{KindRoad: "road", KindIntersection: "intersection", KindSideWalk: "sidewalk", RoadBaseKind(9): "unknown"} {
		if got := k.String(); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	}
}

func TestMakeLanes(t *testing.T) {
	cases := []struct {
		width, size float64
		lanes       int
		reverse     int
	}{
		{10, 3, 3, 1},
		{1, 3, 1, 0},
		{12, 3, 4, 2},
		{5, 0, 1, 0},
	}
	for _, c := range cases {
		lanes := makeLanes(c.width, c.size)
		reverse := 0
		total := 0.0
		for _, l := range lanes {
			total += l.Width
			if l.Reverse {
				reverse++
			}
		}
		if len(lanes) != c.lanes || reverse != c.reverse {
			t.Errorf("width %v: got %d lanes (%d reverse), want %d (%d)", c.width, len(lanes), reverse, c.lanes, c.reverse)
		}
		if math.Abs(total-c.width) > 1e-9 {
			t.Errorf("width %v: lanes add up to %v", c.width, total)
		}
	}
}

func TestCyclicRuns(t *testing.T) {
	cases := []struct {
		labels []int
		want   []outlineRun
	}{
		{nil, nil},
		{[]int{-1, -1, -1}, []outlineRun{{-1, 0, 3}}},
		{[]int{2, -1, -1, 2}, []outlineRun{{-1, 1, 2}, {2, 3, 2}}},
		{[]int{0, 1, 2, 3}, []outlineRun{{0, 0, 1}, {1, 1, 1}, {2, 2, 1}, {3, 3, 1}}},
	}
	for _, c := range cases {
		got := cyclicRuns(c.labels)
		if diff := cmp.Diff(c.want, got, cmp.AllowUnexported(outlineRun{})); diff != "" {
			t.Errorf("%v (-want +got):\n%s", c.labels, diff)
		}
	}
}

func TestConversionLifecycle(t *testing.T) {
	c := newConversion()
	if c.State() != ConversionIdle || c.Running() {
		t.Errorf("got %v, want idle", c.State())
	}
	c.setState(ConversionRunning)
	if !c.Running() {
		t.Errorf("expected running")
	}
	m := NewModel()
	c.finish(m, nil)
	select {
	case <-c.Done():
	default:
		t.Fatal("done should be closed")
	}
	got, err := c.Wait()
	if got != m || err != nil {
		t.Errorf("got %v %v, want the model", got, err)
	}
	if c.State().String() != "done" {
		t.Errorf("got %s, want done", c.State())
	}
}

func TestForeground(t *testing.T) {
	fg := NewForeground()
	if n := fg.RunPending(); n != 0 {
		t.Errorf("ran %d, want 0", n)
	}

	ran := make(chan bool, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- fg.Do(context.Background(), func() error {
			ran <- true
			return nil
		})
	}()

	// pump until the task has been handed over
	for fg.RunPending() == 0 {
	}
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
	if !<-ran {
		t.Errorf("task did not run")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := fg.Do(ctx, func() error { return nil }); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}

	fg.Close()
	fg.Close()
	if err := fg.Do(context.Background(), func() error { return nil }); err != ErrForegroundClosed {
		t.Errorf("got %v, want ErrForegroundClosed", err)
	}
}
