package rgraph

// IsFace returns if f refers to a live face.
func (g *Graph) IsFace(f FaceID) bool {
	return g.face(f) != nil
}

// FaceEdges returns a copy of the edges of f.
func (g *Graph) FaceEdges(f FaceID) []EdgeID {
	ft := g.face(f)
	if ft == nil {
		return nil
	}
	return append([]EdgeID{}, ft.edges...)
}

// FaceCityObject returns the city object f was built from.
func (g *Graph) FaceCityObject(f FaceID) string {
	ft := g.face(f)
	if ft == nil {
		return ""
	}
	return ft.cityObject
}

// FaceRoadTypes returns the road type mask of f.
func (g *Graph) FaceRoadTypes(f FaceID) RoadType {
	ft := g.face(f)
	if ft == nil {
		return RoadTypeNone
	}
	return ft.roadTypes
}

// SetFaceRoadTypes replaces the road type mask of f.
func (g *Graph) SetFaceRoadTypes(f FaceID, t RoadType) {
	if ft := g.face(f); ft != nil {
		ft.roadTypes = t
	}
}

// FaceLod returns the LOD f was built from.
func (g *Graph) FaceLod(f FaceID) int {
	ft := g.face(f)
	if ft == nil {
		return 0
	}
	return ft.lod
}

// AddFaceEdge links e into f (both directions). Returns false if either is
// not alive or e is already part of f.
func (g *Graph) AddFaceEdge(f FaceID, e EdgeID) bool {
	ft, ed := g.face(f), g.edge(e)
	if ft == nil || ed == nil || containsEdge(ft.edges, e) {
		return false
	}
	ft.edges = append(ft.edges, e)
	ed.faces = append(ed.faces, f)
	return true
}

// RemoveFaceEdge unlinks e from f. The edge itself is kept.
func (g *Graph) RemoveFaceEdge(f FaceID, e EdgeID) bool {
	ft, ed := g.face(f), g.edge(e)
	if ft == nil || ed == nil {
		return false
	}
	removeFaceID(&ed.faces, f)
	return removeEdgeID(&ft.edges, e)
}

// ChangeFaceEdge replaces from with to in f.
func (g *Graph) ChangeFaceEdge(f FaceID, from, to EdgeID) bool {
	if !g.RemoveFaceEdge(f, from) {
		return false
	}
	return g.AddFaceEdge(f, to)
}

// RemoveFace unlinks f from its edges & frees it. Edges left without a face
// are kept.
func (g *Graph) RemoveFace(f FaceID) {
	ft := g.face(f)
	if ft == nil {
		return
	}
	for _, e := range append([]EdgeID{}, ft.edges...) {
		g.RemoveFaceEdge(f, e)
	}
	g.freeFace(f)
}
