package dedupe

// unionFind is a map-backed disjoint-set over opaque string identifiers with
// path-compressed find. Local to one FindClusters call; never shared.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

// add registers an identifier as its own singleton set if unseen.
func (u *unionFind) add(id string) {
	if _, ok := u.parent[id]; !ok {
		u.parent[id] = id
	}
}

// find returns the root of id's set, compressing the path on the way up.
func (u *unionFind) find(id string) string {
	u.add(id)
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[id] != root {
		id, u.parent[id] = u.parent[id], root
	}
	return root
}

// union merges the sets containing a and b.
func (u *unionFind) union(a, b string) {
	rootA := u.find(a)
	rootB := u.find(b)
	if rootA != rootB {
		u.parent[rootB] = rootA
	}
}
