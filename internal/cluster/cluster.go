// Package cluster groups OCR fragments into speech-bubble regions by
// transitive bounding-box overlap.
//
// Two fragments belong to the same region exactly when they are connected
// by a chain of pairwise rectangle overlaps. The grouping is computed as
// connected components over the overlap relation, and both the region
// order and the member order within each region are deterministic for a
// given input order: regions appear in seed order, members in the order
// the expansion discovered them.
package cluster

// Cluster partitions fragments into disjoint regions. Every fragment ends
// up in exactly one region; the union of all regions' members is the full
// input set.
//
// The expansion is a depth-first walk: starting from the first unclaimed
// fragment, it repeatedly claims the first unclaimed fragment (in input
// order) that overlaps the fragment on top of the walk stack, descending
// into each newly claimed fragment before resuming the scan. Member
// indices are recorded in discovery order, which downstream text assembly
// depends on (see Region.assemble).
func Cluster(fragments []Fragment) []*Region {
	claimed := make([]bool, len(fragments))
	regions := make([]*Region, 0)

	for seed := range fragments {
		if claimed[seed] {
			continue
		}
		claimed[seed] = true

		region := &Region{Members: []int{seed}}
		stack := []int{seed}

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			next := -1
			for j := range fragments {
				if !claimed[j] && fragments[j].Overlaps(fragments[top].Rect) {
					next = j
					break
				}
			}
			if next < 0 {
				stack = stack[:len(stack)-1]
				continue
			}
			claimed[next] = true
			region.Members = append(region.Members, next)
			stack = append(stack, next)
		}

		region.assemble(fragments)
		regions = append(regions, region)
	}

	return regions
}
