package gitlab

// BuildGroupTree links a flat batch of groups into a forest. The first pass
// indexes every group by ID; the second attaches each group to its parent's
// Subgroups list when the parent is present in the batch, otherwise the group
// becomes a root. A group whose declared parent is absent (an orphan) is
// deliberately kept as a root rather than dropped: a batch narrowed by a
// search or limit can legitimately exclude an ancestor, and hiding such
// groups would silently lose data.
//
// Sibling order follows the order of first appearance in the input. Only one
// level of attachment happens per record, so cyclic parent references cannot
// loop here.
func BuildGroupTree(groups []Group) []*Group {
	index := make(map[int]*Group, len(groups))
	nodes := make([]*Group, len(groups))
	for i := range groups {
		node := groups[i]
		node.Subgroups = nil
		nodes[i] = &node
		index[node.ID] = nodes[i]
	}

	var roots []*Group
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := index[*node.ParentID]; ok {
				parent.Subgroups = append(parent.Subgroups, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// CountGroups returns the total number of nodes in a forest, counting each
// attached node once.
func CountGroups(roots []*Group) int {
	total := 0
	var walk func(g *Group)
	seen := make(map[*Group]bool)
	walk = func(g *Group) {
		if seen[g] {
			return
		}
		seen[g] = true
		total++
		for _, sub := range g.Subgroups {
			walk(sub)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return total
}
