package domain

import "sort"

// FolderNode decorates a Folder with its computed nesting level and
// children. Both are derived from the flat snapshot on every rebuild
// and never persisted.
type FolderNode struct {
	*Folder
	Level    int
	Children []*FolderNode
}

// BuildHierarchy converts a flat folder snapshot into a pre-order
// listing of decorated nodes.
//
// A folder whose ParentID resolves to another input folder is attached
// as its child with Level = parent.Level + 1. Anything else, including
// a dangling ParentID left behind by a deleted parent, is treated as a
// root at level 0. Roots and every sibling group are sorted
// lexicographically by name, and each folder is followed immediately
// by its own subtree.
//
// The input is assumed acyclic; cycle prevention happens at write time.
// A pure traversal over a cyclic parent graph would not terminate, so
// this function performs no cycle detection of its own.
func BuildHierarchy(folders []*Folder) []*FolderNode {
	nodes := make(map[string]*FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &FolderNode{Folder: f}
	}

	roots := make([]*FolderNode, 0, len(folders))
	for _, f := range folders {
		node := nodes[f.ID]
		if parent, ok := nodes[f.ParentID]; ok && f.ParentID != f.ID {
			parent.Children = append(parent.Children, node)
			continue
		}
		roots = append(roots, node)
	}

	// Levels are assigned top-down so children computed before their
	// parent still end up correct.
	result := make([]*FolderNode, 0, len(folders))
	var walk func(n *FolderNode, level int)
	walk = func(n *FolderNode, level int) {
		n.Level = level
		result = append(result, n)
		sortByName(n.Children)
		for _, child := range n.Children {
			walk(child, level+1)
		}
	}

	sortByName(roots)
	for _, root := range roots {
		walk(root, 0)
	}

	return result
}

// Flatten strips the decoration back to the flat folder list in
// pre-order. BuildHierarchy(Flatten(BuildHierarchy(x))) yields the
// same pre-order sequence as BuildHierarchy(x).
func Flatten(nodes []*FolderNode) []*Folder {
	folders := make([]*Folder, 0, len(nodes))
	for _, n := range nodes {
		folders = append(folders, n.Folder)
	}
	return folders
}

// IsDescendant reports whether candidate is id itself or lies in the
// subtree rooted at id, walking ParentID links through the given flat
// snapshot. The walk is capped at the folder count, so it terminates
// even on corrupt input.
func IsDescendant(folders []*Folder, candidate, id string) bool {
	byID := make(map[string]*Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}

	current := candidate
	for steps := 0; steps <= len(folders); steps++ {
		if current == id {
			return true
		}
		f, ok := byID[current]
		if !ok || f.ParentID == "" {
			return false
		}
		current = f.ParentID
	}
	return false
}

func sortByName(nodes []*FolderNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})
}
