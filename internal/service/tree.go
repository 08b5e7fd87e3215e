package service

import "docvault/internal/domain/models"

// buildChildIndex builds a parent-to-children adjacency index from a
// flat folder list. Root folders are keyed under the empty string.
// Subtree walks batch-load a tenant's folders once and traverse this
// index instead of issuing one storage round trip per node.
func buildChildIndex(folders []models.Folder) map[string][]string {
	index := make(map[string][]string, len(folders))
	for _, folder := range folders {
		parent := ""
		if folder.ParentID != nil {
			parent = *folder.ParentID
		}
		index[parent] = append(index[parent], folder.ID)
	}
	return index
}

// collectSubtree returns rootID plus every descendant folder ID,
// walking the adjacency index iteratively.
func collectSubtree(index map[string][]string, rootID string) []string {
	ids := []string{rootID}
	stack := []string{rootID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range index[current] {
			ids = append(ids, child)
			stack = append(stack, child)
		}
	}
	return ids
}
