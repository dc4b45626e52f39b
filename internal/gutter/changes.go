package gutter

// Changes is the line-level result of diffing a buffer against its
// committed revision. All numbers are 1-based lines of the current buffer;
// a deleted entry n means content was removed just before line n.
type Changes struct {
	Inserted []int
	Changed  []int
	Deleted  []int
}

// Empty reports whether the diff found nothing.
func (c Changes) Empty() bool {
	return len(c.Inserted) == 0 && len(c.Changed) == 0 && len(c.Deleted) == 0
}
