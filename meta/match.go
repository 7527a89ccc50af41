package meta

// Match represents a successful match with position information.
//
// A Match contains:
//   - Start position (inclusive)
//   - End position (exclusive)
//   - Reference to the searched text
//
// Example:
//
//	match := meta.NewMatch(5, 11, "test foo123 end")
//	println(match.String()) // "foo123"
//	println(match.Start(), match.End()) // 5, 11
type Match struct {
	start    int
	end      int
	haystack string
}

// NewMatch creates a new Match from start and end byte offsets into haystack.
func NewMatch(start, end int, haystack string) *Match {
	return &Match{
		start:    start,
		end:      end,
		haystack: haystack,
	}
}

// Start returns the inclusive start position of the match.
func (m *Match) Start() int {
	return m.start
}

// End returns the exclusive end position of the match.
func (m *Match) End() int {
	return m.end
}

// Len returns the length of the match in bytes.
//
// Example:
//
//	match := meta.NewMatch(5, 11, "test foo123 end")
//	println(match.Len()) // 6 (11 - 5)
func (m *Match) Len() int {
	return m.end - m.start
}

// String returns the matched text.
func (m *Match) String() string {
	if m.start < 0 || m.end > len(m.haystack) || m.start > m.end {
		return ""
	}
	return m.haystack[m.start:m.end]
}

// MatchWithCaptures is a Match together with the bounds of every group.
type MatchWithCaptures struct {
	Match
	slots []int
}

// NewMatchWithCaptures creates a match from a slot slice laid out as
// [start0, end0, start1, end1, ...]. Slots 0 and 1 bound the whole match.
// The slice is retained, not copied.
func NewMatchWithCaptures(haystack string, slots []int) *MatchWithCaptures {
	return &MatchWithCaptures{
		Match: Match{start: slots[0], end: slots[1], haystack: haystack},
		slots: slots,
	}
}

// NumGroups returns the number of groups including group 0, the whole match.
func (m *MatchWithCaptures) NumGroups() int {
	return len(m.slots) / 2
}

// Group returns the text matched by group i and whether the group took part
// in the match.
func (m *MatchWithCaptures) Group(i int) (string, bool) {
	idx := m.GroupIndex(i)
	if idx == nil {
		return "", false
	}
	return m.haystack[idx[0]:idx[1]], true
}

// GroupIndex returns [start, end] of group i, or nil if the group did not
// take part in the match or does not exist.
func (m *MatchWithCaptures) GroupIndex(i int) []int {
	if i < 0 || 2*i+1 >= len(m.slots) || m.slots[2*i] < 0 {
		return nil
	}
	return []int{m.slots[2*i], m.slots[2*i+1]}
}

// Slots returns all group bounds, -1 for groups that did not take part.
// The returned slice must not be modified.
func (m *MatchWithCaptures) Slots() []int {
	return m.slots
}
