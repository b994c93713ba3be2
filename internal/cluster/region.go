package cluster

import "strings"

// Region is one cluster of fragments, typically a speech bubble or
// caption. Members holds indices into the page's fragment slice in the
// order the clustering walk discovered them; it is never reordered.
type Region struct {
	// Members are fragment indices in discovery order. Non-empty.
	Members []int `json:"members"`

	// Bounds is the minimal rectangle covering every member's box.
	Bounds Rect `json:"bounds"`

	// Text is the region's assembled source text.
	Text string `json:"text"`

	// Translation is set once by the translation stage and is empty
	// until then.
	Translation string `json:"translation,omitempty"`
}

// assemble computes the enclosing rectangle and the reading-order text
// from the member set.
//
// Members are concatenated last-discovered first: the overlap walk tends
// to find the lines of a vertical right-to-left bubble in reverse reading
// order, so reversing the discovery order restores it. The reversal is an
// observable contract of the output, not an implementation detail.
func (r *Region) assemble(fragments []Fragment) {
	r.Bounds = fragments[r.Members[0]].Rect
	for _, idx := range r.Members[1:] {
		r.Bounds = r.Bounds.Union(fragments[idx].Rect)
	}

	var b strings.Builder
	for i := len(r.Members) - 1; i >= 0; i-- {
		b.WriteString(strings.TrimSpace(fragments[r.Members[i]].Text))
	}
	r.Text = b.String()
}
