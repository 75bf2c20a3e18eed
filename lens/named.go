package lens

import "sort"

// NamedElements indexes the model's surfaces by the tags embedded in their
// comments, so elements can be addressed by name instead of position.
type NamedElements struct {
	byTag map[string]Surface
}

// CollectNamed walks the sequence and indexes every tagged surface. Tags
// duplicated in the model resolve to the later surface.
func CollectNamed(seq *SurfaceSequence) (*NamedElements, error) {
	all, err := seq.All()
	if err != nil {
		return nil, err
	}
	n := &NamedElements{byTag: make(map[string]Surface)}
	for _, surf := range all {
		tag, err := surf.Comment().Tag()
		if err != nil {
			return nil, err
		}
		if tag != "" {
			n.byTag[tag] = surf
		}
	}
	return n, nil
}

// Get returns the surface carrying the tag.
func (n *NamedElements) Get(tag string) (Surface, bool) {
	s, ok := n.byTag[tag]
	return s, ok
}

// Name tags the surface and indexes it. An existing tag on the surface is
// replaced.
func (n *NamedElements) Name(tag string, surf Surface) error {
	if err := surf.Comment().SetTag(tag); err != nil {
		return err
	}
	n.byTag[tag] = surf
	return nil
}

// Tags returns the known tags in sorted order.
func (n *NamedElements) Tags() []string {
	tags := make([]string, 0, len(n.byTag))
	for tag := range n.byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
