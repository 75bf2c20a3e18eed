package zmxtest

import "sort"

// Solve categories map onto storage columns: 0-4 are the surface-data
// columns curvature, thickness, glass, semi-diameter and conic; 5 and up
// are parameter columns shifted by 4; 1000 and up extra columns shifted by
// 1000.

func (h *Host) valueByCategory(s *surfaceRec, category int) float64 {
	switch {
	case category == 0:
		return s.Data[2]
	case category == 1:
		return s.Data[3]
	case category == 3:
		return s.Data[5]
	case category == 4:
		return s.Data[6]
	case category >= 1000:
		return s.Extra[category-1000]
	default:
		return s.Params[category-4]
	}
}

func (h *Host) storeByCategory(s *surfaceRec, category int, v float64) {
	switch {
	case category == 0:
		s.Data[2] = v
	case category == 1:
		s.Data[3] = v
	case category == 3:
		s.Data[5] = v
	case category == 4:
		s.Data[6] = v
	case category >= 1000:
		s.Extra[category-1000] = v
	default:
		s.Params[category-4] = v
	}
}

// pickupKind is the solve type code that means "pickup" for a category.
func pickupKind(category int) int {
	switch category {
	case 0:
		return 4
	case 1:
		return 5
	}
	return 2
}

// update recomputes pickup solves in surface order, the way a model
// recomputation resolves them. Pickup argument layouts differ by category:
// glass takes just the source surface, curvature and semi-diameter style
// pickups add a scale, thickness adds scale and offset, parameter columns
// take offset then scale then a source column reference, extra columns a
// scale.
func (h *Host) update() {
	for _, s := range h.surfaces {
		cats := make([]int, 0, len(s.Solves))
		for cat := range s.Solves {
			cats = append(cats, cat)
		}
		sort.Ints(cats)
		for _, cat := range cats {
			rec := s.Solves[cat]
			if rec.Kind != pickupKind(cat) || len(rec.Args) == 0 {
				continue
			}
			src := h.at(int(rec.Args[0]))
			if src == nil {
				continue
			}
			scale, offset := 1.0, 0.0
			srcCat := cat
			switch {
			case cat == 2:
				s.Glass = src.Glass
				continue
			case cat == 0, cat == 3, cat == 4:
				if len(rec.Args) > 1 {
					scale = rec.Args[1]
				}
			case cat == 1:
				if len(rec.Args) > 1 {
					scale = rec.Args[1]
				}
				if len(rec.Args) > 2 {
					offset = rec.Args[2]
				}
			case cat >= 1000:
				if len(rec.Args) > 1 {
					scale = rec.Args[1]
				}
			default:
				// parameter column: offset, scale, source category + 1
				if len(rec.Args) > 1 {
					offset = rec.Args[1]
				}
				if len(rec.Args) > 2 {
					scale = rec.Args[2]
				}
				if len(rec.Args) > 3 {
					srcCat = int(rec.Args[3]) - 1
				}
			}
			h.storeByCategory(s, cat, scale*h.valueByCategory(src, srcCat)+offset)
		}
	}
}
