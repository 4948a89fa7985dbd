package response

import "slices"

// Merge combines an intrinsic descriptor list with an extrinsic one. Every
// extrinsic descriptor replaces the intrinsic descriptor of the same status;
// the result is sorted by status. Neither input is modified.
func Merge(intrinsic, extrinsic []Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(intrinsic)+len(extrinsic))
	for _, d := range intrinsic {
		out = append(out, d.Clone())
	}
	SortByStatus(out)

	for _, e := range extrinsic {
		if i, found := slices.BinarySearchFunc(out, e, compareStatus); found {
			out = slices.Delete(out, i, i+1)
		}
		out = append(out, e.Clone())
		SortByStatus(out)
	}

	return out
}
