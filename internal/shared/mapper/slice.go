// Package mapper converts slices between layers.
package mapper

// MapSlicePtr maps a pointer slice, dropping nil entries on either side.
// The result is never nil so empty lists encode as [] rather than null.
func MapSlicePtr[T any, R any](items []*T, mapFunc func(*T) *R) []*R {
	result := make([]*R, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if mapped := mapFunc(item); mapped != nil {
			result = append(result, mapped)
		}
	}
	return result
}
