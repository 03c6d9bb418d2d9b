package utils

// ToStringSlice filters a decoded JSON array down to its string members.
func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0, len(slice))
	for _, v := range slice {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// FirstNonEmpty returns the first non-empty string among its arguments.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
