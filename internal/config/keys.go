package config

// MaskKey returns a display-safe form of an API key: the first 7 and last
// 4 characters. Short keys are fully hidden.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 15 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}
