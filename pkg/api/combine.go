package api

import "fmt"

// CombineRequest names a binary operation between the addressed spec and Other
type CombineRequest struct {
	Method string `json:"method"`
	Other  string `json:"other"`
}

// Key under which the result of combining the spec under key is reported
func CombinedKey(key string, method string) string {
	return fmt.Sprintf("%s.%s", key, method)
}
