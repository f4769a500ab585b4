// In file: internal/tools/clients.go
package tools

import (
	"strconv"
	"time"
)

// dataClientTimeout bounds every outbound call to an external data source.
// A timeout surfaces as a transport error, never a hang.
const dataClientTimeout = 5 * time.Second

// trimFloat renders a float without trailing zeros ("9", "5.5", "-3").
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
