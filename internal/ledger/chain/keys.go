package chain

import "strings"

// CallKey builds the lower-case "section.method" key used by allow/deny lists.
func CallKey(section, method string) string {
	return strings.ToLower(section) + "." + strings.ToLower(method)
}
