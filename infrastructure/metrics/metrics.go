// Package metrics holds the prometheus collectors of vecnod. Collectors are
// registered on the default registry on package initialization.
package metrics

const namespace = "vecnod"

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
