//go:build !race

package subscribers

func passwordHashCost() int {
	return 14
}
