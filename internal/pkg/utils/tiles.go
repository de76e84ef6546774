package utils

// MaxBuildZoom - максимальный зум, на который пишутся тайлы границ.
const MaxBuildZoom = 14

// ValidateTileCoords проверяет координаты тайла для зума z.
func ValidateTileCoords(z, x, y int) bool {
	if z < 0 || z > MaxBuildZoom {
		return false
	}
	max := 1 << uint(z)
	return x >= 0 && x < max && y >= 0 && y < max
}
