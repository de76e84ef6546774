package tile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Store читает готовые тайлы из дерева каталогов сборки.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// ReadTile возвращает содержимое тайла или nil, если тайл не записан
// (пустой тайл - штатная ситуация, не ошибка).
func (s *Store) ReadTile(z, x, y int) ([]byte, error) {
	path := filepath.Join(s.dir, strconv.Itoa(z), strconv.Itoa(x), strconv.Itoa(y)+".pbf")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tile %d/%d/%d: %w", z, x, y, err)
	}
	return data, nil
}
