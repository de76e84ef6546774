package domain

import "time"

// BuildStats - сводная статистика одного запуска сборки тайлов.
type BuildStats struct {
	RunID         string        `json:"run_id"`
	Relations     int64         `json:"relations"`
	Ways          int64         `json:"ways"`
	Nodes         int64         `json:"nodes"`
	Regions       int64         `json:"regions"`
	MergeGroups   int64         `json:"merge_groups"`
	Features      int64         `json:"features"`
	TilesWritten  int64         `json:"tiles_written"`
	Duration      time.Duration `json:"duration"`
}

// ProgressEvent - событие прогресса сборки, публикуется в Redis stream
// для наблюдения за длительными запусками.
type ProgressEvent struct {
	RunID string    `json:"run_id"`
	Stage string    `json:"stage"`
	Count int64     `json:"count"`
	At    time.Time `json:"at"`
}
