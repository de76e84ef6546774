package domain

import "github.com/paulmach/orb"

// NaturalEarthRow - одна строка из справочной таблицы Natural Earth.
type NaturalEarthRow struct {
	FeatureCla string
	MinZoom    *float64 // есть только в таблицах admin_1
	Geometry   orb.Geometry
}
