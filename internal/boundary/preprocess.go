package boundary

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/boundary-tiler/internal/domain"
	"github.com/paulmach/osm"
)

var whitespace = regexp.MustCompile(`\s+`)

// PreprocessRelation регистрирует boundary-отношение с admin_level 2..10.
// Возвращает nil для всех остальных отношений, включая отношения с
// некорректным admin_level - это не ошибка, они просто пропускаются.
func (l *Layer) PreprocessRelation(rel *osm.Relation) *domain.RegionRecord {
	tags := rel.Tags
	if tags.Find("type") != "boundary" || tags.Find("boundary") != "administrative" {
		return nil
	}
	levelTag := tags.Find("admin_level")
	if levelTag == "" {
		return nil
	}
	level, ok := parseRoundInt(levelTag)
	if !ok || level < domain.MinAdminLevel || level > domain.MaxAdminLevel {
		return nil
	}

	disputed := isDisputed(tags)
	code := tags.Find("ISO3166-1:alpha3")
	if code != "" {
		// код регистрируется сразу, независимо от того, сошлется ли на
		// отношение хоть один way
		l.codes.Store(int64(rel.ID), code)
	}

	rec := domain.RegionRecord{
		ID:         int64(rel.ID),
		AdminLevel: level,
		Disputed:   disputed,
		Name:       tags.Find("name"),
		ISOCode:    code,
	}
	if disputed {
		rec.ClaimedBy = tags.Find("claimed_by")
	}
	l.records.Store(rec.ID, rec)
	return &rec
}

// isDisputed - предикат спорной границы, общий для отношений и way.
func isDisputed(tags osm.Tags) bool {
	return parseBoolTag(tags.Find("disputed")) ||
		parseBoolTag(tags.Find("dispute")) ||
		tags.Find("border_status") == "dispute" ||
		tags.Find("disputed_by") != "" ||
		tags.Find("claimed_by") != ""
}

func parseBoolTag(v string) bool {
	switch strings.ToLower(v) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// parseRoundInt разбирает целое, допуская дробную запись с округлением.
func parseRoundInt(v string) (int, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f)), true
}

// CleanDisputedName воспроизводит соглашение об именах спорных границ из
// вышестоящей схемы: убирает " at ", схлопывает пробелы и удаляет
// подстроку "Extentof". Идемпотентна.
func CleanDisputedName(name string) string {
	if name == "" {
		return ""
	}
	name = strings.ReplaceAll(name, " at ", "")
	name = whitespace.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "Extentof", "")
}
