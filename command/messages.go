package command

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		"shape_too_small":  "The shape is too small",
		"invalid_gridcell": "The grid cell is too small or too large",
		"nodept":           "Vertex",
		"centerpt":         "Center",
		"midpt":            "Midpoint",
		"quadpt":           "Quadrant",
		"crosspt":          "Intersection",
		"parallelpt":       "Parallel",
		"perppt":           "Perpendicular",
		"nearpt":           "Nearest",
		"degrees":          "°",
	},
	language.SimplifiedChinese: {
		"shape_too_small":  "图形太小",
		"invalid_gridcell": "网格单元太小或太大",
		"nodept":           "顶点",
		"centerpt":         "圆心",
		"midpt":            "中点",
		"quadpt":           "象限点",
		"crosspt":          "交点",
		"parallelpt":       "平行",
		"perppt":           "垂足",
		"nearpt":           "最近点",
		"degrees":          "度",
	},
}

var msgCatalog = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}()

// newPrinter returns a printer for the catalog language closest to lang.
// Unknown or malformed tags fall back to English.
func newPrinter(lang string) *message.Printer {
	tags := msgCatalog.Languages()
	_, i, conf := language.NewMatcher(tags).Match(language.Make(lang))
	if conf == language.No {
		return message.NewPrinter(language.English, message.Catalog(msgCatalog))
	}
	return message.NewPrinter(tags[i], message.Catalog(msgCatalog))
}
