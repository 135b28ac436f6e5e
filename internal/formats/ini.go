package formats

import (
	"gopkg.in/ini.v1"

	"datashell/pkg/shelltypes"
)

// ParseINI parses an INI document. Keys outside any section are placed at the
// top level; every named section becomes a nested row. All values are strings.
func ParseINI(content string) (shelltypes.Value, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, []byte(content))
	if err != nil {
		return shelltypes.Value{}, err
	}

	row := shelltypes.NewRow()
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			for _, key := range section.Keys() {
				row.Set(key.Name(), shelltypes.NewString(key.Value()))
			}
			continue
		}
		sectionRow := shelltypes.NewRow()
		for _, key := range section.Keys() {
			sectionRow.Set(key.Name(), shelltypes.NewString(key.Value()))
		}
		row.Set(section.Name(), shelltypes.NewRowValue(sectionRow))
	}
	return shelltypes.NewRowValue(row), nil
}
